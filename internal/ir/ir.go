// Package ir reads back the textual IR produced by codegen into functions and
// basic blocks, so control flow can be inspected and verified.
package ir

import (
	"fmt"
	"regexp"
	"strings"
)

// Module is a parsed IR module.
type Module struct {
	Name      string
	Functions []*Function
}

// Function returns the function called name, or nil.
func (m *Module) Function(name string) *Function {
	for _, fn := range m.Functions {
		if fn.Name == name {
			return fn
		}
	}
	return nil
}

type Function struct {
	Name   string
	Return string
	Params []string
	Blocks []*Block
	Line   int
}

// Block returns the block labelled label, or nil.
func (f *Function) Block(label string) *Block {
	for _, b := range f.Blocks {
		if b.Label == label {
			return b
		}
	}
	return nil
}

// CondBranches counts conditional branch instructions.
func (f *Function) CondBranches() int {
	n := 0
	for _, b := range f.Blocks {
		if t := b.Terminator(); t != nil && strings.HasPrefix(t.Text, "br i1 ") {
			n++
		}
	}
	return n
}

// Block is a labelled straight-line instruction sequence.
type Block struct {
	Label  string
	Instrs []Instr
	Succs  []string
	Preds  []string
}

// Terminator returns the last instruction when it ends the block.
func (b *Block) Terminator() *Instr {
	if len(b.Instrs) == 0 {
		return nil
	}
	last := &b.Instrs[len(b.Instrs)-1]
	if !last.IsTerminator() {
		return nil
	}
	return last
}

type Instr struct {
	Text string
	Line int
}

// Opcode is the instruction's operation, skipping any result assignment.
func (i Instr) Opcode() string {
	text := i.Text
	if _, rhs, ok := strings.Cut(text, " = "); ok {
		text = rhs
	}
	op, _, _ := strings.Cut(text, " ")
	return op
}

// Result is the value defined by the instruction, or "".
func (i Instr) Result() string {
	lhs, _, ok := strings.Cut(i.Text, " = ")
	if !ok {
		return ""
	}
	return lhs
}

func (i Instr) IsTerminator() bool {
	switch i.Opcode() {
	case "br", "ret", "unreachable":
		return true
	}
	return false
}

// ParseError reports malformed IR text.
type ParseError struct {
	Line int
	Msg  string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("ir:%d: %s", e.Line, e.Msg)
}

var (
	defineRe   = regexp.MustCompile(`^define (\S+) @([A-Za-z_][A-Za-z0-9_.]*)\((.*)\) \{$`)
	moduleRe   = regexp.MustCompile(`^; ModuleID = '(.*)'$`)
	labelRe    = regexp.MustCompile(`^([A-Za-z_][A-Za-z0-9_.]*):$`)
	labelUseRe = regexp.MustCompile(`label %([A-Za-z_][A-Za-z0-9_.]*)`)
)

// Parse reads a module. Predecessors are derived from the successor lists.
func Parse(text string) (*Module, error) {
	m := &Module{}
	var fn *Function

	for i, raw := range strings.Split(text, "\n") {
		lineNo := i + 1
		line := strings.TrimSpace(raw)

		switch {
		case line == "":
			continue

		case strings.HasPrefix(line, ";"):
			if match := moduleRe.FindStringSubmatch(line); match != nil {
				m.Name = match[1]
			}

		case strings.HasPrefix(line, "source_filename"):
			continue

		case strings.HasPrefix(line, "define "):
			if fn != nil {
				return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("function @%s is not closed", fn.Name)}
			}
			match := defineRe.FindStringSubmatch(line)
			if match == nil {
				return nil, &ParseError{Line: lineNo, Msg: "malformed function header"}
			}
			fn = &Function{Name: match[2], Return: match[1], Line: lineNo}
			if match[3] != "" {
				fn.Params = strings.Split(match[3], ", ")
			}

		case line == "}":
			if fn == nil {
				return nil, &ParseError{Line: lineNo, Msg: "unexpected '}'"}
			}
			link(fn)
			m.Functions = append(m.Functions, fn)
			fn = nil

		case fn == nil:
			return nil, &ParseError{Line: lineNo, Msg: fmt.Sprintf("unexpected %q outside a function", line)}

		case labelRe.MatchString(line):
			label := strings.TrimSuffix(line, ":")
			fn.Blocks = append(fn.Blocks, &Block{Label: label})

		default:
			if len(fn.Blocks) == 0 {
				return nil, &ParseError{Line: lineNo, Msg: "instruction before the first label"}
			}
			b := fn.Blocks[len(fn.Blocks)-1]
			b.Instrs = append(b.Instrs, Instr{Text: line, Line: lineNo})
		}
	}

	if fn != nil {
		return nil, &ParseError{Line: fn.Line, Msg: fmt.Sprintf("function @%s is not closed", fn.Name)}
	}
	return m, nil
}

func link(fn *Function) {
	for _, b := range fn.Blocks {
		t := b.Terminator()
		if t == nil {
			continue
		}
		for _, match := range labelUseRe.FindAllStringSubmatch(t.Text, -1) {
			b.Succs = append(b.Succs, match[1])
		}
	}
	for _, b := range fn.Blocks {
		for _, succ := range b.Succs {
			if target := fn.Block(succ); target != nil {
				target.Preds = append(target.Preds, b.Label)
			}
		}
	}
}
