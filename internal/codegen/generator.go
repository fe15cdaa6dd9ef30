// Package codegen lowers a typed tree into LLVM-style textual IR.
package codegen

import (
	"fmt"
	"io"
	"strings"

	"github.com/Hex5DA/sdw/internal/typed"
	"github.com/Hex5DA/sdw/internal/types"
)

// ToplevelFunction wraps statements written outside any function.
const ToplevelFunction = "sdw.toplevel"

// Generator writes IR for typed programs.
type Generator struct {
	w          io.Writer
	moduleName string

	ctx     *Context
	out     strings.Builder
	fn      *function
	pending []*typed.FunctionDef
}

// function is the output state of the function being emitted. Allocas are
// collected separately so they all land in the entry block.
type function struct {
	allocas    []string
	body       strings.Builder
	terminated bool
}

// Option configures a Generator.
type Option func(*Generator)

// WithModuleName adds a module header naming the source file.
func WithModuleName(name string) Option {
	return func(g *Generator) {
		g.moduleName = name
	}
}

// NewGenerator creates a generator that writes to w.
func NewGenerator(w io.Writer, opts ...Option) *Generator {
	g := &Generator{w: w}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Generate lowers block and writes the module to the underlying writer.
// Function definitions are emitted in source order, each followed by the
// functions nested inside it. Statements outside any function are collected
// into a void function emitted last.
func (g *Generator) Generate(block typed.Block) error {
	g.ctx = NewContext()
	g.out.Reset()
	g.fn = nil
	g.pending = nil

	if g.moduleName != "" {
		fmt.Fprintf(&g.out, "; ModuleID = '%s'\n", g.moduleName)
		fmt.Fprintf(&g.out, "source_filename = \"%s\"\n\n", g.moduleName)
	}

	var toplevel typed.Block
	for _, stmt := range block {
		def, ok := stmt.(*typed.FunctionDef)
		if !ok {
			toplevel = append(toplevel, stmt)
			continue
		}
		if err := g.genFunction(def); err != nil {
			return err
		}
		if err := g.drainPending(); err != nil {
			return err
		}
	}

	if len(toplevel) > 0 {
		wrapper := &typed.FunctionDef{Name: ToplevelFunction, Return: types.Void, Body: toplevel}
		if err := g.genFunction(wrapper); err != nil {
			return err
		}
		if err := g.drainPending(); err != nil {
			return err
		}
	}

	_, err := io.WriteString(g.w, g.out.String())
	return err
}

// Emit lowers block and returns the module text.
func Emit(block typed.Block, opts ...Option) (string, error) {
	var sb strings.Builder
	if err := NewGenerator(&sb, opts...).Generate(block); err != nil {
		return "", err
	}
	return sb.String(), nil
}

func (g *Generator) drainPending() error {
	for len(g.pending) > 0 {
		def := g.pending[0]
		g.pending = g.pending[1:]
		if err := g.genFunction(def); err != nil {
			return err
		}
	}
	return nil
}

// emit writes an instruction. Code following a terminator gets its own
// unreachable block so every block keeps a single terminator.
func (g *Generator) emit(format string, args ...any) {
	if g.fn.terminated {
		g.emitLabel(g.ctx.label("dead"))
	}
	g.fn.body.WriteString("  ")
	fmt.Fprintf(&g.fn.body, format, args...)
	g.fn.body.WriteByte('\n')
}

// emitTerminator writes a block terminator. It is dropped when the current
// block already ended, since nothing can reach it.
func (g *Generator) emitTerminator(format string, args ...any) {
	if g.fn.terminated {
		return
	}
	g.emit(format, args...)
	g.fn.terminated = true
}

// emitCondBranch always lands, opening a fresh block if needed, so the clause
// labels it names keep their incoming edges even in dead code.
func (g *Generator) emitCondBranch(cond, then, otherwise string) {
	g.emit("br i1 %s, label %%%s, label %%%s", cond, then, otherwise)
	g.fn.terminated = true
}

// emitLabel starts a new block, falling through from the current one when it
// is still open.
func (g *Generator) emitLabel(label string) {
	if !g.fn.terminated {
		g.fn.body.WriteString("  br label %" + label + "\n")
	}
	g.fn.body.WriteString(label + ":\n")
	g.fn.terminated = false
}

func (g *Generator) alloca(slot string, typ types.Type) {
	g.fn.allocas = append(g.fn.allocas, fmt.Sprintf("%s = alloca %s", slot, irType(typ)))
}

func irType(t types.Type) string {
	switch t {
	case types.Int:
		return "i64"
	case types.Bool:
		return "i1"
	default:
		return "void"
	}
}
