package ir

import (
	"errors"
	"fmt"
	"strings"
)

// VerifyError is one structural problem found by Verify.
type VerifyError struct {
	Function string
	Block    string
	Line     int
	Msg      string
}

func (e *VerifyError) Error() string {
	if e.Block == "" {
		return fmt.Sprintf("@%s: %s", e.Function, e.Msg)
	}
	return fmt.Sprintf("@%s, block %s (line %d): %s", e.Function, e.Block, e.Line, e.Msg)
}

// Verify checks the structural rules every emitted module follows: labels
// are unique, each block ends in exactly one terminator, branches target
// existing blocks and every local value is defined once. All problems are
// joined into the returned error.
func Verify(m *Module) error {
	var errs []error
	seenFns := make(map[string]bool)
	for _, fn := range m.Functions {
		if seenFns[fn.Name] {
			errs = append(errs, &VerifyError{Function: fn.Name, Msg: "function defined twice"})
		}
		seenFns[fn.Name] = true
		errs = append(errs, verifyFunction(fn)...)
	}
	return errors.Join(errs...)
}

func verifyFunction(fn *Function) []error {
	var errs []error
	report := func(b *Block, line int, format string, args ...any) {
		errs = append(errs, &VerifyError{Function: fn.Name, Block: b.Label, Line: line, Msg: fmt.Sprintf(format, args...)})
	}

	if len(fn.Blocks) == 0 {
		return []error{&VerifyError{Function: fn.Name, Msg: "function has no blocks"}}
	}

	labels := make(map[string]bool)
	defined := make(map[string]bool)
	for _, p := range fn.Params {
		if _, name, ok := strings.Cut(p, " "); ok {
			defined[name] = true
		}
	}

	for _, b := range fn.Blocks {
		if labels[b.Label] {
			report(b, 0, "label defined twice")
		}
		labels[b.Label] = true

		if len(b.Instrs) == 0 {
			report(b, 0, "empty block")
			continue
		}
		for i, instr := range b.Instrs {
			last := i == len(b.Instrs)-1
			if instr.IsTerminator() && !last {
				report(b, instr.Line, "terminator %q is not last", instr.Text)
			}
			if last && !instr.IsTerminator() {
				report(b, instr.Line, "block does not end in a terminator")
			}
			if res := instr.Result(); res != "" {
				if defined[res] {
					report(b, instr.Line, "value %s defined twice", res)
				}
				defined[res] = true
			}
		}
	}

	for _, b := range fn.Blocks {
		for _, succ := range b.Succs {
			if !labels[succ] {
				report(b, b.Instrs[len(b.Instrs)-1].Line, "branch to unknown block %s", succ)
			}
		}
	}
	return errs
}
