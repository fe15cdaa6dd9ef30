package types

import (
	"strings"

	"github.com/Hex5DA/sdw/internal/lexer"
)

// FunctionSignature describes a callable function. Functions are not values;
// they are resolved by name.
type FunctionSignature struct {
	Name       string
	Params     []Type
	ParamNames []string
	Return     Type
	Span       lexer.Span // the defining `fn` statement
}

func (f FunctionSignature) String() string {
	var b strings.Builder
	b.WriteString("fn ")
	b.WriteString(f.Return.String())
	b.WriteString(" ")
	b.WriteString(f.Name)
	b.WriteString("(")
	for i, p := range f.Params {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(p.String())
		if i < len(f.ParamNames) {
			b.WriteString(" ")
			b.WriteString(f.ParamNames[i])
		}
	}
	b.WriteString(")")
	return b.String()
}

// Param returns the type of the named parameter.
func (f FunctionSignature) Param(name string) (Type, bool) {
	for i, n := range f.ParamNames {
		if n == name {
			return f.Params[i], true
		}
	}
	return Void, false
}
