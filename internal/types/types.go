package types

import "fmt"

// Type is the closed set of sdw value types. Types compare with ==.
type Type int

const (
	Void Type = iota
	Int
	Bool
)

func (t Type) String() string {
	switch t {
	case Void:
		return "void"
	case Int:
		return "int"
	case Bool:
		return "bool"
	}
	return fmt.Sprintf("Type(%d)", int(t))
}

// Lookup resolves a written type name.
func Lookup(name string) (Type, bool) {
	switch name {
	case "void":
		return Void, true
	case "int":
		return Int, true
	case "bool":
		return Bool, true
	}
	return Void, false
}
