package types

// Scope is one lexical block's variable table. Scopes link to their enclosing
// scope, forming the analyzer's scope stack.
type Scope struct {
	Parent *Scope
	Vars   map[string]Type

	// Function is set on a function body's outermost scope. Variable lookup
	// does not continue past it, so functions never see their caller's locals.
	Function *FunctionSignature
}

// NewScope creates a new scope with an optional parent.
func NewScope(parent *Scope) *Scope {
	return &Scope{
		Parent: parent,
		Vars:   make(map[string]Type),
	}
}

// NewFunctionScope creates the body scope of fn.
func NewFunctionScope(parent *Scope, fn *FunctionSignature) *Scope {
	s := NewScope(parent)
	s.Function = fn
	return s
}

// Insert declares name in this scope, replacing any earlier entry.
func (s *Scope) Insert(name string, typ Type) {
	s.Vars[name] = typ
}

// Lookup finds a variable from this scope outwards, stopping at the enclosing
// function's body scope. Parameters are not consulted.
func (s *Scope) Lookup(name string) (Type, bool) {
	for cur := s; cur != nil; cur = cur.Parent {
		if typ, ok := cur.Vars[name]; ok {
			return typ, true
		}
		if cur.Function != nil {
			break
		}
	}
	return Void, false
}

// EnclosingFunction returns the signature of the innermost function around s.
func (s *Scope) EnclosingFunction() *FunctionSignature {
	for cur := s; cur != nil; cur = cur.Parent {
		if cur.Function != nil {
			return cur.Function
		}
	}
	return nil
}
