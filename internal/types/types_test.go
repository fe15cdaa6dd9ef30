package types

import "testing"

func TestLookup(t *testing.T) {
	tests := []struct {
		name string
		want Type
		ok   bool
	}{
		{"int", Int, true},
		{"bool", Bool, true},
		{"void", Void, true},
		{"float", Void, false},
	}

	for _, tt := range tests {
		got, ok := Lookup(tt.name)
		if got != tt.want || ok != tt.ok {
			t.Fatalf("Lookup(%q) = %v, %v; want %v, %v", tt.name, got, ok, tt.want, tt.ok)
		}
	}
}

func TestScopeShadowing(t *testing.T) {
	outer := NewScope(nil)
	outer.Insert("x", Int)

	inner := NewScope(outer)
	inner.Insert("x", Bool)

	if typ, _ := inner.Lookup("x"); typ != Bool {
		t.Fatalf("expected inner x to be bool, got %s", typ)
	}
	if typ, _ := outer.Lookup("x"); typ != Int {
		t.Fatalf("expected outer x to stay int, got %s", typ)
	}

	inner.Insert("x", Int)
	if typ, _ := inner.Lookup("x"); typ != Int {
		t.Fatalf("expected redeclaration to overwrite, got %s", typ)
	}
}

func TestScopeStopsAtFunctionBoundary(t *testing.T) {
	global := NewScope(nil)
	global.Insert("g", Int)

	sig := &FunctionSignature{Name: "f", Params: []Type{Bool}, ParamNames: []string{"p"}, Return: Void}
	body := NewFunctionScope(global, sig)
	block := NewScope(body)

	if _, ok := block.Lookup("g"); ok {
		t.Fatalf("expected g to be invisible inside f")
	}
	if fn := block.EnclosingFunction(); fn != sig {
		t.Fatalf("expected enclosing function f, got %v", fn)
	}
	if global.EnclosingFunction() != nil {
		t.Fatalf("expected no enclosing function at top level")
	}
	if typ, ok := sig.Param("p"); !ok || typ != Bool {
		t.Fatalf("expected parameter p of type bool, got %s, %v", typ, ok)
	}
}

func TestSignatureString(t *testing.T) {
	sig := FunctionSignature{
		Name:       "add",
		Params:     []Type{Int, Bool},
		ParamNames: []string{"a", "b"},
		Return:     Int,
	}
	if got, want := sig.String(), "fn int add(int a, bool b)"; got != want {
		t.Fatalf("expected %q, got %q", want, got)
	}
}
