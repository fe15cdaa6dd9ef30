package codegen

import "fmt"

// Context is the mutable state of one compilation's code generation: the
// name counter, the variable-to-slot bindings and the enclosing loops.
// Generate builds a fresh Context for every call.
type Context struct {
	counter int

	// scopes mirrors the analyzer's block scopes. The innermost binding of a
	// name wins, and leaving a block restores the outer binding.
	scopes []map[string]string

	loops []loopLabels
}

type loopLabels struct {
	start string
	end   string
}

// NewContext returns an empty emission context.
func NewContext() *Context {
	return &Context{}
}

// next returns the next value of the monotonic counter.
func (c *Context) next() int {
	c.counter++
	return c.counter
}

func (c *Context) temp() string {
	return fmt.Sprintf("%%t.%d", c.next())
}

func (c *Context) label(kind string) string {
	return fmt.Sprintf("%s.%d", kind, c.next())
}

func (c *Context) pushScope() {
	c.scopes = append(c.scopes, make(map[string]string))
}

func (c *Context) popScope() {
	if n := len(c.scopes); n > 0 {
		c.scopes = c.scopes[:n-1]
	}
}

// declare binds name to a fresh slot in the innermost scope.
func (c *Context) declare(name string) string {
	slot := fmt.Sprintf("%%%s.%d", name, c.next())
	if len(c.scopes) == 0 {
		c.pushScope()
	}
	c.scopes[len(c.scopes)-1][name] = slot
	return slot
}

// slot resolves the current slot for name.
func (c *Context) slot(name string) (string, bool) {
	for i := len(c.scopes) - 1; i >= 0; i-- {
		if slot, ok := c.scopes[i][name]; ok {
			return slot, true
		}
	}
	return "", false
}

func (c *Context) pushLoop(l loopLabels) {
	c.loops = append(c.loops, l)
}

func (c *Context) popLoop() {
	if n := len(c.loops); n > 0 {
		c.loops = c.loops[:n-1]
	}
}

func (c *Context) innermostLoop() (loopLabels, bool) {
	if len(c.loops) == 0 {
		return loopLabels{}, false
	}
	return c.loops[len(c.loops)-1], true
}
