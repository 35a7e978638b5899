package expr

// Scope is a chain of name-to-value bindings. Resolution consults the local
// bindings first and falls back to the outer scope, so an inner scope
// shadows every scope above it. Scopes are not safe for concurrent
// modification; evaluation is sequential and each chain belongs to a single
// evaluation.
type Scope struct {
	values map[string]any
	outer  *Scope
}

// NewScope creates a scope over the given bindings with outer as its
// fallback. A nil values map is treated as empty, and a nil outer means the
// chain ends here.
func NewScope(values map[string]any, outer *Scope) *Scope {
	if values == nil {
		values = make(map[string]any)
	}
	return &Scope{values: values, outer: outer}
}

// NewBaseScope creates a root scope seeded with the given functions, so
// calls can resolve them by name like any other binding.
func NewBaseScope(fns FunctionMap) *Scope {
	s := NewScope(nil, nil)
	for name, fn := range fns {
		s.values[name] = fn
	}
	return s
}

// Child creates a scope over values that falls back to s. Calling Child on a
// nil scope is allowed and produces a chain of one level.
func (s *Scope) Child(values map[string]any) *Scope {
	return NewScope(values, s)
}

// Bind sets a name in this scope, shadowing any binding of the same name in
// outer scopes.
func (s *Scope) Bind(name string, value any) {
	s.values[name] = value
}

// Resolve looks a name up through the scope chain, innermost scope first.
func (s *Scope) Resolve(name string) (any, bool) {
	if s == nil {
		return nil, false
	}
	value, ok := s.values[name]
	if !ok && s.outer != nil {
		return s.outer.Resolve(name)
	}
	return value, ok
}

// Len returns the number of bindings in this scope alone, ignoring outer
// scopes.
func (s *Scope) Len() int {
	if s == nil {
		return 0
	}
	return len(s.values)
}
