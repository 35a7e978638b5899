package expr

// Name references a value bound somewhere in the scope chain, typically a
// column of the row under evaluation or a binding from an enclosing scope.
type Name struct {
	name string
}

// NewName creates a reference to the given name.
func NewName(name string) *Name {
	return &Name{name: name}
}

// Name returns the referenced name.
func (n *Name) Name() string {
	return n.name
}

// Eval resolves the name through the scope chain, innermost scope first. A
// name bound nowhere in the chain fails with ErrUnresolvedName.
func (n *Name) Eval(scope *Scope) (any, error) {
	value, ok := scope.Resolve(n.name)
	if !ok {
		return nil, ErrUnresolvedName.New(n.name)
	}
	return value, nil
}

func (n *Name) String() string {
	return n.name
}
