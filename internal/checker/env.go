package checker

// Scope is a parent-chained binding environment. Lookup walks outward;
// Define always binds in the innermost scope, shadowing any outer binding
// of the same name.
type Scope struct {
	parent *Scope
	vars   map[string]*Type
}

// NewScope returns a scope nested inside parent (parent may be nil).
func NewScope(parent *Scope) *Scope {
	return &Scope{parent: parent, vars: make(map[string]*Type)}
}

// Define binds name to t in this scope.
func (s *Scope) Define(name string, t *Type) {
	s.vars[name] = t
}

// Lookup resolves name through the scope chain.
func (s *Scope) Lookup(name string) (*Type, bool) {
	for cur := s; cur != nil; cur = cur.parent {
		if t, ok := cur.vars[name]; ok {
			return t, true
		}
	}
	return nil, false
}

// DefinedHere reports whether name is bound in this scope, ignoring parents.
func (s *Scope) DefinedHere(name string) bool {
	_, ok := s.vars[name]
	return ok
}
