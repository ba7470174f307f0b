package naming

import (
	"fmt"

	"github.com/dolthub/swiss"
)

// CollisionError is returned when two distinct grammars derive the same
// identifier.
type CollisionError struct {
	Name     string
	Grammar  string // grammar that first claimed Name
	Conflict string // grammar that derived the same Name
}

func (e *CollisionError) Error() string {
	return fmt.Sprintf("identifier %s derived from both grammar %q and grammar %q", e.Name, e.Grammar, e.Conflict)
}

// Set is an insertion-ordered set of unique grammar texts. The zero value is
// ready to use.
type Set struct {
	grammars []string
	index    *swiss.Map[string, int]    // grammar -> index in grammars
	owners   *swiss.Map[string, string] // identifier -> grammar
}

func (s *Set) init() {
	if s.index == nil {
		s.index = swiss.NewMap[string, int](16)
		s.owners = swiss.NewMap[string, string](16)
	}
}

// Add adds grammar to the set if it is not already present. It returns true
// if it was added, false if it was a duplicate. It returns a *CollisionError
// if the grammar is new but its identifier is already derived by another
// grammar of the set, in which case the grammar is not added.
func (s *Set) Add(grammar string) (bool, error) {
	s.init()
	if s.index.Has(grammar) {
		return false, nil
	}

	name := Identifier(grammar)
	if owner, ok := s.owners.Get(name); ok {
		return false, &CollisionError{Name: name, Grammar: owner, Conflict: grammar}
	}
	s.owners.Put(name, grammar)
	s.index.Put(grammar, len(s.grammars))
	s.grammars = append(s.grammars, grammar)
	return true, nil
}

// Len returns the number of grammars in the set.
func (s *Set) Len() int { return len(s.grammars) }

// Grammars returns the grammars in the order they were first added. The
// returned slice must not be modified.
func (s *Set) Grammars() []string { return s.grammars }

// Names returns the identifiers of the grammars, in the same order as
// Grammars.
func (s *Set) Names() []string {
	names := make([]string, len(s.grammars))
	for i, g := range s.grammars {
		names[i] = Identifier(g)
	}
	return names
}
