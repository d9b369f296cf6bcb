package records

import (
	"fmt"

	"github.com/dmitrijs2005/gophrecords/internal/common"
)

// Scope partitions records by application flavor.
type Scope string

const (
	ScopePets   Scope = "pets"
	ScopeCars   Scope = "cars"
	ScopeFamily Scope = "family"
	ScopeHouse  Scope = "house"
)

// Scopes lists every known scope.
var Scopes = []Scope{ScopePets, ScopeCars, ScopeFamily, ScopeHouse}

func (s Scope) Valid() bool {
	switch s {
	case ScopePets, ScopeCars, ScopeFamily, ScopeHouse:
		return true
	}
	return false
}

// ParseScope validates s and returns it as a Scope.
func ParseScope(s string) (Scope, error) {
	scope := Scope(s)
	if !scope.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidScope, s)
	}
	return scope, nil
}

// Collection names one of the two replicated record collections.
type Collection string

const (
	CollectionSubjects Collection = "subjects"
	CollectionEvents   Collection = "events"
)

func (c Collection) Valid() bool {
	return c == CollectionSubjects || c == CollectionEvents
}

// ParseCollection validates s and returns it as a Collection.
func ParseCollection(s string) (Collection, error) {
	c := Collection(s)
	if !c.Valid() {
		return "", fmt.Errorf("%w: %q", common.ErrInvalidCollection, s)
	}
	return c, nil
}
