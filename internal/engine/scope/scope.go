// Released under an MIT license. See LICENSE.

// Package scope provides rill's lexical environments.
package scope

import (
	"github.com/rill-lang/rill/internal/common/interface/cell"
)

// T (scope) maps names to values. Lookups that miss continue in the
// enclosing scope.
type T struct {
	prev *T
	vars map[string]cell.I
}

type scope = T

// New creates a new scope enclosed by prev. The outermost scope has a nil
// prev.
func New(prev *T) *T {
	return &scope{prev: prev, vars: map[string]cell.I{}}
}

// Define binds k to v in this scope, shadowing any binding in an
// enclosing scope.
func (s *scope) Define(k string, v cell.I) {
	s.vars[k] = v
}

// Get returns the binding for k, looking outward through enclosing scopes.
func (s *scope) Get(k string) (cell.I, bool) {
	for c := s; c != nil; c = c.prev {
		if v, ok := c.vars[k]; ok {
			return v, true
		}
	}

	return nil, false
}

// Set rebinds k where it is currently bound. If k is unbound everywhere,
// it is bound in this scope.
func (s *scope) Set(k string, v cell.I) {
	for c := s; c != nil; c = c.prev {
		if _, ok := c.vars[k]; ok {
			c.vars[k] = v

			return
		}
	}

	s.vars[k] = v
}
