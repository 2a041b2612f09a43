// Package runtime holds the scope chain programs run against.
package runtime

import (
	"github.com/pontaoski/minilang/errors"
	"github.com/pontaoski/minilang/values"
)

// Environment is one scope in a chain. Lookups and assignments walk from
// the innermost scope outward.
type Environment struct {
	names  map[string]values.Value
	parent *Environment
}

// NewEnvironment creates a scope enclosed by parent, which may be nil for
// the root scope.
func NewEnvironment(parent *Environment) *Environment {
	return &Environment{
		names:  make(map[string]values.Value),
		parent: parent,
	}
}

func (e *Environment) Parent() *Environment {
	return e.parent
}

// Define binds name in this scope only, replacing any earlier binding here.
func (e *Environment) Define(name string, v values.Value) {
	e.names[name] = v
}

func (e *Environment) lookup(name string) *Environment {
	for env := e; env != nil; env = env.parent {
		if _, ok := env.names[name]; ok {
			return env
		}
	}
	return nil
}

// Assign rebinds name in the nearest scope that defines it.
func (e *Environment) Assign(name string, v values.Value) error {
	env := e.lookup(name)
	if env == nil {
		return errors.UndefinedVariable(name)
	}

	env.names[name] = v
	return nil
}

func (e *Environment) Get(name string) (values.Value, error) {
	env := e.lookup(name)
	if env == nil {
		return nil, errors.UndefinedVariable(name)
	}

	return env.names[name], nil
}
