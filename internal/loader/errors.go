package loader

import (
	"fmt"
)

// NotFoundError reports a requested or transitively required module name with
// no registry declaration. Referrer is the module whose dependency list named
// it, or empty when the missing module was requested at the top level.
type NotFoundError struct {
	Name     string
	Referrer string
}

func (e *NotFoundError) Error() string {
	if e.Referrer == "" {
		return fmt.Sprintf("module '%s' not found", e.Name)
	}
	return fmt.Sprintf("module '%s' not found (required by '%s')", e.Name, e.Referrer)
}

// CycleError reports a module whose dependency list names a module already on
// the active resolution path.
type CycleError struct {
	Module     string // the module being resolved
	Dependency string // the dependency closing the cycle
}

func (e *CycleError) Error() string {
	return fmt.Sprintf("circular dependency: module '%s' requires '%s', which is already being resolved", e.Module, e.Dependency)
}
