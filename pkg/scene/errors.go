package scene

import "fmt"

// ConsistencyError is a fatal scene error: an invariant the renderer relies
// on does not hold. Rendering never starts when one is returned.
type ConsistencyError struct {
	Component string // which component detected the violation
	Invariant string // which invariant failed
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("scene consistency error in %s: %s", e.Component, e.Invariant)
}
