package planning

import "context"

// Strategy is a planning algorithm producing a Result from an input snapshot.
// Implementations own no shared state; a strategy instance is bound to one
// configuration and may be reused across runs.
type Strategy interface {
	Name() string
	Plan(ctx context.Context, snapshot *Snapshot) (*Result, error)
}
