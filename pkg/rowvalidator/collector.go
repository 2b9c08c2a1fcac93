package rowvalidator

import (
	"context"
	"slices"
	"sync"
)

// FailureCollector implements SkipsOnFailure by keeping every failure in memory.
// Embed it in an import spec to opt into the skip policy:
//
//	type customers struct {
//		rowvalidator.FailureCollector
//	}
//
//	func (*customers) Rules() map[string]any { ... }
//
// The import spec must then be passed by pointer. It is safe for concurrent use.
type FailureCollector struct {
	mu       sync.Mutex
	failures []Failure
}

func (c *FailureCollector) OnFailure(_ context.Context, failures ...Failure) {
	c.mu.Lock()
	c.failures = append(c.failures, failures...)
	c.mu.Unlock()
}

// Failures returns the collected failures in arrival order.
func (c *FailureCollector) Failures() []Failure {
	c.mu.Lock()
	defer c.mu.Unlock()
	return slices.Clone(c.failures)
}

// Reset drops the collected failures.
func (c *FailureCollector) Reset() {
	c.mu.Lock()
	c.failures = nil
	c.mu.Unlock()
}
