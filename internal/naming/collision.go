package naming

import (
	"fmt"
	"sync"
)

// CollisionResolver tracks output folders claimed by projects and resolves
// duplicates by appending "_dupN" suffixes. All methods are goroutine-safe.
type CollisionResolver struct {
	mu       sync.Mutex
	owners   map[string]string // output folder → project that owns it
	counters map[string]int    // requested folder → next dup counter
}

// NewCollisionResolver creates a ready-to-use resolver.
func NewCollisionResolver() *CollisionResolver {
	return &CollisionResolver{
		owners:   make(map[string]string),
		counters: make(map[string]int),
	}
}

// Resolve returns the final output folder for project. If requested is
// unclaimed (or already owned by project) it is returned as-is. Otherwise a
// "_dupN" variant is generated.
func (cr *CollisionResolver) Resolve(project, requested string) string {
	cr.mu.Lock()
	defer cr.mu.Unlock()

	owner, exists := cr.owners[requested]
	if !exists || owner == project {
		cr.owners[requested] = project
		return requested
	}

	counter := cr.counters[requested]
	if counter == 0 {
		counter = 1
	}
	for {
		candidate := fmt.Sprintf("%s_dup%d", requested, counter)
		cOwner, cExists := cr.owners[candidate]
		if !cExists || cOwner == project {
			cr.counters[requested] = counter + 1
			cr.owners[candidate] = project
			return candidate
		}
		counter++
	}
}
