package finance

import "sync"

// The persisted plan is one JSON blob, so two concurrent read-modify-write
// cycles against the same plan would silently drop the first write. Mutations
// are serialized per plan id within the process; across processes the store
// still behaves last-write-wins.
var planLocks sync.Map // plan id -> *sync.Mutex

func lockPlan(id string) func() {
	v, _ := planLocks.LoadOrStore(id, &sync.Mutex{})
	mu := v.(*sync.Mutex)
	mu.Lock()
	return mu.Unlock
}
