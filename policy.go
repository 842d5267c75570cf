// FILE: lixenwraith/treelog/policy.go
package treelog

import (
	"sync"
)

// rwLocker is the lock contract a threading policy supplies to a sink
// driver node. The guarded policy maps it onto a sync.RWMutex; the
// uncontended policy supplies no-op locks and assumes single-goroutine
// access to the node.
type rwLocker interface {
	Lock()
	Unlock()
	RLock()
	RUnlock()
}

// noopLocker is the uncontended policy's lock. Every operation on a node
// using it must come from one goroutine at a time.
type noopLocker struct{}

func (noopLocker) Lock()    {}
func (noopLocker) Unlock()  {}
func (noopLocker) RLock()   {}
func (noopLocker) RUnlock() {}

// newPolicyLock returns the lock for a threading policy name. The name
// has been validated by Config.validate before reaching here.
func newPolicyLock(threading string) rwLocker {
	if threading == ThreadingUncontended {
		return noopLocker{}
	}
	return &sync.RWMutex{}
}
