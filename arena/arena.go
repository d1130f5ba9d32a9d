package arena

import (
	"sync"
)

// Releaser is anything the arena can tear down when it is freed.
type Releaser interface {
	Release()
}

// ReleaseFunc adapts a plain function to the Releaser interface.
type ReleaseFunc func()

// Release calls the function.
func (f ReleaseFunc) Release() { f() }

// Arena is a hierarchical allocation context. Resources and child arenas
// attach to it and are torn down in reverse-acquisition order when the
// arena is freed. Freeing a parent frees every child first.
type Arena struct {
	parent   *Arena
	children []*Arena
	owned    []Releaser
	mu       sync.Mutex
	freed    bool
}

// New creates an arena. A nil parent creates a root arena; otherwise the
// arena attaches to the parent and is freed with it.
func New(parent *Arena) *Arena {
	a := &Arena{parent: parent}
	if parent != nil {
		parent.mu.Lock()
		parent.children = append(parent.children, a)
		parent.mu.Unlock()
	}
	return a
}

// Own attaches a resource to the arena. Resources are released in
// reverse-acquisition order when the arena is freed. Attaching to a
// freed arena releases the resource immediately.
func (a *Arena) Own(r Releaser) {
	a.mu.Lock()
	if a.freed {
		a.mu.Unlock()
		r.Release()
		return
	}
	a.owned = append(a.owned, r)
	a.mu.Unlock()
}

// OnFree is shorthand for Own(ReleaseFunc(fn)).
func (a *Arena) OnFree(fn func()) {
	a.Own(ReleaseFunc(fn))
}

// Freed reports whether the arena has been freed.
func (a *Arena) Freed() bool {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.freed
}

// Free releases every child arena, then every owned resource, both in
// reverse-acquisition order, and detaches from the parent. Free on an
// already-freed arena is a no-op.
func (a *Arena) Free() {
	a.mu.Lock()
	if a.freed {
		a.mu.Unlock()
		return
	}
	a.freed = true
	children := a.children
	owned := a.owned
	a.children = nil
	a.owned = nil
	a.mu.Unlock()

	for i := len(children) - 1; i >= 0; i-- {
		children[i].Free()
	}
	for i := len(owned) - 1; i >= 0; i-- {
		owned[i].Release()
	}

	if a.parent != nil {
		a.parent.detach(a)
	}
}

func (a *Arena) detach(child *Arena) {
	a.mu.Lock()
	defer a.mu.Unlock()
	for i, c := range a.children {
		if c == child {
			a.children = append(a.children[:i], a.children[i+1:]...)
			return
		}
	}
}
