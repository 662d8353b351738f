package viewsync

import (
	"fmt"
	"sync"

	"dreamytimer/internal/core/model"
)

// Surface is a display that renders clock snapshots.
// OnSnapshot must not call back into the Hub.
type Surface interface {
	OnSnapshot(snapshot model.Snapshot)
}

// SurfaceFunc adapts a function to Surface.
type SurfaceFunc func(model.Snapshot)

// OnSnapshot calls fn.
func (fn SurfaceFunc) OnSnapshot(snapshot model.Snapshot) {
	fn(snapshot)
}

// Hub fans snapshots out to every registered surface. It keeps the newest
// snapshot so surfaces registered later start in sync.
type Hub struct {
	mu       sync.Mutex
	nextID   int
	surfaces []registration
	last     model.Snapshot
	hasLast  bool
}

type registration struct {
	id      int
	surface Surface
}

// NewHub creates an empty Hub.
func NewHub() *Hub {
	return &Hub{}
}

// Register adds surface and pushes the last snapshot to it, if any.
// The returned function removes the surface; calling it twice is safe.
func (hub *Hub) Register(surface Surface) func() {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	hub.nextID++
	id := hub.nextID
	hub.surfaces = append(hub.surfaces, registration{id: id, surface: surface})
	if hub.hasLast {
		surface.OnSnapshot(hub.last)
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			hub.deregister(id)
		})
	}
}

// Publish delivers snapshot to every surface unless a newer one was
// already delivered.
func (hub *Hub) Publish(snapshot model.Snapshot) {
	hub.mu.Lock()
	defer hub.mu.Unlock()

	if hub.hasLast && snapshot.Seq <= hub.last.Seq {
		return
	}
	hub.last = snapshot
	hub.hasLast = true
	for _, entry := range hub.surfaces {
		entry.surface.OnSnapshot(snapshot)
	}
}

// Last returns the newest published snapshot.
func (hub *Hub) Last() (model.Snapshot, bool) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return hub.last, hub.hasLast
}

// Len returns the number of registered surfaces.
func (hub *Hub) Len() int {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	return len(hub.surfaces)
}

func (hub *Hub) deregister(id int) {
	hub.mu.Lock()
	defer hub.mu.Unlock()
	for index, entry := range hub.surfaces {
		if entry.id == id {
			hub.surfaces = append(hub.surfaces[:index], hub.surfaces[index+1:]...)
			return
		}
	}
}

// FormatRemaining renders seconds as MM:SS. Minutes are not capped at two
// digits, so two hours render as "120:00".
func FormatRemaining(seconds int) string {
	if seconds < 0 {
		seconds = 0
	}
	return fmt.Sprintf("%02d:%02d", seconds/60, seconds%60)
}
