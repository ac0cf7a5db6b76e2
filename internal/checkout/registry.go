package checkout

import (
	"sync"

	pkgerrors "github.com/jlizarraga/healthybreads-backend/pkg/errors"
)

// Registry holds the in-flight captures by id. Captures are transient,
// per-customer state and are never persisted.
type Registry struct {
	mu       sync.RWMutex
	captures map[string]*Capture
}

func NewRegistry() *Registry {
	return &Registry{captures: make(map[string]*Capture)}
}

// Create starts a new capture and registers it.
func (r *Registry) Create() *Capture {
	capture := NewCapture()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.captures[capture.ID()] = capture
	return capture
}

// Get returns the capture with the given id.
func (r *Registry) Get(id string) (*Capture, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	capture, ok := r.captures[id]
	if !ok {
		return nil, pkgerrors.New(pkgerrors.CodeNotFound, "capture not found")
	}
	return capture, nil
}
