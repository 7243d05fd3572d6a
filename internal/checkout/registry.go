package checkout

import (
	"context"
	"sync"

	"github.com/google/uuid"

	"github.com/kamilags232/cinestar-checkout/internal/store"
)

// Registry tracks the live checkout visits of this instance.  Visit
// state is in-process; only the reload-surviving keys live in the
// store.  No visit is ever shared between checkout sessions: each
// browser tab opens its own.
type Registry struct {
	mu      sync.RWMutex
	visits  map[string]*Visit
	rows    int
	cols    int
	backend Backend
	store   store.Store
}

// NewRegistry builds a registry creating rows x cols grids for every
// new visit.
func NewRegistry(rows, cols int, backend Backend, st store.Store) *Registry {
	return &Registry{
		visits:  make(map[string]*Visit),
		rows:    rows,
		cols:    cols,
		backend: backend,
		store:   st,
	}
}

// Open creates a visit for a customer arriving from the listing
// screen.  The chosen movie is persisted right away so a reload keeps
// it; passing an empty movie leaves whatever an earlier tab stored.
func (r *Registry) Open(ctx context.Context, movie string) (*Visit, error) {
	id := uuid.NewString()
	v, err := NewVisit(id, r.rows, r.cols, r.backend, r.store)
	if err != nil {
		return nil, err
	}
	if movie != "" {
		if err := r.store.Set(ctx, id, store.KeySelectedMovie, movie); err != nil {
			return nil, err
		}
	}
	r.mu.Lock()
	r.visits[id] = v
	r.mu.Unlock()
	return v, nil
}

// Get looks up a live visit by id.
func (r *Registry) Get(id string) (*Visit, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	v, ok := r.visits[id]
	return v, ok
}

// Remove discards a finished visit.  Grid, fares and cart go with it.
func (r *Registry) Remove(id string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.visits, id)
}
