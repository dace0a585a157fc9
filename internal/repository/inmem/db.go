// Package inmem keeps users, projects and reviews in process memory. It
// backs DB_DRIVER=memory for local runs and the usecase/handler tests.
package inmem

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/fadilmartias/project-review/internal/model"
)

type DB struct {
	mu       sync.RWMutex
	users    map[uuid.UUID]model.User
	projects map[uuid.UUID]model.Project
	reviews  map[uuid.UUID]model.Review
	now      func() time.Time
}

func Open() *DB {
	return &DB{
		users:    make(map[uuid.UUID]model.User),
		projects: make(map[uuid.UUID]model.Project),
		reviews:  make(map[uuid.UUID]model.Review),
		now:      time.Now,
	}
}

func (db *DB) stamp(created, updated *time.Time) {
	now := db.now()
	if created != nil && created.IsZero() {
		*created = now
	}
	if updated != nil {
		*updated = now
	}
}
