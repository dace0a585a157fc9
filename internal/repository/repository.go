package repository

import (
	"errors"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

var (
	ErrNotFound  = errors.New("record not found")
	ErrDuplicate = errors.New("duplicate record")
)

const (
	SortRecent = "recent"
	SortScore  = "score"
)

// ProjectFilter narrows project listings. A zero Limit means no limit.
type ProjectFilter struct {
	OwnerID *uuid.UUID
	Sort    string
	Offset  int
	Limit   int
}

func (f ProjectFilter) order() string {
	if f.Sort == SortScore {
		return "overall_score DESC, created_at DESC"
	}
	return "created_at DESC"
}

// translate maps gorm errors onto the package sentinels.
func translate(err error) error {
	switch {
	case err == nil:
		return nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		return ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicate
	default:
		return err
	}
}
