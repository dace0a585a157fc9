// Package auth issues and verifies access tokens and carries the caller's
// identity explicitly through request handling.
package auth

import (
	"time"

	"github.com/google/uuid"
)

// Identity is an authenticated user as proven by a verified token.
type Identity struct {
	UserID    uuid.UUID
	Email     string
	TokenID   string
	ExpiresAt time.Time
}

// RequestContext is what handlers hand to usecases: who is calling, if
// anyone.
type RequestContext struct {
	Identity *Identity
}

func Anonymous() RequestContext { return RequestContext{} }

func For(id Identity) RequestContext { return RequestContext{Identity: &id} }

func (rc RequestContext) Authenticated() bool { return rc.Identity != nil }

// UserID returns the caller's id and whether there is a caller at all.
func (rc RequestContext) UserID() (uuid.UUID, bool) {
	if rc.Identity == nil {
		return uuid.Nil, false
	}
	return rc.Identity.UserID, true
}
