package session

import (
	"time"

	"github.com/neurogrid/storefront/core/apiclient"
)

// Status is the authentication state of a session.
type Status int

const (
	Unauthenticated Status = iota
	Resolving
	Authenticated
)

func (s Status) String() string {
	switch s {
	case Unauthenticated:
		return "unauthenticated"
	case Resolving:
		return "resolving"
	case Authenticated:
		return "authenticated"
	default:
		return "unknown"
	}
}

// User is the resolved account.
type User = apiclient.User

// Snapshot is an immutable view of session state.
type Snapshot struct {
	Status   Status
	User     *User // non-nil iff Status == Authenticated
	HasToken bool
	Epoch    uint64
	// ExpiresAt is the token's unverified exp claim, zero when unknown.
	// Informational; expiry is never enforced locally.
	ExpiresAt time.Time
}

// IsAuthenticated reports whether the snapshot holds a resolved user.
func (s Snapshot) IsAuthenticated() bool {
	return s.Status == Authenticated && s.User != nil
}

// UserID returns the resolved user id as a string, or "".
func (s Snapshot) UserID() string {
	if s.User == nil {
		return ""
	}
	return s.User.ID.String()
}
