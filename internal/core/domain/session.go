package domain

import (
	"errors"
	"time"
)

const (
	RoleAdmin = "admin"
	RoleVoter = "voter"
)

// VoterSession binds a verified external identity to a session. HasVoted is
// the registry's source of truth for "has this identity already voted";
// it flips false→true exactly once, on successful ballot commit, and never
// back. Multiple un-voted sessions per identity are tolerated.
type VoterSession struct {
	SessionID   string    `json:"session_id" bson:"_id"`
	IdentityID  string    `json:"identity_id" bson:"identity_id"`
	Email       string    `json:"email" bson:"email"`
	DisplayName string    `json:"display_name" bson:"display_name"`
	IsAdmin     bool      `json:"is_admin" bson:"is_admin"`
	HasVoted    bool      `json:"has_voted" bson:"has_voted"`
	CreatedAt   time.Time `json:"created_at" bson:"created_at"`
}

// Identity is the verified triple produced by the external identity
// provider. The engine consumes it as input and never verifies
// credentials itself.
type Identity struct {
	IdentityID string
	Email      string
	Name       string
}

var ErrSessionNotFound = errors.New("session not found")
var ErrInvalidCredentials = errors.New("invalid credentials")
var ErrForbidden = errors.New("access forbidden")
var ErrInvalidToken = errors.New("invalid voter token")
var ErrTokenConsumed = errors.New("voter token already used")
