package session

import (
	"time"

	"github.com/google/uuid"
)

// Local cache keys.
func identityKey(userID uuid.UUID) string   { return "user:" + userID.String() + ":identity" }
func backgroundKey(userID uuid.UUID) string { return "user:" + userID.String() + ":background" }
func sessionKey(sessionID uuid.UUID) string { return "session:" + sessionID.String() }

// cachedSession is the local cache record of an auth session.
type cachedSession struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	StartedAt time.Time `json:"started_at"`
}
