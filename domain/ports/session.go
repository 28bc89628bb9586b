package ports

import "github.com/google/uuid"

// SessionTerminator is told when a user signs out so dependent live views
// can be torn down before the session is gone.
type SessionTerminator interface {
	EndSession(userID uuid.UUID)
}
