package ports

import "github.com/google/uuid"

// StatusNotifier surfaces exactly one terminal human-readable notice per
// mutation to the acting user. Advisory side channel, not part of any
// operation's return contract; the web client renders these as toasts.
type StatusNotifier interface {
	NotifySuccess(userID uuid.UUID, message string)
	NotifyError(userID uuid.UUID, message string)
}
