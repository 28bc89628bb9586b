package nats

// Task change events are published per user so instances can fan snapshots
// out to only the connections that care.
const (
	SubjectTaskChanged = "tasks.changed" // tasks.changed.<user_id>

	// Wildcard every instance subscribes on.
	SubjectTaskChangedAll = SubjectTaskChanged + ".>"
)

func taskChangedSubject(userID string) string {
	return SubjectTaskChanged + "." + userID
}
