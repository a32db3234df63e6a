package domain

// FriendRequest is a pending, one-directional request. The request's
// lifecycle is encoded by row existence rather than a status field:
// a row exists while pending, and accepting or declining deletes it.
// Acceptance additionally creates both directions of the friendship
// before the row is removed, so a crash mid-accept leaves a retryable
// pending request rather than a half-formed silent state.
type FriendRequest struct {
	ID        string
	FromEmail string
	ToEmail   string
}
