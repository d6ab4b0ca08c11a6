package model

// Status is the moderation status of a release.
type Status string

const (
	StatusOnUpload   Status = "on_upload"
	StatusModeration Status = "moderation"
	StatusApproved   Status = "approved"
	StatusRejected   Status = "rejected"
	StatusNeedsFix   Status = "needs_fix"
	StatusDeleted    Status = "deleted"
)

// Valid reports whether s is one of the six known statuses.
func (s Status) Valid() bool {
	switch s {
	case StatusOnUpload, StatusModeration, StatusApproved, StatusRejected, StatusNeedsFix, StatusDeleted:
		return true
	}
	return false
}

// InFlight reports whether the release is still being worked on. In-flight
// cards carry the full moderator control row.
func (s Status) InFlight() bool {
	return s == StatusOnUpload || s == StatusModeration
}

// Settled reports whether the release reached a terminal outcome. Settled
// cards collapse their controls to a single re-open button.
func (s Status) Settled() bool {
	return s.Valid() && !s.InFlight()
}
