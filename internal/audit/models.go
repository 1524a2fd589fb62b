package audit

import "time"

// Action identifies a privileged mutation worth an audit trail.
type Action string

const (
	ActionPromoteAdmin   Action = "user.promote_admin"
	ActionGrantPremium   Action = "user.grant_premium"
	ActionApprovePremium Action = "biodata.approve_premium"
	ActionApproveContact Action = "contact.approve"
	ActionApproveStory   Action = "story.approve"
)

// Event is one append-only audit record. Subject identifies the entity the
// actor mutated (user id, biodata id, request id).
type Event struct {
	Action    Action    `json:"action"`
	Actor     string    `json:"actor"`
	Subject   string    `json:"subject"`
	Timestamp time.Time `json:"timestamp"`
}
