package story

import (
	"time"

	"github.com/google/uuid"
)

// Status gates public visibility: a story appears on the public surface
// only once approved.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
)

// Story is a submitted marriage narrative linking two profiles.
type Story struct {
	ID               uuid.UUID `json:"_id"`
	SelfBiodataID    int64     `json:"selfBiodataId"`
	PartnerBiodataID int64     `json:"partnerBiodataId"`
	CoupleImage      string    `json:"coupleImage,omitempty"`
	StoryText        string    `json:"successStory"`
	MarriageDate     string    `json:"marriageDate,omitempty"`
	Status           Status    `json:"status"`
	CreatedAt        time.Time `json:"createdAt"`
}
