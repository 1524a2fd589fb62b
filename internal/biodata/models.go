package biodata

import (
	"time"

	"github.com/google/uuid"
)

// Type is the profile category used for matching and similarity.
type Type string

const (
	TypeMale   Type = "Male"
	TypeFemale Type = "Female"
)

// Status is the premium progression of a profile. Transitions are
// free -> pending (member request) -> premium (admin approval).
type Status string

const (
	StatusFree    Status = "free"
	StatusPending Status = "pending"
	StatusPremium Status = "premium"
)

// Biodata is a member's matchmaking profile. BiodataID is the sequential
// public identifier, distinct from the storage key and immutable once
// assigned. MobileNumber and ContactEmail are the private contact fields the
// disclosure workflow gates.
type Biodata struct {
	ID                uuid.UUID      `json:"_id"`
	BiodataID         int64          `json:"biodataId"`
	ContactEmail      string         `json:"contactEmail"`
	Type              Type           `json:"biodataType"`
	Status            Status         `json:"bioDataStatus"`
	Name              string         `json:"name"`
	Age               int            `json:"age"`
	Occupation        string         `json:"occupation"`
	PermanentDivision string         `json:"permanentDivision"`
	MobileNumber      string         `json:"mobileNumber"`
	Attrs             map[string]any `json:"attrs,omitempty"`
	CreatedAt         time.Time      `json:"createdAt"`
	UpdatedAt         time.Time      `json:"updatedAt"`
}

// SearchFilter narrows the public listing. Zero values mean "no filter";
// the age range applies only when both bounds are set, matching the
// behavior clients already depend on.
type SearchFilter struct {
	Search   string
	MinAge   int
	MaxAge   int
	Type     Type
	Division string
	Page     int
	Limit    int
}

// SearchResult carries one page plus pagination metadata.
type SearchResult struct {
	Items       []*Biodata `json:"data"`
	Total       int64      `json:"total"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}
