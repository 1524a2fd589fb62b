package dashboard

import "time"

// AdminStats is the full admin rollup. Every count is a snapshot read; no
// consistency is guaranteed across the counts in one response.
type AdminStats struct {
	TotalUsers              int64 `json:"totalUsers"`
	PremiumUsers            int64 `json:"premiumUsers"`
	TotalBiodata            int64 `json:"totalBiodata"`
	MaleBiodata             int64 `json:"maleBiodata"`
	FemaleBiodata           int64 `json:"femaleBiodata"`
	PremiumBiodata          int64 `json:"premiumBiodata"`
	MalePremiumBiodata      int64 `json:"malePremiumBiodata"`
	FemalePremiumBiodata    int64 `json:"femalePremiumBiodata"`
	TotalSuccessStories     int64 `json:"totalSuccessStories"`
	ApprovedSuccessStories  int64 `json:"approvedSuccessStories"`
	PendingSuccessStories   int64 `json:"pendingSuccessStories"`
	TotalContactRequests    int64 `json:"totalContactRequests"`
	ApprovedContactRequests int64 `json:"approvedContactRequests"`
	PendingContactRequests  int64 `json:"pendingContactRequests"`
	TotalRevenue            int64 `json:"totalRevenue"`
}

// ContactStats summarizes a member's own disclosure requests.
type ContactStats struct {
	Total    int64 `json:"total"`
	Approved int64 `json:"approved"`
	Pending  int64 `json:"pending"`
}

// BiodataSummary is the member dashboard's view of their own profile.
type BiodataSummary struct {
	BiodataID   int64  `json:"biodataId"`
	Status      string `json:"bioDataStatus"`
	IsCompleted bool   `json:"isCompleted"`
}

// UserSummary is the member dashboard rollup.
type UserSummary struct {
	Biodata         *BiodataSummary `json:"biodata"`
	IsPremium       bool            `json:"isPremium"`
	FavouritesCount int64           `json:"favouritesCount"`
	ContactStats    ContactStats    `json:"contactStats"`
	SuccessStory    any             `json:"successStory"`
}

// PublicCounters feeds the public landing page.
type PublicCounters struct {
	TotalBiodata   int64     `json:"totalBiodata"`
	MaleBiodata    int64     `json:"maleBiodata"`
	FemaleBiodata  int64     `json:"femaleBiodata"`
	TotalMarriages int64     `json:"totalMarriages"`
	LastUpdated    time.Time `json:"lastUpdated"`
}
