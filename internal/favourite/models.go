package favourite

import "time"

// Favourite bookmarks a profile for a user. At most one exists per
// (UserEmail, BiodataID) pair; only the owning user creates or deletes it.
type Favourite struct {
	UserEmail    string    `json:"userEmail"`
	BiodataID    int64     `json:"biodataId"`
	FavouritedAt time.Time `json:"favouritedAt"`
}
