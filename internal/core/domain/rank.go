package domain

import "time"

const (
	MinRating = 1
	MaxRating = 5

	// RankDateLayout is the calendar date format ranks are stored and queried with.
	RankDateLayout = "2006-01-02"
)

// FoodRank is a single dish rating. CompanyID, Country and CafeName are
// copied from the author's profile when the rank is posted and never follow
// later profile changes.
type FoodRank struct {
	ID        string
	UserID    string
	CompanyID string
	CafeName  string
	Country   string
	Date      time.Time
	Dish      string
	Rating    int
	ImageURL  *string
	Comment   *string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// ValidRating reports whether r lies within [MinRating, MaxRating].
func ValidRating(r int) bool {
	return r >= MinRating && r <= MaxRating
}

// Stats holds the admin dashboard counters.
type Stats struct {
	Users            int64 `json:"users"`
	Companies        int64 `json:"companies"`
	Ranks            int64 `json:"ranks"`
	PendingCompanies int64 `json:"pending_companies"`
	PendingRequests  int64 `json:"pending_requests"`
}
