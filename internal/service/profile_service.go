package service

import (
	"stockfolio/internal/model"
)

// Profile holds the non-credential profile info shown on the profile and
// dashboard pages. There is no profile table; the content is a deterministic
// fixture keyed off the user record.
type Profile struct {
	Username        string
	Email           string
	MemberSince     string
	PreferredStocks []string
}

// Recommendation is one entry of the recommendations page.
type Recommendation struct {
	Ticker string
	Action string
	Reason string
}

// ProfileService serves profile and recommendation fixtures.
type ProfileService interface {
	Profile(user *model.User) Profile
	Recommendations() []Recommendation
}

type profileService struct{}

// NewProfileService creates a profile service.
func NewProfileService() ProfileService {
	return &profileService{}
}

func (s *profileService) Profile(user *model.User) Profile {
	return Profile{
		Username:        user.Username,
		Email:           user.Email,
		MemberSince:     user.CreatedAt.Format("January 2, 2006"),
		PreferredStocks: []string{"AAPL", "GOOGL", "MSFT"},
	}
}

func (s *profileService) Recommendations() []Recommendation {
	return []Recommendation{
		{Ticker: "AAPL", Action: "Buy", Reason: "Strong earnings and continued services growth."},
		{Ticker: "GOOGL", Action: "Hold", Reason: "Fairly valued after the recent run-up."},
		{Ticker: "MSFT", Action: "Buy", Reason: "Cloud segment keeps expanding margins."},
		{Ticker: "TSLA", Action: "Sell", Reason: "Valuation stretched relative to delivery numbers."},
	}
}
