package models

// UserSectionSummary is one user's entry in a batch report: either the four
// section counts or an error marker, never both.
type UserSectionSummary struct {
	UserID        string `json:"userId"`
	Vehicles      int    `json:"vehicles"`
	FavoriteSpots int    `json:"favoriteSpots"`
	History       int    `json:"history"`
	ActiveStatus  int    `json:"activeStatus"`
	Error         string `json:"error,omitempty"`
	Message       string `json:"message,omitempty"`
}

// Failed reports whether this entry is an error marker.
func (s UserSectionSummary) Failed() bool {
	return s.Error != ""
}

// ProfileReport aggregates section counts across a batch of users. Field
// names match the report document emitted by the batch endpoint.
type ProfileReport struct {
	GeneratedAt        string               `json:"generated_at"`
	TotalUsers         int                  `json:"total_users"`
	SuccessfulUsers    int                  `json:"successful_users"`
	FailedUsers        int                  `json:"failed_users"`
	TotalVehicles      int                  `json:"total_vehicles"`
	TotalFavoriteSpots int                  `json:"total_favorite_spots"`
	TotalHistory       int                  `json:"total_history"`
	TotalActiveStatus  int                  `json:"total_active_status"`
	Users              []UserSectionSummary `json:"users"`
}
