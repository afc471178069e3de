package models

import (
	"encoding/json"
	"math"
)

// PageInfo carries the pagination envelope shared by every paged result.
type PageInfo struct {
	TotalPages  int `json:"totalPages"`
	CurrentPage int `json:"currentPage"`
}

// UserPage is a page of users with their outgoing friend counts.
type UserPage struct {
	Users []UserListItem `json:"users"`
	PageInfo
}

// SearchPage is a page of users matching a search query.
type SearchPage struct {
	Users []User `json:"users"`
	PageInfo
}

// FriendPage is a page of a user's friends.
type FriendPage struct {
	Friends []FriendSummary `json:"friends"`
	PageInfo
}

// Stats holds graph-wide aggregates. AverageFriends is kept unrounded; it is
// rounded to two decimals only when rendered.
type Stats struct {
	TotalUsers     int64   `json:"totalUsers"`
	AverageFriends float64 `json:"averageFriends"`
}

// RoundedAverageFriends returns AverageFriends rounded to two decimal places.
func (s Stats) RoundedAverageFriends() float64 {
	return math.Round(s.AverageFriends*100) / 100
}

// MarshalJSON renders the presentation form of the stats.
func (s Stats) MarshalJSON() ([]byte, error) {
	type stats Stats
	out := stats(s)
	out.AverageFriends = s.RoundedAverageFriends()
	return json.Marshal(out)
}
