// Package models contains data structures for the application's domain models.
package models

import "time"

// User is a member of the social graph. Users are created and deleted, never updated.
type User struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"type:text;not null" json:"name"`
	Email     string    `gorm:"type:text;not null;uniqueIndex:email_idx" json:"email"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`
	UpdatedAt time.Time `gorm:"not null" json:"updatedAt"`
}

// TableName specifies the table name for GORM
func (User) TableName() string {
	return "users"
}

// UserListItem is a user row augmented with its outgoing friendship count.
type UserListItem struct {
	User
	FriendCount int64 `json:"friendCount"`
}

// FriendSummary is the friend-side projection returned when listing a user's friends.
type FriendSummary struct {
	ID    uint   `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}
