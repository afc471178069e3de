package models

import "time"

// Friendship is a directed edge from UserID to FriendID. (A,B) and (B,A) are
// distinct rows; the reciprocal edge is never created implicitly.
type Friendship struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	UserID    uint      `gorm:"not null;uniqueIndex:unique_friendship_idx,priority:1" json:"userId"`
	FriendID  uint      `gorm:"not null;uniqueIndex:unique_friendship_idx,priority:2" json:"friendId"`
	CreatedAt time.Time `gorm:"not null" json:"createdAt"`

	// Relationships, only used to declare the foreign keys.
	User   *User `gorm:"foreignKey:UserID" json:"-"`
	Friend *User `gorm:"foreignKey:FriendID" json:"-"`
}

// TableName specifies the table name for GORM
func (Friendship) TableName() string {
	return "friendships"
}
