package models

import "math"

// MaxBumpCount is the ceiling the reply counter saturates at. BumpCount is
// a signed tinyint in the schema, so incrementing past 127 would error
// under strict SQL mode and roll back the reply.
const MaxBumpCount = math.MaxInt8

// Post represents a thread-opening post on a board. The primary key is
// assigned from the shared id sequence, never auto-incremented. BumpedAt
// starts equal to CreatedAt and moves forward whenever a reply arrives.
type Post struct {
	Title     string    `gorm:"size:50;not null;index" json:"title"`
	Content   string    `gorm:"size:800;not null" json:"content"`
	Board     uint8     `gorm:"not null;index" json:"board"`
	Ext       string    `gorm:"size:5;not null;default:''" json:"ext"`
	PostID    uint64    `gorm:"column:post_id;primaryKey;autoIncrement:false" json:"post_id"`
	CreatedAt Timestamp `gorm:"type:datetime;not null" json:"created_at"`
	BumpedAt  Timestamp `gorm:"type:datetime;not null" json:"bumped_at"`
	BumpCount int8      `gorm:"not null;default:0" json:"bump_count"`
}

// TableName pins the table name.
func (Post) TableName() string { return "posts" }
