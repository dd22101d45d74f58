package models

// Comment represents a reply to a post. Parent references posts.post_id;
// the store verifies it exists before inserting.
type Comment struct {
	Content   string    `gorm:"size:800;not null" json:"content"`
	Board     uint8     `gorm:"not null" json:"board"`
	Parent    uint64    `gorm:"not null;index" json:"parent"`
	Ext       string    `gorm:"size:5;not null;default:''" json:"ext"`
	ComID     uint64    `gorm:"column:com_id;primaryKey;autoIncrement:false" json:"com_id"`
	CreatedAt Timestamp `gorm:"type:datetime;not null" json:"created_at"`
}

// TableName pins the table name.
func (Comment) TableName() string { return "comments" }
