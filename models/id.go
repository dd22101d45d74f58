package models

// ID maps the scratch sequence table backing the shared id namespace. Posts
// and comments both draw their ids from this one auto-increment counter.
type ID struct {
	ID uint64 `gorm:"primaryKey;autoIncrement" json:"id"`
}

// TableName pins the table name.
func (ID) TableName() string { return "ids" }
