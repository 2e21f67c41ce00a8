package models

import "time"

// Parent represents a guardian account with read-only visibility into the
// students it is linked to.
type Parent struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Name      string    `gorm:"size:255;not null" json:"name"`
	Email     string    `gorm:"size:255;uniqueIndex;not null" json:"email"`
	Password  string    `gorm:"size:255;not null" json:"-"`
	Phone     string    `gorm:"size:32" json:"phone"`
	IsActive  bool      `gorm:"not null;default:true" json:"is_active"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ParentLink associates a parent with a student. The composite unique index
// keeps the pair unique; the link itself carries no further lifecycle.
type ParentLink struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	ParentID  uint      `gorm:"not null;uniqueIndex:idx_parent_links_pair" json:"parent_id"`
	StudentID uint      `gorm:"not null;uniqueIndex:idx_parent_links_pair" json:"student_id"`
	CreatedAt time.Time `json:"created_at"`

	Parent  Parent  `json:"-"`
	Student Student `json:"-"`
}
