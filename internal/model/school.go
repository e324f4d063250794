package model

import "time"

// School represents a registered school record.
type School struct {
	ID      uint   `gorm:"primaryKey" json:"id"`
	Name    string `gorm:"size:255;not null" json:"name"`
	Address string `gorm:"type:text;not null" json:"address"`
	City    string `gorm:"size:100;not null" json:"city"`
	State   string `gorm:"size:100;not null" json:"state"`
	Contact string `gorm:"size:15;not null" json:"contact"`
	// Image is either a URL string or the name of a file stored under the
	// asset directory, depending on the deployment mode.
	Image     string    `gorm:"type:text" json:"image"`
	Email     string    `gorm:"column:email_id;size:255;not null;uniqueIndex" json:"email_id"`
	CreatedAt time.Time `json:"created_at"`
}
