package models

import "time"

// Inquiry records a contact or property inquiry submission. PropertyID and
// UserID are nullable: a contact form submission carries neither.
type Inquiry struct {
	ID            string
	Name          string
	Email         string
	Phone         string
	Message       string
	PropertyID    *string
	PropertyTitle string
	UserID        *string
	CreatedAt     time.Time
}
