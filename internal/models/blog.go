package models

import "time"

// BlogPost is an article managed through the admin panel.
type BlogPost struct {
	ID          string
	Title       string
	Excerpt     string
	Content     string
	Image       string
	Category    string
	PublishedAt time.Time
	UpdatedAt   time.Time
}
