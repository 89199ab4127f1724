package model

import "time"

// Founder is the single founder profile shown on the public site. The store
// enforces that at most one profile exists at a time.
type Founder struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio"`
	Image     string    `json:"image"`
	Badges    []string  `json:"badges"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}
