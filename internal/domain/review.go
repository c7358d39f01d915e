package domain

import "time"

// Review is a public customer review
type Review struct {
	ID        int64
	Name      string
	Rating    int
	Comment   string
	CreatedAt time.Time
}
