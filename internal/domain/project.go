package domain

import "time"

// Project is the root of a construction site. Type and Status are free text
// entered by users; Budget is nil when never estimated.
type Project struct {
	ID        string
	Name      string
	Type      *string
	Status    *string
	Address   string
	City      string
	Budget    *float64
	CreatedAt time.Time
}
