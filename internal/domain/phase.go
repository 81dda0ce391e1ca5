package domain

import "time"

// Phase groups lots within a project (e.g. "Gros oeuvre").
type Phase struct {
	ID         string
	ProjectID  string
	Name       string
	OrderIndex int
	CreatedAt  time.Time
}
