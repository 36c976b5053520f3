package models

import "time"

// TournamentStatus is derived from the tournament dates, never stored.
type TournamentStatus string

const (
	TournamentUpcoming  TournamentStatus = "upcoming"
	TournamentActive    TournamentStatus = "active"
	TournamentCompleted TournamentStatus = "completed"
)

type Tournament struct {
	ID          int        `json:"id" db:"id"`
	Name        string     `json:"name" db:"name"`
	Description *string    `json:"description,omitempty" db:"description"`
	StartDate   time.Time  `json:"start_date" db:"start_date"`
	EndDate     *time.Time `json:"end_date,omitempty" db:"end_date"`
	CreatedBy   int        `json:"created_by" db:"created_by"`
	LogoKey     *string    `json:"-" db:"logo_key"`
	LogoURL     *string    `json:"logo_url,omitempty" db:"-"`
	CreatedAt   time.Time  `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at" db:"updated_at"`

	// Derived, populated by the service before serialization.
	Status TournamentStatus `json:"status,omitempty" db:"-"`

	// Optional linked data, not mapped directly.
	Creator *User  `json:"creator,omitempty" db:"-"`
	Players []User `json:"players,omitempty" db:"-"`
}

// StatusAt derives the tournament status from its dates.
func (t *Tournament) StatusAt(now time.Time) TournamentStatus {
	if now.Before(t.StartDate) {
		return TournamentUpcoming
	}
	if t.EndDate != nil && now.After(*t.EndDate) {
		return TournamentCompleted
	}
	return TournamentActive
}

// TournamentPlayer links a player to a tournament. No lifecycle beyond
// insertion and removal.
type TournamentPlayer struct {
	TournamentID int       `json:"tournament_id" db:"tournament_id"`
	UserID       int       `json:"user_id" db:"user_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}
