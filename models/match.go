package models

import "time"

type MatchStatus string

const (
	MatchStatusScheduled  MatchStatus = "scheduled"
	MatchStatusInProgress MatchStatus = "in_progress"
	MatchStatusCompleted  MatchStatus = "completed"
)

func (s MatchStatus) Valid() bool {
	switch s {
	case MatchStatusScheduled, MatchStatusInProgress, MatchStatusCompleted:
		return true
	}
	return false
}

type Match struct {
	ID           int         `json:"id" db:"id"`
	TournamentID int         `json:"tournament_id" db:"tournament_id"`
	Player1ID    int         `json:"player1_id" db:"player1_id"`
	Player2ID    int         `json:"player2_id" db:"player2_id"`
	Court        *string     `json:"court,omitempty" db:"court"`
	ScheduledAt  *time.Time  `json:"scheduled_at,omitempty" db:"scheduled_at"`
	GamesPerSet  int         `json:"games_per_set" db:"games_per_set"`
	SetsPerMatch int         `json:"sets_per_match" db:"sets_per_match"`
	Player1Score int         `json:"player1_score" db:"player1_score"`
	Player2Score int         `json:"player2_score" db:"player2_score"`
	WinnerID     *int        `json:"winner_id,omitempty" db:"winner_id"`
	Status       MatchStatus `json:"status" db:"status"`
	CreatedAt    time.Time   `json:"created_at" db:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at" db:"updated_at"`

	// Ordered by set_number, populated on demand.
	Sets []MatchSet `json:"sets,omitempty" db:"-"`
}

// MatchSet is a sub-unit of a match with its own game tally per player.
type MatchSet struct {
	ID           int `json:"id" db:"id"`
	MatchID      int `json:"match_id" db:"match_id"`
	SetNumber    int `json:"set_number" db:"set_number"`
	Player1Games int `json:"player1_games" db:"player1_games"`
	Player2Games int `json:"player2_games" db:"player2_games"`
}
