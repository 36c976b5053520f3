package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lib/pq"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
)

var (
	ErrMatchNotFound          = errors.New("match not found")
	ErrMatchTournamentInvalid = errors.New("match tournament conflict or invalid")
	ErrMatchPlayerInvalid     = errors.New("match player conflict or invalid")
)

type MatchRepository interface {
	Create(ctx context.Context, match *models.Match) error
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]models.Match, error)
	UpdateDetails(ctx context.Context, match *models.Match) error
	UpdateScoreStatusWinner(ctx context.Context, exec SQLExecutor, id int, p1Score, p2Score int, status models.MatchStatus, winnerID *int) error
	ReplaceSets(ctx context.Context, exec SQLExecutor, matchID int, sets []models.MatchSet) error
	ListSets(ctx context.Context, matchID int) ([]models.MatchSet, error)
	Delete(ctx context.Context, id int) error
}

type postgresMatchRepository struct {
	db *sql.DB
}

func NewPostgresMatchRepository(db *sql.DB) MatchRepository {
	return &postgresMatchRepository{db: db}
}

func (r *postgresMatchRepository) getExecutor(exec SQLExecutor) SQLExecutor {
	if exec != nil {
		return exec
	}
	return r.db
}

const matchColumns = `id, tournament_id, player1_id, player2_id, court, scheduled_at,
		games_per_set, sets_per_match, player1_score, player2_score, winner_id, status, created_at, updated_at`

func (r *postgresMatchRepository) Create(ctx context.Context, match *models.Match) error {
	query := `
		INSERT INTO matches
			(tournament_id, player1_id, player2_id, court, scheduled_at, games_per_set, sets_per_match, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, player1_score, player2_score, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		match.TournamentID,
		match.Player1ID,
		match.Player2ID,
		match.Court,
		match.ScheduledAt,
		match.GamesPerSet,
		match.SetsPerMatch,
		match.Status,
	).Scan(&match.ID, &match.Player1Score, &match.Player2Score, &match.CreatedAt, &match.UpdatedAt)

	return r.handleMatchError(err)
}

func (r *postgresMatchRepository) GetByID(ctx context.Context, id int) (*models.Match, error) {
	query := `SELECT ` + matchColumns + ` FROM matches WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	match, err := scanMatch(row)
	if err != nil {
		return nil, err
	}
	return match, nil
}

func (r *postgresMatchRepository) ListByTournament(ctx context.Context, tournamentID int, statusFilter *models.MatchStatus) ([]models.Match, error) {
	var queryBuilder strings.Builder
	queryBuilder.WriteString(`SELECT ` + matchColumns + ` FROM matches WHERE tournament_id = $1`)

	args := []interface{}{tournamentID}
	if statusFilter != nil {
		queryBuilder.WriteString(" AND status = $" + strconv.Itoa(len(args)+1))
		args = append(args, *statusFilter)
	}
	queryBuilder.WriteString(" ORDER BY scheduled_at ASC NULLS LAST, id ASC")

	rows, err := r.db.QueryContext(ctx, queryBuilder.String(), args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	matches := make([]models.Match, 0)
	for rows.Next() {
		m, errScan := scanMatch(rows)
		if errScan != nil {
			return nil, errScan
		}
		matches = append(matches, *m)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return matches, nil
}

func (r *postgresMatchRepository) UpdateDetails(ctx context.Context, match *models.Match) error {
	query := `
		UPDATE matches SET
			court = $1,
			scheduled_at = $2,
			games_per_set = $3,
			sets_per_match = $4,
			updated_at = NOW()
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		match.Court,
		match.ScheduledAt,
		match.GamesPerSet,
		match.SetsPerMatch,
		match.ID,
	)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) UpdateScoreStatusWinner(ctx context.Context, exec SQLExecutor, id int, p1Score, p2Score int, status models.MatchStatus, winnerID *int) error {
	executor := r.getExecutor(exec)
	query := `
		UPDATE matches SET
			player1_score = $1,
			player2_score = $2,
			status = $3,
			winner_id = $4,
			updated_at = NOW()
		WHERE id = $5`

	result, err := executor.ExecContext(ctx, query, p1Score, p2Score, status, winnerID, id)
	if err != nil {
		return r.handleMatchError(err)
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

// ReplaceSets swaps out the full ordered set list of a match. Callers that
// need atomicity with a match-row update pass the transaction as exec.
func (r *postgresMatchRepository) ReplaceSets(ctx context.Context, exec SQLExecutor, matchID int, sets []models.MatchSet) error {
	executor := r.getExecutor(exec)

	if _, err := executor.ExecContext(ctx, `DELETE FROM match_sets WHERE match_id = $1`, matchID); err != nil {
		return fmt.Errorf("failed to clear match sets for match %d: %w", matchID, err)
	}

	query := `
		INSERT INTO match_sets (match_id, set_number, player1_games, player2_games)
		VALUES ($1, $2, $3, $4)
		RETURNING id`
	for i := range sets {
		sets[i].MatchID = matchID
		err := executor.QueryRowContext(ctx, query,
			matchID,
			sets[i].SetNumber,
			sets[i].Player1Games,
			sets[i].Player2Games,
		).Scan(&sets[i].ID)
		if err != nil {
			return fmt.Errorf("failed to insert set %d for match %d: %w", sets[i].SetNumber, matchID, err)
		}
	}
	return nil
}

func (r *postgresMatchRepository) ListSets(ctx context.Context, matchID int) ([]models.MatchSet, error) {
	query := `
		SELECT id, match_id, set_number, player1_games, player2_games
		FROM match_sets
		WHERE match_id = $1
		ORDER BY set_number ASC`

	rows, err := r.db.QueryContext(ctx, query, matchID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	sets := make([]models.MatchSet, 0)
	for rows.Next() {
		var s models.MatchSet
		if err := rows.Scan(&s.ID, &s.MatchID, &s.SetNumber, &s.Player1Games, &s.Player2Games); err != nil {
			return nil, err
		}
		sets = append(sets, s)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return sets, nil
}

func (r *postgresMatchRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM matches WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrMatchNotFound)
}

func (r *postgresMatchRepository) handleMatchError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23503" {
		switch pqErr.Constraint {
		case "matches_tournament_id_fkey":
			return ErrMatchTournamentInvalid
		case "matches_player1_id_fkey", "matches_player2_id_fkey", "matches_winner_id_fkey":
			return ErrMatchPlayerInvalid
		}
	}
	return err
}

func scanMatch(rowScanner interface{ Scan(...interface{}) error }) (*models.Match, error) {
	var m models.Match
	err := rowScanner.Scan(
		&m.ID,
		&m.TournamentID,
		&m.Player1ID,
		&m.Player2ID,
		&m.Court,
		&m.ScheduledAt,
		&m.GamesPerSet,
		&m.SetsPerMatch,
		&m.Player1Score,
		&m.Player2Score,
		&m.WinnerID,
		&m.Status,
		&m.CreatedAt,
		&m.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrMatchNotFound
		}
		return nil, fmt.Errorf("failed to scan match: %w", err)
	}
	return &m, nil
}
