package repositories

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
)

var (
	ErrTournamentPlayerNotFound = errors.New("tournament player registration not found")
	ErrTournamentPlayerConflict = errors.New("player is already registered for this tournament")
	ErrTournamentPlayerInvalid  = errors.New("tournament player reference conflict or invalid")
)

type TournamentPlayerRepository interface {
	Add(ctx context.Context, tp *models.TournamentPlayer) error
	Remove(ctx context.Context, tournamentID, userID int) error
	Exists(ctx context.Context, tournamentID, userID int) (bool, error)
	ListPlayers(ctx context.Context, tournamentID int) ([]models.User, error)
}

type postgresTournamentPlayerRepository struct {
	db *sql.DB
}

func NewPostgresTournamentPlayerRepository(db *sql.DB) TournamentPlayerRepository {
	return &postgresTournamentPlayerRepository{db: db}
}

func (r *postgresTournamentPlayerRepository) Add(ctx context.Context, tp *models.TournamentPlayer) error {
	query := `
		INSERT INTO tournament_players (tournament_id, user_id)
		VALUES ($1, $2)
		RETURNING created_at`

	err := r.db.QueryRowContext(ctx, query, tp.TournamentID, tp.UserID).Scan(&tp.CreatedAt)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok {
			switch pqErr.Code {
			case "23505": // unique_violation
				return ErrTournamentPlayerConflict
			case "23503": // foreign_key_violation
				return ErrTournamentPlayerInvalid
			}
		}
		return err
	}
	return nil
}

func (r *postgresTournamentPlayerRepository) Remove(ctx context.Context, tournamentID, userID int) error {
	query := `DELETE FROM tournament_players WHERE tournament_id = $1 AND user_id = $2`
	result, err := r.db.ExecContext(ctx, query, tournamentID, userID)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentPlayerNotFound)
}

func (r *postgresTournamentPlayerRepository) Exists(ctx context.Context, tournamentID, userID int) (bool, error) {
	query := `SELECT EXISTS (SELECT 1 FROM tournament_players WHERE tournament_id = $1 AND user_id = $2)`
	var exists bool
	if err := r.db.QueryRowContext(ctx, query, tournamentID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// ListPlayers returns the users registered for a tournament, ordered by join
// time.
func (r *postgresTournamentPlayerRepository) ListPlayers(ctx context.Context, tournamentID int) ([]models.User, error) {
	query := `
		SELECT u.id, u.email, u.full_name, u.role, u.verification_status, u.password_hash, u.avatar_key, u.created_at, u.updated_at
		FROM tournament_players tp
		JOIN users u ON u.id = tp.user_id
		WHERE tp.tournament_id = $1
		ORDER BY tp.created_at ASC, u.id ASC`

	rows, err := r.db.QueryContext(ctx, query, tournamentID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	players := make([]models.User, 0)
	for rows.Next() {
		var u models.User
		if err := rows.Scan(
			&u.ID,
			&u.Email,
			&u.FullName,
			&u.Role,
			&u.VerificationStatus,
			&u.PasswordHash,
			&u.AvatarKey,
			&u.CreatedAt,
			&u.UpdatedAt,
		); err != nil {
			return nil, err
		}
		players = append(players, u)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return players, nil
}
