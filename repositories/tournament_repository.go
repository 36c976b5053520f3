package repositories

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/lib/pq"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
)

var (
	ErrTournamentNotFound       = errors.New("tournament not found")
	ErrTournamentNameConflict   = errors.New("tournament name conflict")
	ErrTournamentCreatorInvalid = errors.New("tournament creator conflict or invalid")
)

type TournamentRepository interface {
	Create(ctx context.Context, tournament *models.Tournament) error
	GetByID(ctx context.Context, id int) (*models.Tournament, error)
	List(ctx context.Context, limit, offset int) ([]models.Tournament, error)
	Update(ctx context.Context, tournament *models.Tournament) error
	UpdateLogoKey(ctx context.Context, id int, key *string) error
	Delete(ctx context.Context, id int) error
}

type postgresTournamentRepository struct {
	db *sql.DB
}

func NewPostgresTournamentRepository(db *sql.DB) TournamentRepository {
	return &postgresTournamentRepository{db: db}
}

const tournamentColumns = `id, name, description, start_date, end_date, created_by, logo_key, created_at, updated_at`

func (r *postgresTournamentRepository) Create(ctx context.Context, tournament *models.Tournament) error {
	query := `
		INSERT INTO tournaments (name, description, start_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, created_at, updated_at`

	err := r.db.QueryRowContext(ctx, query,
		tournament.Name,
		tournament.Description,
		tournament.StartDate,
		tournament.EndDate,
		tournament.CreatedBy,
	).Scan(&tournament.ID, &tournament.CreatedAt, &tournament.UpdatedAt)

	return r.handleTournamentError(err)
}

func (r *postgresTournamentRepository) GetByID(ctx context.Context, id int) (*models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + ` FROM tournaments WHERE id = $1`
	row := r.db.QueryRowContext(ctx, query, id)
	return scanTournament(row)
}

func (r *postgresTournamentRepository) List(ctx context.Context, limit, offset int) ([]models.Tournament, error) {
	query := `SELECT ` + tournamentColumns + `
		FROM tournaments
		ORDER BY start_date DESC, id DESC
		LIMIT $1 OFFSET $2`

	rows, err := r.db.QueryContext(ctx, query, limit, offset)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	tournaments := make([]models.Tournament, 0)
	for rows.Next() {
		t, errScan := scanTournament(rows)
		if errScan != nil {
			return nil, errScan
		}
		tournaments = append(tournaments, *t)
	}
	if err = rows.Err(); err != nil {
		return nil, err
	}
	return tournaments, nil
}

func (r *postgresTournamentRepository) Update(ctx context.Context, tournament *models.Tournament) error {
	query := `
		UPDATE tournaments SET
			name = $1,
			description = $2,
			start_date = $3,
			end_date = $4,
			updated_at = NOW()
		WHERE id = $5`

	result, err := r.db.ExecContext(ctx, query,
		tournament.Name,
		tournament.Description,
		tournament.StartDate,
		tournament.EndDate,
		tournament.ID,
	)
	if err != nil {
		return r.handleTournamentError(err)
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) UpdateLogoKey(ctx context.Context, id int, key *string) error {
	query := `UPDATE tournaments SET logo_key = $1, updated_at = NOW() WHERE id = $2`
	result, err := r.db.ExecContext(ctx, query, key, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) Delete(ctx context.Context, id int) error {
	query := `DELETE FROM tournaments WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	return checkAffectedRows(result, ErrTournamentNotFound)
}

func (r *postgresTournamentRepository) handleTournamentError(err error) error {
	if err == nil {
		return nil
	}
	if pqErr, ok := err.(*pq.Error); ok {
		switch pqErr.Code {
		case "23505": // unique_violation
			if pqErr.Constraint == "tournaments_name_key" {
				return ErrTournamentNameConflict
			}
		case "23503": // foreign_key_violation
			if pqErr.Constraint == "tournaments_created_by_fkey" {
				return ErrTournamentCreatorInvalid
			}
		}
	}
	return err
}

func scanTournament(rowScanner interface{ Scan(...interface{}) error }) (*models.Tournament, error) {
	var t models.Tournament
	err := rowScanner.Scan(
		&t.ID,
		&t.Name,
		&t.Description,
		&t.StartDate,
		&t.EndDate,
		&t.CreatedBy,
		&t.LogoKey,
		&t.CreatedAt,
		&t.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrTournamentNotFound
		}
		return nil, fmt.Errorf("failed to scan tournament: %w", err)
	}
	return &t, nil
}
