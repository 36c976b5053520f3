package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/live"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/repositories"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/standings"
)

const (
	defaultGamesPerSet  = 6
	defaultSetsPerMatch = 3
)

type MatchService interface {
	Create(ctx context.Context, actor *models.User, input CreateMatchInput) (*models.Match, error)
	GetByID(ctx context.Context, id int) (*models.Match, error)
	ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]models.Match, error)
	UpdateDetails(ctx context.Context, actor *models.User, id int, input UpdateMatchInput) (*models.Match, error)
	UpdateScore(ctx context.Context, actor *models.User, id int, p1Score, p2Score int) (*models.Match, error)
	RecordSets(ctx context.Context, actor *models.User, id int, sets []SetInput) (*models.Match, error)
	Delete(ctx context.Context, actor *models.User, id int) error
}

type CreateMatchInput struct {
	TournamentID int        `json:"tournament_id"`
	Player1ID    int        `json:"player1_id"`
	Player2ID    int        `json:"player2_id"`
	Court        *string    `json:"court"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	GamesPerSet  int        `json:"games_per_set"`
	SetsPerMatch int        `json:"sets_per_match"`
}

type UpdateMatchInput struct {
	Court        *string    `json:"court"`
	ScheduledAt  *time.Time `json:"scheduled_at"`
	GamesPerSet  *int       `json:"games_per_set"`
	SetsPerMatch *int       `json:"sets_per_match"`
}

type SetInput struct {
	SetNumber    int `json:"set_number"`
	Player1Games int `json:"player1_games"`
	Player2Games int `json:"player2_games"`
}

type matchService struct {
	db         *sql.DB
	matchRepo  repositories.MatchRepository
	playerRepo repositories.TournamentPlayerRepository
	hub        *live.Hub
}

func NewMatchService(
	db *sql.DB,
	matchRepo repositories.MatchRepository,
	playerRepo repositories.TournamentPlayerRepository,
	hub *live.Hub,
) MatchService {
	return &matchService{
		db:         db,
		matchRepo:  matchRepo,
		playerRepo: playerRepo,
		hub:        hub,
	}
}

func (s *matchService) Create(ctx context.Context, actor *models.User, input CreateMatchInput) (*models.Match, error) {
	if err := authorizeMutation(actor); err != nil {
		return nil, err
	}
	if input.Player1ID == input.Player2ID {
		return nil, ErrMatchSamePlayer
	}

	for _, playerID := range []int{input.Player1ID, input.Player2ID} {
		registered, err := s.playerRepo.Exists(ctx, input.TournamentID, playerID)
		if err != nil {
			return nil, err
		}
		if !registered {
			return nil, fmt.Errorf("%w: user %d", ErrMatchPlayerNotRegistered, playerID)
		}
	}

	if input.GamesPerSet <= 0 {
		input.GamesPerSet = defaultGamesPerSet
	}
	if input.SetsPerMatch <= 0 {
		input.SetsPerMatch = defaultSetsPerMatch
	}

	match := &models.Match{
		TournamentID: input.TournamentID,
		Player1ID:    input.Player1ID,
		Player2ID:    input.Player2ID,
		Court:        input.Court,
		ScheduledAt:  input.ScheduledAt,
		GamesPerSet:  input.GamesPerSet,
		SetsPerMatch: input.SetsPerMatch,
		Status:       models.MatchStatusScheduled,
	}
	if err := s.matchRepo.Create(ctx, match); err != nil {
		switch {
		case errors.Is(err, repositories.ErrMatchTournamentInvalid):
			return nil, ErrTournamentNotFound
		case errors.Is(err, repositories.ErrMatchPlayerInvalid):
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return match, nil
}

func (s *matchService) GetByID(ctx context.Context, id int) (*models.Match, error) {
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	sets, err := s.matchRepo.ListSets(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to load sets for match %d: %w", id, err)
	}
	match.Sets = sets
	return match, nil
}

func (s *matchService) ListByTournament(ctx context.Context, tournamentID int, status *models.MatchStatus) ([]models.Match, error) {
	matches, err := s.matchRepo.ListByTournament(ctx, tournamentID, status)
	if err != nil {
		return nil, fmt.Errorf("failed to list matches for tournament %d: %w", tournamentID, err)
	}
	return matches, nil
}

func (s *matchService) UpdateDetails(ctx context.Context, actor *models.User, id int, input UpdateMatchInput) (*models.Match, error) {
	match, err := s.getForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	if input.Court != nil {
		match.Court = input.Court
	}
	if input.ScheduledAt != nil {
		match.ScheduledAt = input.ScheduledAt
	}
	if input.GamesPerSet != nil && *input.GamesPerSet > 0 {
		match.GamesPerSet = *input.GamesPerSet
	}
	if input.SetsPerMatch != nil && *input.SetsPerMatch > 0 {
		match.SetsPerMatch = *input.SetsPerMatch
	}

	if err := s.matchRepo.UpdateDetails(ctx, match); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	return match, nil
}

// UpdateScore records a partial (in-progress) score. The match moves to
// in_progress and no winner is determined.
func (s *matchService) UpdateScore(ctx context.Context, actor *models.User, id int, p1Score, p2Score int) (*models.Match, error) {
	match, err := s.getForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}
	if p1Score < 0 || p2Score < 0 {
		return nil, ErrMatchNegativeGames
	}

	if err := s.matchRepo.UpdateScoreStatusWinner(ctx, nil, id, p1Score, p2Score, models.MatchStatusInProgress, nil); err != nil {
		return nil, err
	}

	match.Player1Score = p1Score
	match.Player2Score = p2Score
	match.Status = models.MatchStatusInProgress
	match.WinnerID = nil

	s.broadcast(match.TournamentID, live.EventMatchUpdated, match)
	return match, nil
}

// RecordSets replaces the match's set records and finalizes the match: the
// aggregate scores become the sum over sets, the winner is evaluated, and the
// status transitions to completed. Writing the final sets IS the completion
// trigger; the two steps are composed inside a single transaction so the
// completed-implies-winner invariant can never be observed half-applied.
func (s *matchService) RecordSets(ctx context.Context, actor *models.User, id int, inputs []SetInput) (*models.Match, error) {
	match, err := s.getForMutation(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	sets, err := validateSets(inputs)
	if err != nil {
		return nil, err
	}

	p1Total, p2Total := 0, 0
	for _, set := range sets {
		p1Total += set.Player1Games
		p2Total += set.Player2Games
	}

	winnerID := match.Player1ID
	if standings.WinnerSlot(p1Total, p2Total) == standings.SlotPlayer2 {
		winnerID = match.Player2ID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if err := s.matchRepo.ReplaceSets(ctx, tx, id, sets); err != nil {
		return nil, err
	}
	if err := s.matchRepo.UpdateScoreStatusWinner(ctx, tx, id, p1Total, p2Total, models.MatchStatusCompleted, &winnerID); err != nil {
		return nil, err
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("failed to commit match result: %w", err)
	}

	match.Sets = sets
	match.Player1Score = p1Total
	match.Player2Score = p2Total
	match.WinnerID = &winnerID
	match.Status = models.MatchStatusCompleted

	s.broadcast(match.TournamentID, live.EventMatchCompleted, match)
	s.broadcast(match.TournamentID, live.EventLeaderboardChanged, map[string]int{"tournament_id": match.TournamentID})
	return match, nil
}

func (s *matchService) Delete(ctx context.Context, actor *models.User, id int) error {
	if _, err := s.getForMutation(ctx, actor, id); err != nil {
		return err
	}
	if err := s.matchRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return ErrMatchNotFound
		}
		return err
	}
	return nil
}

// getForMutation loads a match and rejects edits on completed matches:
// there is no transition out of completed.
func (s *matchService) getForMutation(ctx context.Context, actor *models.User, id int) (*models.Match, error) {
	if err := authorizeMutation(actor); err != nil {
		return nil, err
	}
	match, err := s.matchRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrMatchNotFound) {
			return nil, ErrMatchNotFound
		}
		return nil, err
	}
	if match.Status == models.MatchStatusCompleted {
		return nil, ErrMatchAlreadyCompleted
	}
	return match, nil
}

func (s *matchService) broadcast(tournamentID int, event string, payload interface{}) {
	if s.hub == nil {
		return
	}
	s.hub.BroadcastToRoom(live.TournamentRoom(tournamentID), event, payload)
}

func validateSets(inputs []SetInput) ([]models.MatchSet, error) {
	if len(inputs) == 0 {
		return nil, ErrMatchSetsRequired
	}

	seen := make(map[int]bool, len(inputs))
	sets := make([]models.MatchSet, 0, len(inputs))
	for _, in := range inputs {
		if in.Player1Games < 0 || in.Player2Games < 0 {
			return nil, ErrMatchNegativeGames
		}
		if in.SetNumber < 1 || in.SetNumber > len(inputs) || seen[in.SetNumber] {
			return nil, ErrMatchInvalidSetNumbers
		}
		seen[in.SetNumber] = true
		sets = append(sets, models.MatchSet{
			SetNumber:    in.SetNumber,
			Player1Games: in.Player1Games,
			Player2Games: in.Player2Games,
		})
	}
	return sets, nil
}
