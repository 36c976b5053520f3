package services

import (
	"context"
	"errors"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/repositories"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/standings"
)

type LeaderboardService interface {
	Compute(ctx context.Context, tournamentID int) ([]models.LeaderboardEntry, error)
}

type leaderboardService struct {
	tournamentRepo repositories.TournamentRepository
	playerRepo     repositories.TournamentPlayerRepository
	matchRepo      repositories.MatchRepository
}

func NewLeaderboardService(
	tournamentRepo repositories.TournamentRepository,
	playerRepo repositories.TournamentPlayerRepository,
	matchRepo repositories.MatchRepository,
) LeaderboardService {
	return &leaderboardService{
		tournamentRepo: tournamentRepo,
		playerRepo:     playerRepo,
		matchRepo:      matchRepo,
	}
}

// Compute recomputes the leaderboard from source on every call. Nothing is
// cached; the result is derived from whatever match and roster state is
// committed at the time of the query.
func (s *leaderboardService) Compute(ctx context.Context, tournamentID int) ([]models.LeaderboardEntry, error) {
	if _, err := s.tournamentRepo.GetByID(ctx, tournamentID); err != nil {
		if errors.Is(err, repositories.ErrTournamentNotFound) {
			return nil, ErrTournamentNotFound
		}
		return nil, err
	}

	var (
		players []models.User
		matches []models.Match
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		players, err = s.playerRepo.ListPlayers(gctx, tournamentID)
		if err != nil {
			return fmt.Errorf("failed to list tournament players: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		matches, err = s.matchRepo.ListByTournament(gctx, tournamentID, nil)
		if err != nil {
			return fmt.Errorf("failed to list tournament matches: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	playerIDs := make([]int, len(players))
	namesByID := make(map[int]string, len(players))
	for i, p := range players {
		playerIDs[i] = p.ID
		namesByID[p.ID] = p.FullName
	}

	ranked := standings.Rank(standings.Aggregate(matches, playerIDs))

	entries := make([]models.LeaderboardEntry, len(ranked))
	for i, s := range ranked {
		entries[i] = models.LeaderboardEntry{
			PlayerID:      s.PlayerID,
			PlayerName:    namesByID[s.PlayerID],
			GamesWon:      s.GamesWon,
			GamesLost:     s.GamesLost,
			MatchesPlayed: s.MatchesPlayed,
			Wins:          s.Wins,
			Losses:        s.Losses,
			Rank:          i + 1,
		}
	}
	return entries, nil
}
