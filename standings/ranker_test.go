package standings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/standings"
)

func TestRankOrdersByGamesWon(t *testing.T) {
	matches := []models.Match{completedMatch(1, 2, 6, 3, 1)}
	stats := standings.Aggregate(matches, []int{1, 2})

	ranked := standings.Rank(stats)

	require.Len(t, ranked, 2)
	require.Equal(t, 1, ranked[0].PlayerID)
	require.Equal(t, 6, ranked[0].GamesWon)
	require.Equal(t, 3, ranked[1].GamesWon)
}

func TestRankExcludesPlayersWithoutMatches(t *testing.T) {
	matches := []models.Match{completedMatch(1, 2, 6, 3, 1)}
	// player 3 is registered but never played
	stats := standings.Aggregate(matches, []int{1, 2, 3})

	ranked := standings.Rank(stats)

	require.Len(t, ranked, 2)
	for _, e := range ranked {
		require.NotEqual(t, 3, e.PlayerID)
	}
}

func TestRankTieBreaksAreDeterministic(t *testing.T) {
	// players 2 and 3 end on the same games_won (8); 3 has a win, 2 does not
	matches := []models.Match{
		completedMatch(1, 2, 6, 6, 1), // equal scores, winner recorded as player1
		completedMatch(2, 3, 2, 6, 3),
		completedMatch(1, 3, 6, 2, 1),
	}
	stats := standings.Aggregate(matches, []int{1, 2, 3})

	ranked := standings.Rank(stats)

	require.Len(t, ranked, 3)
	require.Equal(t, 1, ranked[0].PlayerID) // 12 games won
	require.Equal(t, 3, ranked[1].PlayerID) // 8 games, 1 win
	require.Equal(t, 2, ranked[2].PlayerID) // 8 games, 0 wins
}

func TestRankEqualGamesFallBackToWinsThenPlayerID(t *testing.T) {
	stats := map[int]*models.PlayerStats{
		4: {PlayerID: 4, MatchesPlayed: 2, Wins: 1, GamesWon: 10},
		7: {PlayerID: 7, MatchesPlayed: 2, Wins: 2, GamesWon: 10},
		9: {PlayerID: 9, MatchesPlayed: 2, Wins: 1, GamesWon: 10},
	}

	ranked := standings.Rank(stats)

	require.Equal(t, []int{7, 4, 9}, []int{ranked[0].PlayerID, ranked[1].PlayerID, ranked[2].PlayerID})
}

func TestRankIsIdempotent(t *testing.T) {
	matches := []models.Match{
		completedMatch(1, 2, 6, 4, 1),
		completedMatch(2, 3, 7, 5, 2),
		completedMatch(1, 3, 3, 6, 3),
	}
	stats := standings.Aggregate(matches, []int{1, 2, 3})

	first := standings.Rank(stats)
	second := standings.Rank(standings.Aggregate(matches, []int{1, 2, 3}))

	require.Equal(t, first, second)
}
