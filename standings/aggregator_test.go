package standings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/standings"
)

func intPtr(v int) *int { return &v }

func completedMatch(p1, p2, s1, s2, winner int) models.Match {
	return models.Match{
		Player1ID:    p1,
		Player2ID:    p2,
		Player1Score: s1,
		Player2Score: s2,
		WinnerID:     intPtr(winner),
		Status:       models.MatchStatusCompleted,
	}
}

func TestAggregateSingleCompletedMatch(t *testing.T) {
	matches := []models.Match{completedMatch(1, 2, 6, 3, 1)}

	stats := standings.Aggregate(matches, []int{1, 2})

	a := stats[1]
	require.Equal(t, 1, a.MatchesPlayed)
	require.Equal(t, 1, a.Wins)
	require.Equal(t, 0, a.Losses)
	require.Equal(t, 6, a.GamesWon)
	require.Equal(t, 3, a.GamesLost)

	b := stats[2]
	require.Equal(t, 1, b.MatchesPlayed)
	require.Equal(t, 0, b.Wins)
	require.Equal(t, 1, b.Losses)
	require.Equal(t, 3, b.GamesWon)
	require.Equal(t, 6, b.GamesLost)
}

func TestAggregateExcludesUnfinishedMatches(t *testing.T) {
	matches := []models.Match{
		{Player1ID: 1, Player2ID: 2, Status: models.MatchStatusScheduled},
		{Player1ID: 1, Player2ID: 2, Player1Score: 4, Player2Score: 2, Status: models.MatchStatusInProgress},
		// completed but winner never determined
		{Player1ID: 1, Player2ID: 2, Player1Score: 6, Player2Score: 4, Status: models.MatchStatusCompleted},
	}

	stats := standings.Aggregate(matches, []int{1, 2})

	require.Equal(t, 0, stats[1].MatchesPlayed)
	require.Equal(t, 0, stats[2].MatchesPlayed)
	require.Equal(t, 0, stats[1].GamesWon)
	require.Equal(t, 0, stats[2].GamesWon)
}

func TestAggregateSkipsUnknownPlayers(t *testing.T) {
	// player 99 is not part of the tournament roster
	matches := []models.Match{completedMatch(1, 99, 6, 2, 1)}

	stats := standings.Aggregate(matches, []int{1, 2})

	require.Equal(t, 1, stats[1].MatchesPlayed)
	require.Equal(t, 6, stats[1].GamesWon)
	require.NotContains(t, stats, 99)
	require.Equal(t, 0, stats[2].MatchesPlayed)
}

// Games conservation: across a completed match, the games credited to each
// side must sum to both players' recorded totals.
func TestAggregateGameConservation(t *testing.T) {
	matches := []models.Match{
		completedMatch(1, 2, 6, 4, 1),
		completedMatch(2, 3, 7, 5, 2),
		completedMatch(1, 3, 3, 6, 3),
	}

	stats := standings.Aggregate(matches, []int{1, 2, 3})

	totalWon, totalLost, totalRecorded := 0, 0, 0
	for _, s := range stats {
		totalWon += s.GamesWon
		totalLost += s.GamesLost
	}
	for _, m := range matches {
		totalRecorded += m.Player1Score + m.Player2Score
	}
	require.Equal(t, totalRecorded, totalWon)
	require.Equal(t, totalRecorded, totalLost)
}

func TestAggregateInitializesAllRosterPlayers(t *testing.T) {
	stats := standings.Aggregate(nil, []int{5, 6})

	require.Len(t, stats, 2)
	require.Equal(t, 5, stats[5].PlayerID)
	require.Zero(t, stats[6].MatchesPlayed)
}
