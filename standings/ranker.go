package standings

import (
	"sort"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
)

// Rank orders aggregated stats into a ranked sequence. Players who have not
// played a completed match are excluded: you must have played to rank.
//
// Ordering: games_won desc, then wins desc, then matches_played asc (fewer
// matches for the same haul ranks higher), then player id asc. The secondary
// keys make the output deterministic regardless of map iteration order.
// Ranks are 1-based positions in the sorted sequence.
func Rank(stats map[int]*models.PlayerStats) []models.PlayerStats {
	ranked := make([]models.PlayerStats, 0, len(stats))
	for _, s := range stats {
		if s == nil || s.MatchesPlayed == 0 {
			continue
		}
		ranked = append(ranked, *s)
	}

	sort.Slice(ranked, func(i, j int) bool {
		a, b := ranked[i], ranked[j]
		if a.GamesWon != b.GamesWon {
			return a.GamesWon > b.GamesWon
		}
		if a.Wins != b.Wins {
			return a.Wins > b.Wins
		}
		if a.MatchesPlayed != b.MatchesPlayed {
			return a.MatchesPlayed < b.MatchesPlayed
		}
		return a.PlayerID < b.PlayerID
	})

	return ranked
}
