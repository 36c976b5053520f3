package standings

import (
	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/models"
)

// Aggregate folds completed matches into per-player totals.
//
// Every id in playerIDs gets a zeroed stats record up front so that players
// without results still exist in the mapping. A match contributes only when
// its status is completed AND a winner has been determined; anything partial
// or unscored must not pollute the totals. A side referencing an unknown
// player id is skipped for that side only.
func Aggregate(matches []models.Match, playerIDs []int) map[int]*models.PlayerStats {
	stats := make(map[int]*models.PlayerStats, len(playerIDs))
	for _, id := range playerIDs {
		stats[id] = &models.PlayerStats{PlayerID: id}
	}

	for _, m := range matches {
		if m.Status != models.MatchStatusCompleted || m.WinnerID == nil {
			continue
		}
		winnerID := *m.WinnerID

		if s, ok := stats[m.Player1ID]; ok {
			s.MatchesPlayed++
			s.GamesWon += m.Player1Score
			s.GamesLost += m.Player2Score
			if winnerID == m.Player1ID {
				s.Wins++
			} else {
				s.Losses++
			}
		}
		if s, ok := stats[m.Player2ID]; ok {
			s.MatchesPlayed++
			s.GamesWon += m.Player2Score
			s.GamesLost += m.Player1Score
			if winnerID == m.Player2ID {
				s.Wins++
			} else {
				s.Losses++
			}
		}
	}

	return stats
}
