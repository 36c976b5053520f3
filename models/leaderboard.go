package models

// PlayerStats holds per-player running totals folded from completed matches.
type PlayerStats struct {
	PlayerID      int `json:"player_id"`
	MatchesPlayed int `json:"matches_played"`
	Wins          int `json:"wins"`
	Losses        int `json:"losses"`
	GamesWon      int `json:"games_won"`
	GamesLost     int `json:"games_lost"`
}

// LeaderboardEntry is the shape consumed by list views. Derived on demand,
// never persisted.
type LeaderboardEntry struct {
	PlayerID      int    `json:"player_id"`
	PlayerName    string `json:"player_name"`
	GamesWon      int    `json:"games_won"`
	GamesLost     int    `json:"games_lost"`
	MatchesPlayed int    `json:"matches_played"`
	Wins          int    `json:"wins"`
	Losses        int    `json:"losses"`
	Rank          int    `json:"rank"`
}
