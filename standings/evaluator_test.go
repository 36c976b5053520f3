package standings_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/taimoorzulfiqar/tennis-tournament-app-sub000/standings"
)

func TestWinnerSlot(t *testing.T) {
	require.Equal(t, standings.SlotPlayer1, standings.WinnerSlot(6, 3))
	require.Equal(t, standings.SlotPlayer2, standings.WinnerSlot(2, 6))
	require.Equal(t, standings.SlotPlayer1, standings.WinnerSlot(0, 0))
}

// Equal game counts currently resolve to player1. This pins the shipped
// behavior so a deliberate product change shows up as a test change.
func TestWinnerSlotEqualScoresDefaultToPlayer1(t *testing.T) {
	require.Equal(t, standings.SlotPlayer1, standings.WinnerSlot(6, 6))
}
