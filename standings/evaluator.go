package standings

// Slot identifies one side of a match.
type Slot int

const (
	SlotPlayer1 Slot = 1
	SlotPlayer2 Slot = 2
)

// WinnerSlot determines the winning side from two non-negative game counts.
// The higher count wins. Equal counts resolve to player1; that rule lives
// here in exactly one place instead of being rederived by callers.
func WinnerSlot(player1Games, player2Games int) Slot {
	if player2Games > player1Games {
		return SlotPlayer2
	}
	return SlotPlayer1
}
