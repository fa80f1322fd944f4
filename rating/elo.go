package rating

// Fixed-delta Elo variant used for duels: every decisive duel moves both
// players by the same amount, draws move nobody.
const (
	// InitialRating is assigned to every new player profile.
	InitialRating = 1200
	// DefaultDelta is the rating swing of one decisive duel.
	DefaultDelta = 20
)

// Outcome identifies the result of a duel from player 1's perspective.
type Outcome int

const (
	OutcomeDraw Outcome = iota
	OutcomePlayer1Wins
	OutcomePlayer2Wins
)

// Decide derives the outcome from the two final scores.
func Decide(player1Score, player2Score int) Outcome {
	switch {
	case player1Score > player2Score:
		return OutcomePlayer1Wins
	case player2Score > player1Score:
		return OutcomePlayer2Wins
	default:
		return OutcomeDraw
	}
}

// Change holds the counter adjustments for a single player's profile.
// Every field is an increment, so changes can be applied with atomic
// counter updates regardless of concurrent duels.
type Change struct {
	Elo        int
	Wins       int
	Losses     int
	TotalDuels int
}

// Settle computes both players' changes for a finished duel. A draw only
// bumps total duels played.
func Settle(outcome Outcome, delta int) (player1, player2 Change) {
	player1 = Change{TotalDuels: 1}
	player2 = Change{TotalDuels: 1}

	switch outcome {
	case OutcomePlayer1Wins:
		player1.Elo = delta
		player1.Wins = 1
		player2.Elo = -delta
		player2.Losses = 1
	case OutcomePlayer2Wins:
		player2.Elo = delta
		player2.Wins = 1
		player1.Elo = -delta
		player1.Losses = 1
	}
	return player1, player2
}
