package rating

import "testing"

func TestDecide(t *testing.T) {
	cases := []struct {
		name     string
		p1, p2   int
		expected Outcome
	}{
		{"player1 wins", 25, 10, OutcomePlayer1Wins},
		{"player2 wins", 10, 25, OutcomePlayer2Wins},
		{"draw", 15, 15, OutcomeDraw},
		{"zero draw", 0, 0, OutcomeDraw},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if outcome := Decide(tc.p1, tc.p2); outcome != tc.expected {
				t.Errorf("Decide(%d, %d) = %v, expected %v", tc.p1, tc.p2, outcome, tc.expected)
			}
		})
	}
}

func TestSettle(t *testing.T) {
	cases := []struct {
		name               string
		outcome            Outcome
		expected1, expect2 Change
	}{
		{
			name:      "player1 wins",
			outcome:   OutcomePlayer1Wins,
			expected1: Change{Elo: 20, Wins: 1, TotalDuels: 1},
			expect2:   Change{Elo: -20, Losses: 1, TotalDuels: 1},
		},
		{
			name:      "player2 wins",
			outcome:   OutcomePlayer2Wins,
			expected1: Change{Elo: -20, Losses: 1, TotalDuels: 1},
			expect2:   Change{Elo: 20, Wins: 1, TotalDuels: 1},
		},
		{
			name:      "draw only counts the duel",
			outcome:   OutcomeDraw,
			expected1: Change{TotalDuels: 1},
			expect2:   Change{TotalDuels: 1},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			player1, player2 := Settle(tc.outcome, DefaultDelta)
			if player1 != tc.expected1 {
				t.Errorf("player1 change = %+v, expected %+v", player1, tc.expected1)
			}
			if player2 != tc.expect2 {
				t.Errorf("player2 change = %+v, expected %+v", player2, tc.expect2)
			}
		})
	}
}

// The settlement is zero-sum: whatever one player gains the other loses.
func TestSettleZeroSum(t *testing.T) {
	for _, outcome := range []Outcome{OutcomeDraw, OutcomePlayer1Wins, OutcomePlayer2Wins} {
		player1, player2 := Settle(outcome, DefaultDelta)
		if player1.Elo+player2.Elo != 0 {
			t.Errorf("outcome %v is not zero-sum: %d + %d", outcome, player1.Elo, player2.Elo)
		}
	}
}
