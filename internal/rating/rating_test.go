package rating

import "testing"

func TestAverage_EmptySetIsZero(t *testing.T) {
	if got := Average(nil); got != 0 {
		t.Fatalf("expected 0 for empty set, got %v", got)
	}
	if got := Average([]int{}); got != 0 {
		t.Fatalf("expected 0 for empty slice, got %v", got)
	}
}

func TestAverage_ArithmeticMean(t *testing.T) {
	cases := []struct {
		name    string
		ratings []int
		want    float64
	}{
		{"single", []int{4}, 4},
		{"two values", []int{4, 2}, 3},
		{"non integer mean", []int{5, 4, 4}, 13.0 / 3.0},
		{"all fives", []int{5, 5, 5, 5}, 5},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := Average(tc.ratings); got != tc.want {
				t.Fatalf("Average(%v) = %v, want %v", tc.ratings, got, tc.want)
			}
		})
	}
}

func TestRound1(t *testing.T) {
	if got := Round1(13.0 / 3.0); got != 4.3 {
		t.Fatalf("Round1(13/3) = %v, want 4.3", got)
	}
	if got := Round1(3.45); got != 3.5 {
		t.Fatalf("Round1(3.45) = %v, want 3.5", got)
	}
	if got := Round1(0); got != 0 {
		t.Fatalf("Round1(0) = %v, want 0", got)
	}
}

func TestRound2(t *testing.T) {
	if got := Round2(13.0 / 3.0); got != 4.33 {
		t.Fatalf("Round2(13/3) = %v, want 4.33", got)
	}
	if got := Round2(3.5); got != 3.5 {
		t.Fatalf("Round2(3.5) = %v, want 3.5", got)
	}
}
