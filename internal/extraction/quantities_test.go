package extraction

import "testing"

func TestPizzaBaseline(t *testing.T) {
	tests := []struct {
		childCount int
		want       int
	}{
		{1, 4},
		{5, 4},
		{10, 4},
		{11, 5},
		{12, 5},
		{13, 6},
		{16, 7},
		{20, 9},
	}

	for _, tt := range tests {
		if got := PizzaBaseline(tt.childCount); got != tt.want {
			t.Errorf("PizzaBaseline(%d) = %d, want %d", tt.childCount, got, tt.want)
		}
	}
}

func TestSnackBaseline(t *testing.T) {
	tests := []struct {
		childCount int
		want       int
	}{
		{1, 2},
		{14, 2},
		{15, 3},
		{19, 3},
		{20, 4},
		{35, 4},
	}

	for _, tt := range tests {
		if got := SnackBaseline(tt.childCount); got != tt.want {
			t.Errorf("SnackBaseline(%d) = %d, want %d", tt.childCount, got, tt.want)
		}
	}
}
