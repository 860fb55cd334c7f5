package extraction

// PizzaBaseline returns the number of pizzas for a group. Groups of ten or
// fewer get four pizzas; every two additional children add one more.
func PizzaBaseline(childCount int) int {
	n := childCount
	if n < 10 {
		n = 10
	}
	// 4 + ceil((n-10)/2) in integer arithmetic.
	return 4 + (n-9)/2
}

// SnackBaseline returns the number of chip portions for a group. Drink
// portions always match the snack count.
func SnackBaseline(childCount int) int {
	switch {
	case childCount >= 20:
		return 4
	case childCount >= 15:
		return 3
	default:
		return 2
	}
}
