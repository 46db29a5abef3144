package card

// StateStatistics tallies cards per state. All six states are present
// in the result, zero-valued when absent from the input.
func StateStatistics(cards []Card) map[State]int {
	counts := map[State]int{
		StateNew:        0,
		StateLearning:   0,
		StateReview:     0,
		StateRelearning: 0,
		StateSuspended:  0,
		StateBuried:     0,
	}
	for _, c := range cards {
		counts[c.State]++
	}
	return counts
}
