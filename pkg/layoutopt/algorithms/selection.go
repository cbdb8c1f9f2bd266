package algorithms

import "math/rand/v2"

// TournamentSelect draws k individuals uniformly with replacement and
// returns the index of the winner: lowest front rank, ties broken by highest
// crowding distance, remaining ties by the earliest draw. Selection is a
// pure function of the draw sequence.
func TournamentSelect(rng *rand.Rand, ranks []int, distances []float64, k int) int {
	drawn := make([]int, k)
	for i := range drawn {
		drawn[i] = rng.IntN(len(ranks))
	}
	return tournamentWinner(ranks, distances, drawn)
}

func tournamentWinner(ranks []int, distances []float64, drawn []int) int {
	best := drawn[0]
	for _, c := range drawn[1:] {
		if ranks[c] < ranks[best] || (ranks[c] == ranks[best] && distances[c] > distances[best]) {
			best = c
		}
	}
	return best
}
