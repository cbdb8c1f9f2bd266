package framework

import (
	"math"
	"sort"
)

// Front is a set of population indices sharing the same Pareto rank. The
// fronts returned by NonDominatedSort partition the full index set.
type Front []int

// Dominates reports whether individual p dominates individual q under the
// maximization convention: p is never worse on any objective and strictly
// better on at least one.
func Dominates(om *ObjectiveMatrix, p, q int) bool {
	better := false
	for m := 0; m < om.NumObjectives(); m++ {
		pv, qv := om.At(m, p), om.At(m, q)
		if pv < qv {
			return false
		}
		if pv > qv {
			better = true
		}
	}
	return better
}

// NonDominatedSort partitions the individuals of om into Pareto fronts,
// best front first. For every ordered pair it maintains a domination counter
// and a dominated list, then peels fronts off iteratively. O(n²·m); this is
// the dominant cost of a generation.
func NonDominatedSort(om *ObjectiveMatrix) []Front {
	n := om.NumIndividuals()
	if n == 0 {
		return nil
	}

	dominated := make([][]int, n)
	domCount := make([]int, n)

	for p := 0; p < n; p++ {
		for q := 0; q < n; q++ {
			if p == q {
				continue
			}
			if Dominates(om, p, q) {
				dominated[p] = append(dominated[p], q)
			} else if Dominates(om, q, p) {
				domCount[p]++
			}
		}
	}

	var fronts []Front
	current := Front{}
	for i := 0; i < n; i++ {
		if domCount[i] == 0 {
			current = append(current, i)
		}
	}
	fronts = append(fronts, current)

	for len(current) > 0 {
		next := Front{}
		for _, p := range current {
			for _, q := range dominated[p] {
				domCount[q]--
				if domCount[q] == 0 {
					next = append(next, q)
				}
			}
		}
		if len(next) > 0 {
			fronts = append(fronts, next)
		}
		current = next
	}

	return fronts
}

// CrowdingDistance computes one crowding score per member of front, in front
// order. Boundary individuals on any objective with at least two distinct
// values score +Inf; interior individuals accumulate the normalized gap
// between their neighbors on each objective. Objectives with zero spread
// within the front are skipped entirely.
func CrowdingDistance(om *ObjectiveMatrix, front Front) []float64 {
	n := len(front)
	dist := make([]float64, n)
	if n == 0 {
		return dist
	}
	if n <= 2 {
		for i := range dist {
			dist[i] = math.Inf(1)
		}
		return dist
	}

	order := make([]int, n)
	for m := 0; m < om.NumObjectives(); m++ {
		for i := range order {
			order[i] = i
		}
		sort.Slice(order, func(i, j int) bool {
			return om.At(m, front[order[i]]) < om.At(m, front[order[j]])
		})

		lo := om.At(m, front[order[0]])
		hi := om.At(m, front[order[n-1]])
		spread := hi - lo
		if spread == 0 {
			continue
		}
		dist[order[0]] = math.Inf(1)
		dist[order[n-1]] = math.Inf(1)
		for i := 1; i < n-1; i++ {
			gap := om.At(m, front[order[i+1]]) - om.At(m, front[order[i-1]])
			dist[order[i]] += gap / spread
		}
	}

	return dist
}
