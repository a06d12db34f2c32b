package result

import "sort"

// CompetitionRanks ranks scores already sorted in descending order.
// Equal neighbours share a rank and the next distinct score ranks at its
// 1-based position: 90, 90, 80 → 1, 1, 3.
func CompetitionRanks(sortedDesc []float64) []int {
	ranks := make([]int, len(sortedDesc))
	for i, score := range sortedDesc {
		if i > 0 && score == sortedDesc[i-1] {
			ranks[i] = ranks[i-1]
		} else {
			ranks[i] = i + 1
		}
	}
	return ranks
}

// assignMerit sets MeritPosition on passing results by total obtained marks.
// Students with equal totals keep their input order.
func assignMerit(results []ProcessedResult) {
	passing := make([]int, 0, len(results))
	for i := range results {
		if results[i].IsPass {
			passing = append(passing, i)
		}
	}

	sort.SliceStable(passing, func(a, b int) bool {
		return results[passing[a]].TotalObtained > results[passing[b]].TotalObtained
	})

	totals := make([]float64, len(passing))
	for i, idx := range passing {
		totals[i] = results[idx].TotalObtained
	}

	for i, rank := range CompetitionRanks(totals) {
		pos := rank
		results[passing[i]].MeritPosition = &pos
	}
}

// MeritList returns the passing results ordered by merit position.
func MeritList(results []ProcessedResult) []ProcessedResult {
	out := make([]ProcessedResult, 0, len(results))
	for _, r := range results {
		if r.MeritPosition != nil {
			out = append(out, r)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return *out[i].MeritPosition < *out[j].MeritPosition
	})
	return out
}
