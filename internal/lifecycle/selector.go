package lifecycle

import "participium/internal/entities"

// SelectLeastLoaded returns the candidate with the lowest workload, breaking
// ties on the lowest id. It reports false for an empty pool.
func SelectLeastLoaded(candidates []entities.Candidate) (int64, bool) {
	if len(candidates) == 0 {
		return 0, false
	}
	best := candidates[0]
	for _, c := range candidates[1:] {
		if c.Workload < best.Workload || (c.Workload == best.Workload && c.ID < best.ID) {
			best = c
		}
	}
	return best.ID, true
}

// OfficerCandidates projects officers onto selector candidates.
func OfficerCandidates(officers []entities.Officer) []entities.Candidate {
	res := make([]entities.Candidate, 0, len(officers))
	for _, o := range officers {
		res = append(res, entities.Candidate{ID: o.ID, Workload: o.Workload})
	}
	return res
}

// MaintainerCandidates projects maintainers onto selector candidates.
func MaintainerCandidates(maintainers []entities.ExternalMaintainer) []entities.Candidate {
	res := make([]entities.Candidate, 0, len(maintainers))
	for _, m := range maintainers {
		res = append(res, entities.Candidate{ID: m.ID, Workload: m.Workload})
	}
	return res
}
