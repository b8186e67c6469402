package game

import (
	"github.com/truongvq/kienquoc-backend/internal"
	"github.com/truongvq/kienquoc-backend/internal/config"
)

// =============================================================================
// SCORING — pure functions over placement snapshots
// =============================================================================

// CellScores computes per-team points for a single cell. Placements with a
// zero amount are ignored everywhere.
func CellScores(cell internal.BoardCell) map[string]float64 {
	placements := make([]internal.CellPlacement, 0, len(cell.Placements))
	for _, p := range cell.Placements {
		if p.Amount > 0 {
			placements = append(placements, p)
		}
	}
	if len(placements) == 0 {
		return map[string]float64{}
	}

	multiplier, ok := config.CellMultipliers[cell.Type]
	if !ok {
		multiplier = 1.0
	}

	switch cell.Type {
	case internal.CellCompetitive:
		return scoreCompetitive(placements, multiplier)
	case internal.CellSynergy:
		return scoreSynergy(placements, multiplier)
	case internal.CellShared:
		return scoreShared(placements, multiplier)
	case internal.CellCooperation:
		return scoreCooperation(placements, multiplier)
	}
	return map[string]float64{}
}

// scoreCompetitive: the highest amount wins a pool of max*multiplier, split
// evenly on ties. Everyone else scores 0.
func scoreCompetitive(placements []internal.CellPlacement, multiplier float64) map[string]float64 {
	maxAmount := 0
	for _, p := range placements {
		if p.Amount > maxAmount {
			maxAmount = p.Amount
		}
	}
	winners := 0
	for _, p := range placements {
		if p.Amount == maxAmount {
			winners++
		}
	}
	prize := float64(maxAmount) * multiplier / float64(winners)

	scores := make(map[string]float64, len(placements))
	for _, p := range placements {
		if p.Amount == maxAmount {
			scores[p.TeamID] = prize
		} else {
			scores[p.TeamID] = 0
		}
	}
	return scores
}

// scoreSynergy: every contributor scores amount*multiplier independently.
func scoreSynergy(placements []internal.CellPlacement, multiplier float64) map[string]float64 {
	scores := make(map[string]float64, len(placements))
	for _, p := range placements {
		scores[p.TeamID] = float64(p.Amount) * multiplier
	}
	return scores
}

// scoreShared: pool of total*multiplier split proportionally to amounts.
func scoreShared(placements []internal.CellPlacement, multiplier float64) map[string]float64 {
	total := 0
	for _, p := range placements {
		total += p.Amount
	}
	pool := float64(total) * multiplier

	scores := make(map[string]float64, len(placements))
	for _, p := range placements {
		if total > 0 {
			scores[p.TeamID] = float64(p.Amount) / float64(total) * pool
		} else {
			scores[p.TeamID] = 0
		}
	}
	return scores
}

// scoreCooperation: scores amount*multiplier per contributor, but only when at
// least CooperationMinTeams distinct teams contributed; otherwise all score 0.
func scoreCooperation(placements []internal.CellPlacement, multiplier float64) map[string]float64 {
	scores := make(map[string]float64, len(placements))
	if len(placements) < config.CooperationMinTeams {
		for _, p := range placements {
			scores[p.TeamID] = 0
		}
		return scores
	}
	for _, p := range placements {
		scores[p.TeamID] = float64(p.Amount) * multiplier
	}
	return scores
}

// ProjectResult is the outcome of the collective project for one turn.
type ProjectResult struct {
	Success          bool
	TotalContributed int
	TeamsContributed int
	TeamScores       map[string]float64
}

// CalculateProjectResult resolves the project against the turn's thresholds.
// Success needs total >= minTotal AND distinct contributing teams >= minTeams;
// hitting both boundaries exactly counts as success. Contributors earn
// amount*ProjectBonusPerRP on success and 0 on failure. The event's flat
// points bonus is handled separately by turn resolution.
func CalculateProjectResult(contributions []internal.ProjectContribution, minTotal, minTeams int) ProjectResult {
	total := 0
	teams := 0
	for _, c := range contributions {
		total += c.Amount
		if c.Amount > 0 {
			teams++
		}
	}

	success := total >= minTotal && teams >= minTeams

	scores := make(map[string]float64, len(contributions))
	for _, c := range contributions {
		if success {
			scores[c.TeamID] = float64(c.Amount) * config.ProjectBonusPerRP
		} else {
			scores[c.TeamID] = 0
		}
	}

	return ProjectResult{
		Success:          success,
		TotalContributed: total,
		TeamsContributed: teams,
		TeamScores:       scores,
	}
}
