package config

import "github.com/truongvq/kienquoc-backend/internal"

// CellMultipliers scale the raw resource amounts per cell type.
var CellMultipliers = map[internal.CellType]float64{
	internal.CellCompetitive: 1.5,
	internal.CellSynergy:     1.8,
	internal.CellShared:      1.5,
	internal.CellCooperation: 2.5,
	internal.CellProject:     1.0,
}

const (
	// Minimum distinct contributors for a cooperation cell to score at all.
	CooperationMinTeams = 2

	// Points per resource point contributed to a successful project.
	ProjectBonusPerRP = 1.0
)
