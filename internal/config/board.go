package config

import (
	"fmt"

	"github.com/truongvq/kienquoc-backend/internal"
)

type CellConfig struct {
	Name    string
	Type    internal.CellType
	Indices []string
}

type CellPosition struct {
	Row int
	Col int
}

// BoardCells is the full 4x4 layout. The four center cells are the national
// project; they never appear on the board as individual cells (see
// ProjectCells / ProjectCellID).
var BoardCells = map[CellPosition]CellConfig{
	{0, 0}: {Name: "Cửa khẩu Lạng Sơn", Type: internal.CellCooperation, Indices: []string{"integration", "economy"}},
	{0, 1}: {Name: "Đại học Bách khoa", Type: internal.CellSynergy, Indices: []string{"science", "society"}},
	{0, 2}: {Name: "Viện Hàn lâm", Type: internal.CellSynergy, Indices: []string{"science", "culture"}},
	{0, 3}: {Name: "Khu CN Việt Trì", Type: internal.CellCompetitive, Indices: []string{"economy", "environment"}},
	{1, 0}: {Name: "Đồng bằng sông Hồng", Type: internal.CellShared, Indices: []string{"society", "environment"}},
	{1, 1}: {Name: "Dự án Quốc gia", Type: internal.CellProject, Indices: []string{}},
	{1, 2}: {Name: "Dự án Quốc gia", Type: internal.CellProject, Indices: []string{}},
	{1, 3}: {Name: "Cảng Đà Nẵng", Type: internal.CellCompetitive, Indices: []string{"economy", "integration"}},
	{2, 0}: {Name: "Tây Nguyên", Type: internal.CellSynergy, Indices: []string{"environment", "economy"}},
	{2, 1}: {Name: "Dự án Quốc gia", Type: internal.CellProject, Indices: []string{}},
	{2, 2}: {Name: "Dự án Quốc gia", Type: internal.CellProject, Indices: []string{}},
	{2, 3}: {Name: "KCX Tân Thuận", Type: internal.CellCompetitive, Indices: []string{"economy", "science"}},
	{3, 0}: {Name: "Đồng bằng Cửu Long", Type: internal.CellShared, Indices: []string{"society", "economy"}},
	{3, 1}: {Name: "Khu đô thị Thủ Đức", Type: internal.CellSynergy, Indices: []string{"society", "science"}},
	{3, 2}: {Name: "Trung tâm Tài chính", Type: internal.CellCooperation, Indices: []string{"economy", "integration"}},
	{3, 3}: {Name: "Cảng Sài Gòn", Type: internal.CellCompetitive, Indices: []string{"economy", "integration"}},
}

// ProjectCells are the four center positions collapsed into one placement
// target with id ProjectCellID.
var ProjectCells = []CellPosition{{1, 1}, {1, 2}, {2, 1}, {2, 2}}

const ProjectCellID = "project-center"

// CellID builds the stable id for a board position.
func CellID(pos CellPosition) string {
	return fmt.Sprintf("cell-%d-%d", pos.Row, pos.Col)
}

func isProjectCell(pos CellPosition) bool {
	for _, p := range ProjectCells {
		if p == pos {
			return true
		}
	}
	return false
}

// RegularCells returns the board layout without the project cells.
func RegularCells() map[CellPosition]CellConfig {
	cells := make(map[CellPosition]CellConfig, len(BoardCells)-len(ProjectCells))
	for pos, cfg := range BoardCells {
		if !isProjectCell(pos) {
			cells[pos] = cfg
		}
	}
	return cells
}
