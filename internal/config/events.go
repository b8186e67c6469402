package config

import "github.com/truongvq/kienquoc-backend/internal"

// TurnEvents maps turn number to its historical event. Reward maps carry the
// six index deltas plus a flat "points" bonus split among project
// contributors on success.
var TurnEvents = map[int]internal.TurnEvent{
	1: {
		Turn:           1,
		Year:           1986,
		Name:           "Khủng hoảng lạm phát 774%",
		Project:        "Nghị quyết Khoán 10",
		MinTotal:       20,
		MinTeams:       3,
		SuccessReward:  map[string]int{"points": 8, "economy": 4, "society": 3},
		FailurePenalty: map[string]int{"economy": -4, "society": -3},
	},
	2: {
		Turn:           2,
		Year:           1987,
		Name:           "Cấm vận quốc tế bóp nghẹt",
		Project:        "Luật Đầu tư Nước ngoài",
		MinTotal:       21,
		MinTeams:       3,
		SuccessReward:  map[string]int{"points": 10, "integration": 5, "economy": 3},
		FailurePenalty: map[string]int{"integration": -4, "economy": -3},
	},
	3: {
		Turn:           3,
		Year:           1991,
		Name:           "Liên Xô sụp đổ, viện trợ chấm dứt",
		Project:        "Tự lực cánh sinh",
		MinTotal:       22,
		MinTeams:       3,
		SuccessReward:  map[string]int{"points": 12, "science": 4, "economy": 4},
		FailurePenalty: map[string]int{"economy": -4, "science": -3},
	},
	4: {
		Turn:           4,
		Year:           1993,
		Name:           "Thiên tai lũ lụt miền Trung",
		Project:        "Cứu trợ quốc gia",
		MinTotal:       23,
		MinTeams:       3,
		SuccessReward:  map[string]int{"points": 12, "environment": 5, "society": 3},
		FailurePenalty: map[string]int{"environment": -4, "society": -3},
	},
	5: {
		Turn:           5,
		Year:           1994,
		Name:           "Áp lực mở cửa kinh tế",
		Project:        "Mỹ dỡ bỏ cấm vận",
		MinTotal:       24,
		MinTeams:       3,
		SuccessReward:  map[string]int{"points": 14, "integration": 4, "economy": 4},
		FailurePenalty: map[string]int{"integration": -4, "economy": -3},
	},
	6: {
		Turn:           6,
		Year:           1995,
		Name:           "Hội nhập khu vực",
		Project:        "Gia nhập ASEAN",
		MinTotal:       25,
		MinTeams:       3,
		SuccessReward:  map[string]int{"points": 14, "integration": 5, "culture": 3},
		FailurePenalty: map[string]int{"integration": -5, "culture": -4},
	},
	7: {
		Turn:           7,
		Year:           2000,
		Name:           "Cạnh tranh toàn cầu hóa",
		Project:        "Hiệp định Thương mại Việt-Mỹ",
		MinTotal:       26,
		MinTeams:       3,
		SuccessReward:  map[string]int{"points": 16, "economy": 5, "science": 3},
		FailurePenalty: map[string]int{"economy": -5, "science": -4},
	},
	8: {
		Turn:     8,
		Year:     2007,
		Name:     "Hội nhập sâu rộng",
		Project:  "Gia nhập WTO",
		MinTotal: 28,
		MinTeams: 4,
		SuccessReward: map[string]int{
			"points": 20, "economy": 3, "society": 3, "culture": 3,
			"integration": 3, "environment": 3, "science": 3,
		},
		FailurePenalty: map[string]int{
			"economy": -5, "society": -5, "culture": -5,
			"integration": -5, "environment": -5, "science": -5,
		},
	},
}

// EventByTurn returns a copy of the event for a turn, or nil past the last
// turn. Copying keeps the shared table immutable.
func EventByTurn(turn int) *internal.TurnEvent {
	event, ok := TurnEvents[turn]
	if !ok {
		return nil
	}
	event.SuccessReward = copyDeltas(event.SuccessReward)
	event.FailurePenalty = copyDeltas(event.FailurePenalty)
	return &event
}

func copyDeltas(src map[string]int) map[string]int {
	dst := make(map[string]int, len(src))
	for k, v := range src {
		dst[k] = v
	}
	return dst
}
