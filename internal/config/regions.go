package config

import "github.com/truongvq/kienquoc-backend/internal"

// Regions match the five fixed teams, in display order.
var Regions = []internal.Region{
	{
		ID:          "thu-do",
		Name:        "Thủ đô",
		Description: "Trung tâm chính trị, văn hóa (Hà Nội, Hải Phòng, Quảng Ninh)",
	},
	{
		ID:          "duyen-hai",
		Name:        "Duyên hải",
		Description: "Ven biển miền Trung (Đà Nẵng, Quảng Nam, Bình Định)",
	},
	{
		ID:          "tay-nguyen",
		Name:        "Tây Nguyên",
		Description: "Cao nguyên, nông lâm nghiệp (Đắk Lắk, Gia Lai, Kon Tum)",
	},
	{
		ID:          "dong-bang",
		Name:        "Đồng bằng",
		Description: "Vựa lúa quốc gia (Cần Thơ, An Giang, Đồng Tháp)",
	},
	{
		ID:          "mien-dong",
		Name:        "Miền Đông",
		Description: "Công nghiệp, kinh tế trọng điểm (TP.HCM, Bình Dương, Đồng Nai)",
	},
}

// RegionByIndex maps a team index 0-4 to its region.
func RegionByIndex(index int) (internal.Region, bool) {
	if index < 0 || index >= len(Regions) {
		return internal.Region{}, false
	}
	return Regions[index], true
}
