package domain

// Region 表示大地图分区（决定排期用的防守方时区）。
type Region int8

const (
	RegionEurope Region = iota
	RegionNorthAmerica
	RegionAsia
	RegionOceania
)

func (r Region) String() string {
	switch r {
	case RegionEurope:
		return "Europe"
	case RegionNorthAmerica:
		return "NorthAmerica"
	case RegionAsia:
		return "Asia"
	case RegionOceania:
		return "Oceania"
	default:
		return "Unknown"
	}
}
