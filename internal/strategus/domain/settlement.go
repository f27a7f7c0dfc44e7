package domain

import "github.com/paulmach/orb"

// Settlement 是地图上的固定据点（城、村、要塞）。
type Settlement struct {
	ID       int64
	Name     string
	Region   Region
	Position orb.Point
	Troops   float64

	// OwnerPartyID 为 0 表示无主据点
	OwnerPartyID int64
	Owner        *Party
}
