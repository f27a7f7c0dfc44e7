package domain

import "github.com/paulmach/orb"

// TerrainType 表示地形类型，决定行军速度系数。
type TerrainType int8

const (
	TerrainPlain TerrainType = iota
	TerrainSparseForest
	TerrainThickForest
	TerrainBarrier
	TerrainDeepWater
	TerrainShallowWater
)

func (t TerrainType) String() string {
	switch t {
	case TerrainPlain:
		return "Plain"
	case TerrainSparseForest:
		return "SparseForest"
	case TerrainThickForest:
		return "ThickForest"
	case TerrainBarrier:
		return "Barrier"
	case TerrainDeepWater:
		return "DeepWater"
	case TerrainShallowWater:
		return "ShallowWater"
	default:
		return "Unknown"
	}
}

// Terrain 是一块命名的地形多边形，每 tick 作为只读地图数据整体加载。
type Terrain struct {
	ID       int64
	Name     string
	Type     TerrainType
	Boundary orb.Polygon
}
