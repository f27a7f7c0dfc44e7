package service

import (
	"math"
	"sort"

	"Strategus/internal/strategus/domain"
)

// 行军速度基准值。todo 数值后续按实测调
const (
	baseSpeed        = 1.0
	weightFactor     = 1.0
	forcedMarchSpeed = 2.0
)

// PartySpeed 是行军速度的分解结果（便于前端展示和调参）。
type PartySpeed struct {
	BaseSpeed      float64
	TerrainFactor  float64
	CurrentTerrain *domain.TerrainType
	WeightFactor   float64
	MountInfluence float64
	TroopInfluence float64
	// BaseSpeedWithoutTerrain 不含地形系数的速度（行军分段时逐段再乘地形系数）
	BaseSpeedWithoutTerrain float64
	FinalSpeed              float64
}

// SpeedModel 计算队伍的行军速度。纯函数：同样输入必须得到同样输出。
type SpeedModel struct {
	routing *Routing
}

func NewSpeedModel(routing *Routing) *SpeedModel {
	return &SpeedModel{routing: routing}
}

func (m *SpeedModel) ComputePartySpeed(party *domain.Party, currentTerrain *domain.TerrainType) PartySpeed {
	terrainFactor := 1.0
	if currentTerrain != nil {
		terrainFactor = m.routing.TerrainSpeedMultiplier(*currentTerrain)
	}
	troopInfluence := troopInfluence(party.Troops)
	mountInfluence := mountsInfluence(party.Troops, party.Items)
	withoutTerrain := baseSpeed * weightFactor * mountInfluence * troopInfluence

	return PartySpeed{
		BaseSpeed:               baseSpeed,
		TerrainFactor:           terrainFactor,
		CurrentTerrain:          currentTerrain,
		WeightFactor:            weightFactor,
		MountInfluence:          mountInfluence,
		TroopInfluence:          troopInfluence,
		BaseSpeedWithoutTerrain: withoutTerrain,
		FinalSpeed:              withoutTerrain * terrainFactor,
	}
}

// troopInfluence 按兵力数量级压速度：
//
//	Troops | troopInfluence
//	     1 |          2=2/1
//	   100 |          1=2/2
//	  1000 |            2/3
//	 10000 |            2/4
//
// 即速度除以军队规模的数量级（10000 有四个零，分母为 4）。
func troopInfluence(troops float64) float64 {
	return 2 / (1 + math.Log10(1+troops/10))
}

// mountsInfluence 计算坐骑对速度的影响。
func mountsInfluence(troops float64, items []domain.PartyItem) float64 {
	if troops <= 0 {
		return 1
	}

	mountItems := make([]domain.PartyItem, 0, len(items))
	for _, it := range items {
		if it.Mount != nil {
			mountItems = append(mountItems, it)
		}
	}
	sort.SliceStable(mountItems, func(i, j int) bool {
		return mountItems[i].Mount.HitPoints > mountItems[j].Mount.HitPoints
	})

	mounts := 0
	for _, it := range mountItems {
		mounts += it.Count
		// 用耐力折算坐骑速度：大地图拼的是持久行军，马拉松选手优于短跑选手，
		// 后续可以再给坐骑单独设计行军速度值做微调。
		mountSpeed := float64(it.Mount.HitPoints / 100)
		if float64(mounts) >= troops && mountSpeed >= forcedMarchSpeed {
			// 人手一骑：士兵默认先挑最快的坐骑，全军速度等于实际用到的
			// 最慢一匹（顶级坐骑里最差的那匹）。
			return mountSpeed
		}
	}

	// 坐骑不够人手一骑：一部分人步行。骑步可以轮换，
	// 坐骑越接近人数，步行者越能省力走快。
	return forcedMarchSpeed*float64(mounts)/troops + (1 - float64(mounts)/troops)
}
