package service

import (
	"math"
	"testing"

	"Strategus/internal/strategus/domain"
)

func newSpeedModel() *SpeedModel {
	return NewSpeedModel(NewRouting())
}

func TestComputePartySpeed_九十兵无坐骑速度为基准值(t *testing.T) {
	m := newSpeedModel()
	party := &domain.Party{Troops: 90}

	speed := m.ComputePartySpeed(party, nil)
	// troops=90 时 2/(1+log10(10))=1，无坐骑系数也为 1
	if math.Abs(speed.FinalSpeed-1.0) > 1e-9 {
		t.Fatalf("期望速度 1.0, got=%v", speed.FinalSpeed)
	}
	if speed.TerrainFactor != 1.0 {
		t.Fatalf("无地形时系数期望 1.0, got=%v", speed.TerrainFactor)
	}
}

func TestComputePartySpeed_兵力越多速度越慢(t *testing.T) {
	m := newSpeedModel()

	s100 := m.ComputePartySpeed(&domain.Party{Troops: 100}, nil)
	s1000 := m.ComputePartySpeed(&domain.Party{Troops: 1000}, nil)
	if s1000.FinalSpeed >= s100.FinalSpeed {
		t.Fatalf("千人队应比百人队慢: 1000兵=%v 100兵=%v", s1000.FinalSpeed, s100.FinalSpeed)
	}
}

func TestComputePartySpeed_地形系数逐项相乘(t *testing.T) {
	m := newSpeedModel()
	party := &domain.Party{Troops: 90}
	terrain := domain.TerrainThickForest

	speed := m.ComputePartySpeed(party, &terrain)
	if math.Abs(speed.FinalSpeed-0.5) > 1e-9 {
		t.Fatalf("密林中期望速度 0.5, got=%v", speed.FinalSpeed)
	}
	if math.Abs(speed.BaseSpeedWithoutTerrain-1.0) > 1e-9 {
		t.Fatalf("不含地形的速度期望 1.0, got=%v", speed.BaseSpeedWithoutTerrain)
	}
}

func TestComputePartySpeed_人手一骑取最慢坐骑速度(t *testing.T) {
	m := newSpeedModel()
	party := &domain.Party{
		Troops: 2,
		Items: []domain.PartyItem{
			{Count: 1, Mount: &domain.Mount{HitPoints: 500}},
			{Count: 1, Mount: &domain.Mount{HitPoints: 300}},
		},
	}

	speed := m.ComputePartySpeed(party, nil)
	// 先发 500 耐力的坐骑，全员上马后全军速度取次一档 300/100=3
	if speed.MountInfluence != 3 {
		t.Fatalf("坐骑系数期望 3, got=%v", speed.MountInfluence)
	}
}

func TestComputePartySpeed_坐骑速度按百整除折算(t *testing.T) {
	m := newSpeedModel()
	party := &domain.Party{
		Troops: 1,
		Items:  []domain.PartyItem{{Count: 1, Mount: &domain.Mount{HitPoints: 250}}},
	}

	speed := m.ComputePartySpeed(party, nil)
	if speed.MountInfluence != 2 {
		t.Fatalf("250 耐力坐骑折算速度期望 2, got=%v", speed.MountInfluence)
	}
}

func TestComputePartySpeed_坐骑不足按骑步混编折算(t *testing.T) {
	m := newSpeedModel()
	party := &domain.Party{
		Troops: 2,
		Items:  []domain.PartyItem{{Count: 1, Mount: &domain.Mount{HitPoints: 300}}},
	}

	speed := m.ComputePartySpeed(party, nil)
	// 一半人骑行：2*0.5 + 0.5 = 1.5
	if math.Abs(speed.MountInfluence-1.5) > 1e-9 {
		t.Fatalf("骑步混编系数期望 1.5, got=%v", speed.MountInfluence)
	}
}

func TestComputePartySpeed_零兵力不受坐骑影响(t *testing.T) {
	m := newSpeedModel()
	party := &domain.Party{
		Troops: 0,
		Items:  []domain.PartyItem{{Count: 5, Mount: &domain.Mount{HitPoints: 500}}},
	}

	speed := m.ComputePartySpeed(party, nil)
	if speed.MountInfluence != 1 {
		t.Fatalf("零兵力坐骑系数期望 1, got=%v", speed.MountInfluence)
	}
}
