package service

import (
	"math"
	"testing"

	"github.com/paulmach/orb"

	"Strategus/internal/strategus/domain"
)

func squareTerrain(t domain.TerrainType, minX, minY, maxX, maxY float64) domain.Terrain {
	return domain.Terrain{
		Type: t,
		Boundary: orb.Polygon{orb.Ring{
			{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
		}},
	}
}

func TestSpeedMultiplierAt_地形内外系数(t *testing.T) {
	r := NewRouting()
	terrains := []domain.Terrain{squareTerrain(domain.TerrainThickForest, 5, 0, 10, 10)}

	if got := r.SpeedMultiplierAt(orb.Point{7, 5}, terrains); got != 0.5 {
		t.Fatalf("密林内系数期望 0.5, got=%v", got)
	}
	if got := r.SpeedMultiplierAt(orb.Point{2, 5}, terrains); got != 1.0 {
		t.Fatalf("开阔地系数期望 1.0, got=%v", got)
	}
}

func TestSpeedMultiplierAt_重叠地形取先命中(t *testing.T) {
	r := NewRouting()
	terrains := []domain.Terrain{
		squareTerrain(domain.TerrainShallowWater, 0, 0, 10, 10),
		squareTerrain(domain.TerrainDeepWater, 0, 0, 10, 10),
	}

	if got := r.SpeedMultiplierAt(orb.Point{5, 5}, terrains); got != 0.2 {
		t.Fatalf("重叠地形应取列表里先命中的浅水 0.2, got=%v", got)
	}
}

func TestBuildPathSegments_穿越密林切三段(t *testing.T) {
	r := NewRouting()
	terrains := []domain.Terrain{squareTerrain(domain.TerrainThickForest, 5, 0, 10, 10)}

	segments := r.BuildPathSegments(orb.Point{0, 5}, orb.Point{20, 5}, terrains)
	if len(segments) != 3 {
		t.Fatalf("期望切成 3 段, got=%d", len(segments))
	}

	wantMultipliers := []float64{1.0, 0.5, 1.0}
	for i, seg := range segments {
		if seg.TerrainMultiplier != wantMultipliers[i] {
			t.Fatalf("第 %d 段系数期望 %v, got=%v", i, wantMultipliers[i], seg.TerrainMultiplier)
		}
	}

	// 段必须首尾相接且覆盖全程
	if segments[0].Start != (orb.Point{0, 5}) || segments[2].End != (orb.Point{20, 5}) {
		t.Fatalf("分段未覆盖全程: first=%v last=%v", segments[0].Start, segments[2].End)
	}
	for i := 0; i+1 < len(segments); i++ {
		if segments[i].End != segments[i+1].Start {
			t.Fatalf("第 %d/%d 段不相接: %v != %v", i, i+1, segments[i].End, segments[i+1].Start)
		}
	}
	if math.Abs(segments[1].Start[0]-5) > 1e-9 || math.Abs(segments[1].End[0]-10) > 1e-9 {
		t.Fatalf("密林段边界期望 x=[5,10], got=[%v,%v]", segments[1].Start[0], segments[1].End[0])
	}
}

func TestBuildPathSegments_不经过地形只有一段(t *testing.T) {
	r := NewRouting()
	terrains := []domain.Terrain{squareTerrain(domain.TerrainThickForest, 5, 0, 10, 10)}

	segments := r.BuildPathSegments(orb.Point{0, 20}, orb.Point{20, 20}, terrains)
	if len(segments) != 1 {
		t.Fatalf("不与地形相交应只有一段, got=%d", len(segments))
	}
	if segments[0].TerrainMultiplier != 1.0 {
		t.Fatalf("开阔地段系数期望 1.0, got=%v", segments[0].TerrainMultiplier)
	}
}

func TestBuildPathSegments_障碍段系数为零(t *testing.T) {
	r := NewRouting()
	terrains := []domain.Terrain{squareTerrain(domain.TerrainBarrier, 5, 0, 10, 10)}

	segments := r.BuildPathSegments(orb.Point{0, 5}, orb.Point{20, 5}, terrains)
	if len(segments) != 3 {
		t.Fatalf("期望切成 3 段, got=%d", len(segments))
	}
	if segments[1].TerrainMultiplier != 0 {
		t.Fatalf("障碍段系数期望 0, got=%v", segments[1].TerrainMultiplier)
	}
}

func TestBuildPathSegments_零长度返回退化段(t *testing.T) {
	r := NewRouting()
	p := orb.Point{3, 3}

	segments := r.BuildPathSegments(p, p, nil)
	if len(segments) != 1 {
		t.Fatalf("零长度行军期望 1 段, got=%d", len(segments))
	}
	if segments[0].Start != p || segments[0].End != p {
		t.Fatalf("退化段端点应与起点一致, got=%v", segments[0])
	}
}

func TestInterpolatePoint_线性插值(t *testing.T) {
	r := NewRouting()
	got := r.InterpolatePoint(orb.Point{0, 0}, orb.Point{10, 20}, 0.5)
	if got != (orb.Point{5, 10}) {
		t.Fatalf("中点插值期望 (5,10), got=%v", got)
	}
}

func TestBuildPathSegments_贴近终点的交点不截短末段(t *testing.T) {
	r := NewRouting()
	// 地形右边界与终点只差亚纳米级距离，交点去重后末段仍要精确落在 end
	boundary := 10.0 - 4e-10
	terrains := []domain.Terrain{squareTerrain(domain.TerrainSparseForest, 5, 0, boundary, 10)}

	end := orb.Point{10, 5}
	segments := r.BuildPathSegments(orb.Point{0, 5}, end, terrains)

	last := segments[len(segments)-1]
	if last.End != end {
		t.Fatalf("末段终点期望 %v, got=%v", end, last.End)
	}
}
