package service

import (
	"math"
	"sort"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"Strategus/internal/strategus/domain"
)

// PathSegment 是行军直线上落在同一种地形速度区间内的一段。
type PathSegment struct {
	Start             orb.Point
	End               orb.Point
	TerrainMultiplier float64
}

// Routing 负责把行军直线按地形边界切成分段，并提供点位地形判定。
type Routing struct{}

func NewRouting() *Routing {
	return &Routing{}
}

var terrainSpeedMultiplier = map[domain.TerrainType]float64{
	domain.TerrainPlain:        1.0,
	domain.TerrainSparseForest: 0.8,
	domain.TerrainThickForest:  0.5,
	domain.TerrainBarrier:      0,
	domain.TerrainDeepWater:    0,
	domain.TerrainShallowWater: 0.2,
}

func (r *Routing) TerrainSpeedMultiplier(t domain.TerrainType) float64 {
	return terrainSpeedMultiplier[t]
}

// SpeedMultiplierAt 返回点所在地形的速度系数；不在任何地形内按开阔地 1.0。
// 地形重叠时取第一个命中的（已知歧义，保持既有行为）。
func (r *Routing) SpeedMultiplierAt(position orb.Point, terrains []domain.Terrain) float64 {
	for _, terrain := range terrains {
		if planar.PolygonContains(terrain.Boundary, position) {
			return r.TerrainSpeedMultiplier(terrain.Type)
		}
	}
	return 1.0
}

// BuildPathSegments 把 start->end 的直线按地形边界交点切段，
// 每段取中点采样地形得到速度系数，按距离起点从近到远排序返回。
func (r *Routing) BuildPathSegments(start, end orb.Point, terrains []domain.Terrain) []PathSegment {
	totalDistance := planar.Distance(start, end)
	if totalDistance < 1e-10 {
		// 零长度行军：返回一个退化段
		return []PathSegment{{Start: start, End: end, TerrainMultiplier: r.SpeedMultiplierAt(start, terrains)}}
	}

	distances := []float64{0, totalDistance}
	for _, terrain := range terrains {
		for _, ring := range terrain.Boundary {
			for i := 0; i+1 < len(ring); i++ {
				for _, p := range segmentIntersections(start, end, ring[i], ring[i+1]) {
					d := planar.Distance(start, p)
					if d > 0 && d < totalDistance {
						distances = append(distances, d)
					}
				}
			}
		}
	}

	distances = sortedDedup(distances)
	// 贴近终点的交点会在去重时把终点距离吃掉，末段必须精确收在 end 上
	distances[len(distances)-1] = totalDistance

	segments := make([]PathSegment, 0, len(distances)-1)
	for i := 0; i+1 < len(distances); i++ {
		segStart := start
		if distances[i] != 0 {
			segStart = r.InterpolatePoint(start, end, distances[i]/totalDistance)
		}
		segEnd := end
		if distances[i+1] != totalDistance {
			segEnd = r.InterpolatePoint(start, end, distances[i+1]/totalDistance)
		}

		mid := r.InterpolatePoint(segStart, segEnd, 0.5)
		segments = append(segments, PathSegment{
			Start:             segStart,
			End:               segEnd,
			TerrainMultiplier: r.SpeedMultiplierAt(mid, terrains),
		})
	}
	return segments
}

// InterpolatePoint 沿 start->end 线性插值。
func (r *Routing) InterpolatePoint(start, end orb.Point, ratio float64) orb.Point {
	return orb.Point{
		start[0] + (end[0]-start[0])*ratio,
		start[1] + (end[1]-start[1])*ratio,
	}
}

// segmentIntersections 计算线段 a1-a2 与 b1-b2 的交点（含端点相触）。
// 共线重叠时返回重叠区间的两端投影。
func segmentIntersections(a1, a2, b1, b2 orb.Point) []orb.Point {
	d1 := orb.Point{a2[0] - a1[0], a2[1] - a1[1]}
	d2 := orb.Point{b2[0] - b1[0], b2[1] - b1[1]}
	denom := cross(d1, d2)
	diff := orb.Point{b1[0] - a1[0], b1[1] - a1[1]}

	const eps = 1e-12
	if math.Abs(denom) < eps {
		if math.Abs(cross(diff, d1)) > eps {
			return nil // 平行不共线
		}
		// 共线：把 b 的端点投影到 a 的参数区间
		len2 := d1[0]*d1[0] + d1[1]*d1[1]
		if len2 < eps {
			return nil
		}
		t1 := ((b1[0]-a1[0])*d1[0] + (b1[1]-a1[1])*d1[1]) / len2
		t2 := ((b2[0]-a1[0])*d1[0] + (b2[1]-a1[1])*d1[1]) / len2
		if t1 > t2 {
			t1, t2 = t2, t1
		}
		t1 = math.Max(t1, 0)
		t2 = math.Min(t2, 1)
		if t1 > t2 {
			return nil
		}
		return []orb.Point{
			{a1[0] + d1[0]*t1, a1[1] + d1[1]*t1},
			{a1[0] + d1[0]*t2, a1[1] + d1[1]*t2},
		}
	}

	t := cross(diff, d2) / denom
	u := cross(diff, d1) / denom
	if t < -eps || t > 1+eps || u < -eps || u > 1+eps {
		return nil
	}
	return []orb.Point{{a1[0] + d1[0]*t, a1[1] + d1[1]*t}}
}

func cross(a, b orb.Point) float64 {
	return a[0]*b[1] - a[1]*b[0]
}

// sortedDedup 升序去重（容差 1e-9，去掉贴边产生的重复交点）。
func sortedDedup(in []float64) []float64 {
	sort.Float64s(in)
	out := in[:1]
	for _, v := range in[1:] {
		if v-out[len(out)-1] > 1e-9 {
			out = append(out, v)
		}
	}
	return out
}
