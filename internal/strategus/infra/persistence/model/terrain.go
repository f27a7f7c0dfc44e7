package model

import (
	"github.com/paulmach/orb"

	"Strategus/internal/strategus/domain"
)

// TerrainDoc 是 mongodb 里的一块地形多边形。
// boundary 按 GeoJSON Polygon 的环序存储：第一个环是外边界。
type TerrainDoc struct {
	Id       int64         `bson:"_id" json:"id"`
	Name     string        `bson:"name" json:"name"`
	Type     int8          `bson:"type" json:"type"`
	Boundary [][][]float64 `bson:"boundary" json:"boundary"`
}

func TerrainDocToDomain(doc TerrainDoc) domain.Terrain {
	boundary := make(orb.Polygon, 0, len(doc.Boundary))
	for _, ring := range doc.Boundary {
		r := make(orb.Ring, 0, len(ring))
		for _, pt := range ring {
			if len(pt) < 2 {
				continue
			}
			r = append(r, orb.Point{pt[0], pt[1]})
		}
		boundary = append(boundary, r)
	}
	return domain.Terrain{
		ID:       doc.Id,
		Name:     doc.Name,
		Type:     domain.TerrainType(doc.Type),
		Boundary: boundary,
	}
}

func TerrainDomainToDoc(t domain.Terrain) TerrainDoc {
	boundary := make([][][]float64, 0, len(t.Boundary))
	for _, ring := range t.Boundary {
		r := make([][]float64, 0, len(ring))
		for _, pt := range ring {
			r = append(r, []float64{pt[0], pt[1]})
		}
		boundary = append(boundary, r)
	}
	return TerrainDoc{
		Id:       t.ID,
		Name:     t.Name,
		Type:     int8(t.Type),
		Boundary: boundary,
	}
}
