package mongodb

import (
	"context"
	"errors"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/infra/persistence/model"
)

const defaultCollectionName = "terrain"

// TerrainRepository 地形是只读地图数据，每个行军 tick 整体装载一次。
type TerrainRepository struct {
	coll *mongo.Collection
}

func NewTerrainRepository(db *mongo.Database) *TerrainRepository {
	return &TerrainRepository{
		coll: db.Collection(defaultCollectionName),
	}
}

func (r *TerrainRepository) ListAll(ctx context.Context) ([]domain.Terrain, error) {
	if r == nil || r.coll == nil {
		return nil, errors.New("mongodb terrain collection is nil")
	}

	cursor, err := r.coll.Find(ctx, bson.M{}, options.Find().SetSort(bson.M{"_id": 1}))
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = cursor.Close(ctx)
	}()

	var terrains []domain.Terrain
	for cursor.Next(ctx) {
		var doc model.TerrainDoc
		if err := cursor.Decode(&doc); err != nil {
			return nil, err
		}
		terrains = append(terrains, model.TerrainDocToDomain(doc))
	}
	if err := cursor.Err(); err != nil {
		return nil, err
	}
	return terrains, nil
}

// Replace 整体替换地形数据（地图编辑工具导入用）。
func (r *TerrainRepository) Replace(ctx context.Context, terrains []domain.Terrain) error {
	if r == nil || r.coll == nil {
		return errors.New("mongodb terrain collection is nil")
	}

	if _, err := r.coll.DeleteMany(ctx, bson.M{}); err != nil {
		return err
	}
	if len(terrains) == 0 {
		return nil
	}
	docs := make([]any, 0, len(terrains))
	for _, t := range terrains {
		docs = append(docs, model.TerrainDomainToDoc(t))
	}
	_, err := r.coll.InsertMany(ctx, docs)
	return err
}
