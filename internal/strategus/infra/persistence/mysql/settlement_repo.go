package mysql

import (
	"context"
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gorm.io/gorm"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/infra/persistence/mapper"
	"Strategus/internal/strategus/infra/persistence/model"
)

type SettlementRepo struct {
	db *gorm.DB
}

func NewSettlementRepo(db *gorm.DB) *SettlementRepo {
	return &SettlementRepo{db: db}
}

func (r *SettlementRepo) Get(ctx context.Context, id int64) (*domain.Settlement, error) {
	var m model.Settlement
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrSettlementNotFound.WithData("settlementId", id)
	}
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("settlementId", id).WithCause(err)
	}

	s := mapper.SettlementModelToDomain(&m)
	if s.OwnerPartyID != 0 {
		owners, err := loadPartiesByIDs(ctx, r.db, []int64{s.OwnerPartyID})
		if err != nil {
			return nil, domain.ErrSystemUnavailable.WithData("settlementId", id).WithCause(err)
		}
		s.Owner = owners[s.OwnerPartyID]
	}
	return s, nil
}

func (r *SettlementRepo) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Settlement, error) {
	var rows []*model.Settlement
	err := r.db.WithContext(ctx).
		Where("pos_x BETWEEN ? AND ? AND pos_y BETWEEN ? AND ?",
			center[0]-radius, center[0]+radius, center[1]-radius, center[1]+radius).
		Find(&rows).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make([]*domain.Settlement, 0, len(rows))
	for _, row := range rows {
		s := mapper.SettlementModelToDomain(row)
		if planar.Distance(s.Position, center) <= radius {
			out = append(out, s)
		}
	}
	return out, nil
}
