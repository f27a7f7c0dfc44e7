package mysql

import (
	"context"
	"errors"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/infra/persistence/mapper"
	"Strategus/internal/strategus/infra/persistence/model"
)

type PartyRepo struct {
	db *gorm.DB
}

func NewPartyRepo(db *gorm.DB) *PartyRepo {
	return &PartyRepo{db: db}
}

func (r *PartyRepo) Get(ctx context.Context, id int64) (*domain.Party, error) {
	var m model.Party
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&m).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		// 技术错误 → 业务错误
		return nil, domain.ErrPartyNotFound.WithData("partyId", id)
	}
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("partyId", id).WithCause(err)
	}

	var orders []*model.PartyOrder
	if err := r.db.WithContext(ctx).Where("party_id = ?", id).
		Order("order_index").Find(&orders).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("partyId", id).WithCause(err)
	}
	return mapper.PartyModelToDomain(&m, orders), nil
}

// ListWithOrders 装载所有携带指令的队伍，并把指令目标解析成活对象。
// 同一目标在一批内共享同一个实例，行军 tick 对目标的变更才会被一次落库带走。
func (r *PartyRepo) ListWithOrders(ctx context.Context) ([]*domain.Party, error) {
	var orderRows []*model.PartyOrder
	if err := r.db.WithContext(ctx).Order("party_id, order_index").Find(&orderRows).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	if len(orderRows) == 0 {
		return nil, nil
	}

	partyIDs := make(map[int64]bool, len(orderRows))
	for _, o := range orderRows {
		partyIDs[o.PartyId] = true
	}
	parties, err := loadPartiesByIDs(ctx, r.db, keysOf(partyIDs))
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}

	// 目标队伍可能自己没有指令，追加装载
	targetPartyIDs := make(map[int64]bool)
	settlementIDs := make(map[int64]bool)
	battleIDs := make(map[int64]bool)
	for _, p := range parties {
		for _, o := range p.Orders {
			if o.TargetedPartyID != 0 && parties[o.TargetedPartyID] == nil {
				targetPartyIDs[o.TargetedPartyID] = true
			}
			if o.TargetedSettlementID != 0 {
				settlementIDs[o.TargetedSettlementID] = true
			}
			if o.TargetedBattleID != 0 {
				battleIDs[o.TargetedBattleID] = true
			}
		}
	}

	targets, err := loadPartiesByIDs(ctx, r.db, keysOf(targetPartyIDs))
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	settlements := make(map[int64]*domain.Settlement, len(settlementIDs))
	if len(settlementIDs) > 0 {
		var rows []*model.Settlement
		if err := r.db.WithContext(ctx).Where("id IN ?", keysOf(settlementIDs)).Find(&rows).Error; err != nil {
			return nil, domain.ErrSystemUnavailable.WithCause(err)
		}
		for _, row := range rows {
			settlements[row.Id] = mapper.SettlementModelToDomain(row)
		}
	}
	battles, err := loadBattlesByIDs(ctx, r.db, keysOf(battleIDs))
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}

	out := make([]*domain.Party, 0, len(parties))
	for _, p := range parties {
		for _, o := range p.Orders {
			if o.TargetedPartyID != 0 {
				if t := parties[o.TargetedPartyID]; t != nil {
					o.TargetedParty = t
				} else {
					o.TargetedParty = targets[o.TargetedPartyID]
				}
			}
			o.TargetedSettlement = settlements[o.TargetedSettlementID]
			o.TargetedBattle = battles[o.TargetedBattleID]
		}
		out = append(out, p)
	}
	return out, nil
}

func (r *PartyRepo) ListByStatus(ctx context.Context, status domain.PartyStatus) ([]*domain.Party, error) {
	var rows []*model.Party
	if err := r.db.WithContext(ctx).Where("status = ?", int8(status)).Find(&rows).Error; err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make([]*domain.Party, 0, len(rows))
	for _, row := range rows {
		out = append(out, mapper.PartyModelToDomain(row, nil))
	}
	return out, nil
}

// ListVisible 先用包围盒走索引，再按精确距离过滤。
func (r *PartyRepo) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Party, error) {
	var rows []*model.Party
	err := r.db.WithContext(ctx).
		Where("pos_x BETWEEN ? AND ? AND pos_y BETWEEN ? AND ?",
			center[0]-radius, center[0]+radius, center[1]-radius, center[1]+radius).
		Find(&rows).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make([]*domain.Party, 0, len(rows))
	for _, row := range rows {
		p := mapper.PartyModelToDomain(row, nil)
		if planar.Distance(p.Position, center) <= radius {
			out = append(out, p)
		}
	}
	return out, nil
}

// Save 整体落库：队伍行覆盖写，指令队列删旧写新（指令会被逐条消费）。
func (r *PartyRepo) Save(ctx context.Context, parties ...*domain.Party) error {
	if len(parties) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, p := range parties {
			if err := tx.Clauses(clause.OnConflict{UpdateAll: true}).
				Create(mapper.PartyDomainToModel(p)).Error; err != nil {
				return err
			}
			if err := tx.Where("party_id = ?", p.ID).Delete(&model.PartyOrder{}).Error; err != nil {
				return err
			}
			for _, o := range p.Orders {
				if err := tx.Create(mapper.OrderDomainToModel(o)).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}
