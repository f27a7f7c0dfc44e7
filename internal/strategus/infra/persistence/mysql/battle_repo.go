package mysql

import (
	"context"
	"errors"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/infra/persistence/mapper"
	"Strategus/internal/strategus/infra/persistence/model"
)

type BattleRepo struct {
	db *gorm.DB
}

func NewBattleRepo(db *gorm.DB) *BattleRepo {
	return &BattleRepo{db: db}
}

func (r *BattleRepo) Get(ctx context.Context, id int64) (*domain.Battle, error) {
	battles, err := loadBattlesByIDs(ctx, r.db, []int64{id})
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("battleId", id).WithCause(err)
	}
	b, ok := battles[id]
	if !ok {
		return nil, domain.ErrBattleNotFound.WithData("battleId", id)
	}
	return b, nil
}

func (r *BattleRepo) GetByMercenaryApplication(ctx context.Context, applicationID int64) (*domain.Battle, error) {
	var row model.BattleMercenaryApplication
	err := r.db.WithContext(ctx).Where("id = ?", applicationID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrApplicationNotFound.WithData("applicationId", applicationID)
	}
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("applicationId", applicationID).WithCause(err)
	}
	return r.Get(ctx, row.BattleId)
}

func (r *BattleRepo) GetByFighterApplication(ctx context.Context, applicationID int64) (*domain.Battle, error) {
	var row model.BattleFighterApplication
	err := r.db.WithContext(ctx).Where("id = ?", applicationID).First(&row).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, domain.ErrApplicationNotFound.WithData("applicationId", applicationID)
	}
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithData("applicationId", applicationID).WithCause(err)
	}
	return r.Get(ctx, row.BattleId)
}

// ListDuePhaseChange 找出到点该推进阶段的战局。
func (r *BattleRepo) ListDuePhaseChange(ctx context.Context, now time.Time, prep, hiring time.Duration) ([]*domain.Battle, error) {
	var rows []*model.Battle
	err := r.db.WithContext(ctx).
		Where("(phase = ? AND created_at < ?) OR (phase = ? AND created_at < ?) OR (phase = ? AND scheduled_for IS NOT NULL AND scheduled_for < ?)",
			int8(domain.BattlePreparation), now.Add(-prep),
			int8(domain.BattleHiring), now.Add(-(prep+hiring)),
			int8(domain.BattleScheduled), now).
		Find(&rows).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	return r.loadFull(ctx, rows)
}

func (r *BattleRepo) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Battle, error) {
	var rows []*model.Battle
	err := r.db.WithContext(ctx).
		Where("pos_x BETWEEN ? AND ? AND pos_y BETWEEN ? AND ?",
			center[0]-radius, center[0]+radius, center[1]-radius, center[1]+radius).
		Find(&rows).Error
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}

	visible := rows[:0]
	for _, row := range rows {
		if planar.Distance(orb.Point{row.PosX, row.PosY}, center) <= radius {
			visible = append(visible, row)
		}
	}
	return r.loadFull(ctx, visible)
}

func (r *BattleRepo) loadFull(ctx context.Context, rows []*model.Battle) ([]*domain.Battle, error) {
	ids := make([]int64, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.Id)
	}
	battles, err := loadBattlesByIDs(ctx, r.db, ids)
	if err != nil {
		return nil, domain.ErrSystemUnavailable.WithCause(err)
	}
	out := make([]*domain.Battle, 0, len(ids))
	for _, id := range ids {
		if b := battles[id]; b != nil {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *BattleRepo) HasActiveSettlementBattle(ctx context.Context, settlementID int64) (bool, error) {
	var n int64
	err := r.db.WithContext(ctx).
		Model(&model.Battle{}).
		Joins("JOIN strategus_battle_fighter f ON f.battle_id = strategus_battle.id").
		Where("f.settlement_id = ? AND strategus_battle.phase < ?", settlementID, int8(domain.BattleEnd)).
		Count(&n).Error
	if err != nil {
		return false, domain.ErrSystemUnavailable.WithData("settlementId", settlementID).WithCause(err)
	}
	return n > 0, nil
}

func (r *BattleRepo) DeleteIntentFighterApplicationsOfParty(ctx context.Context, partyID int64) error {
	err := r.db.WithContext(ctx).
		Where("party_id = ? AND status = ?", partyID, int8(domain.ApplicationIntent)).
		Delete(&model.BattleFighterApplication{}).Error
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("partyId", partyID).WithCause(err)
	}
	return nil
}

func (r *BattleRepo) Create(ctx context.Context, battle *domain.Battle) error {
	rows := mapper.BattleDomainToRows(battle)
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return saveBattleRows(tx, rows)
	})
	if err != nil {
		return domain.ErrSystemUnavailable.WithData("battleId", battle.ID).WithCause(err)
	}
	return nil
}

// Save 覆盖写整棵聚合。子表只增改不减：删除只发生在 DeleteIntentFighterApplicationsOfParty。
func (r *BattleRepo) Save(ctx context.Context, battles ...*domain.Battle) error {
	if len(battles) == 0 {
		return nil
	}
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for _, b := range battles {
			if err := saveBattleRows(tx, mapper.BattleDomainToRows(b)); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return domain.ErrSystemUnavailable.WithCause(err)
	}
	return nil
}

func saveBattleRows(tx *gorm.DB, rows mapper.BattleRows) error {
	if err := upsert(tx, rows.Battle); err != nil {
		return err
	}
	for _, f := range rows.Fighters {
		if err := upsert(tx, f); err != nil {
			return err
		}
	}
	for _, a := range rows.FighterApplications {
		if err := upsert(tx, a); err != nil {
			return err
		}
	}
	for _, a := range rows.MercenaryApplications {
		if err := upsert(tx, a); err != nil {
			return err
		}
	}
	for _, p := range rows.Participants {
		if err := upsert(tx, p); err != nil {
			return err
		}
	}
	for _, s := range rows.SideBriefings {
		if err := upsert(tx, s); err != nil {
			return err
		}
	}
	return nil
}

func upsert(tx *gorm.DB, row any) error {
	return tx.Clauses(clause.OnConflict{UpdateAll: true}).Create(row).Error
}
