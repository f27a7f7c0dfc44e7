package memory

import (
	"context"
	"time"

	"github.com/paulmach/orb"

	"Strategus/internal/strategus/domain"
)

// 各仓储接口的方法名互相冲突（都叫 Get/Save），用视图把同一个 Store 拆开暴露。

type PartyRepo struct{ s *Store }

func (s *Store) PartyRepo() *PartyRepo { return &PartyRepo{s: s} }

func (r *PartyRepo) Get(ctx context.Context, id int64) (*domain.Party, error) {
	return r.s.Get(ctx, id)
}

func (r *PartyRepo) ListWithOrders(ctx context.Context) ([]*domain.Party, error) {
	return r.s.ListWithOrders(ctx)
}

func (r *PartyRepo) ListByStatus(ctx context.Context, status domain.PartyStatus) ([]*domain.Party, error) {
	return r.s.ListByStatus(ctx, status)
}

func (r *PartyRepo) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Party, error) {
	return r.s.ListVisible(ctx, center, radius)
}

func (r *PartyRepo) Save(ctx context.Context, parties ...*domain.Party) error {
	return r.s.Save(ctx, parties...)
}

type SettlementRepo struct{ s *Store }

func (s *Store) SettlementRepo() *SettlementRepo { return &SettlementRepo{s: s} }

func (r *SettlementRepo) Get(ctx context.Context, id int64) (*domain.Settlement, error) {
	return r.s.GetSettlement(ctx, id)
}

func (r *SettlementRepo) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Settlement, error) {
	return r.s.ListVisibleSettlements(ctx, center, radius)
}

type BattleRepo struct{ s *Store }

func (s *Store) BattleRepo() *BattleRepo { return &BattleRepo{s: s} }

func (r *BattleRepo) Get(ctx context.Context, id int64) (*domain.Battle, error) {
	return r.s.GetBattle(ctx, id)
}

func (r *BattleRepo) GetByMercenaryApplication(ctx context.Context, applicationID int64) (*domain.Battle, error) {
	return r.s.GetByMercenaryApplication(ctx, applicationID)
}

func (r *BattleRepo) GetByFighterApplication(ctx context.Context, applicationID int64) (*domain.Battle, error) {
	return r.s.GetByFighterApplication(ctx, applicationID)
}

func (r *BattleRepo) ListDuePhaseChange(ctx context.Context, now time.Time, prep, hiring time.Duration) ([]*domain.Battle, error) {
	return r.s.ListDuePhaseChange(ctx, now, prep, hiring)
}

func (r *BattleRepo) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Battle, error) {
	return r.s.ListVisibleBattles(ctx, center, radius)
}

func (r *BattleRepo) HasActiveSettlementBattle(ctx context.Context, settlementID int64) (bool, error) {
	return r.s.HasActiveSettlementBattle(ctx, settlementID)
}

func (r *BattleRepo) DeleteIntentFighterApplicationsOfParty(ctx context.Context, partyID int64) error {
	return r.s.DeleteIntentFighterApplicationsOfParty(ctx, partyID)
}

func (r *BattleRepo) Create(ctx context.Context, battle *domain.Battle) error {
	return r.s.CreateBattle(ctx, battle)
}

func (r *BattleRepo) Save(ctx context.Context, battles ...*domain.Battle) error {
	return r.s.SaveBattles(ctx, battles...)
}

type OfferRepo struct{ s *Store }

func (s *Store) OfferRepo() *OfferRepo { return &OfferRepo{s: s} }

func (r *OfferRepo) Get(ctx context.Context, id int64) (*domain.PartyTransferOffer, error) {
	return r.s.GetOffer(ctx, id)
}

func (r *OfferRepo) FindByParties(ctx context.Context, partyID, targetPartyID int64) (*domain.PartyTransferOffer, error) {
	return r.s.FindByParties(ctx, partyID, targetPartyID)
}

func (r *OfferRepo) DeleteIntentOfParty(ctx context.Context, partyID int64) error {
	return r.s.DeleteIntentOfParty(ctx, partyID)
}

func (r *OfferRepo) Create(ctx context.Context, offer *domain.PartyTransferOffer) error {
	return r.s.CreateOffer(ctx, offer)
}

func (r *OfferRepo) Save(ctx context.Context, offer *domain.PartyTransferOffer) error {
	return r.s.SaveOffer(ctx, offer)
}

func (r *OfferRepo) Delete(ctx context.Context, offer *domain.PartyTransferOffer) error {
	return r.s.DeleteOffer(ctx, offer)
}

type TerrainRepo struct{ s *Store }

func (s *Store) TerrainRepo() *TerrainRepo { return &TerrainRepo{s: s} }

func (r *TerrainRepo) ListAll(ctx context.Context) ([]domain.Terrain, error) {
	return r.s.ListAll(ctx)
}
