package memory

import (
	"context"
	"sync"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"

	"Strategus/internal/strategus/domain"
)

// Store 是单进程内存仓储，开发和联调时代替 mysql/mongodb。
// 所有仓储接口共用一个实例，聚合之间直接共享活对象，Save 只做占位。
type Store struct {
	mu sync.Mutex

	parties     map[int64]*domain.Party
	settlements map[int64]*domain.Settlement
	battles     map[int64]*domain.Battle
	offers      map[int64]*domain.PartyTransferOffer
	terrains    []domain.Terrain
}

func NewStore() *Store {
	return &Store{
		parties:     make(map[int64]*domain.Party),
		settlements: make(map[int64]*domain.Settlement),
		battles:     make(map[int64]*domain.Battle),
		offers:      make(map[int64]*domain.PartyTransferOffer),
	}
}

// ---- PartyRepo ----

func (s *Store) Get(ctx context.Context, id int64) (*domain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.parties[id]
	if !ok {
		return nil, domain.ErrPartyNotFound.WithData("partyId", id)
	}
	return p, nil
}

func (s *Store) ListWithOrders(ctx context.Context) ([]*domain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Party
	for _, p := range s.parties {
		if len(p.Orders) == 0 {
			continue
		}
		for _, o := range p.Orders {
			s.resolveOrderTargets(o)
		}
		out = append(out, p)
	}
	return out, nil
}

func (s *Store) resolveOrderTargets(o *domain.PartyOrder) {
	if o.TargetedPartyID != 0 {
		o.TargetedParty = s.parties[o.TargetedPartyID]
	}
	if o.TargetedSettlementID != 0 {
		o.TargetedSettlement = s.settlements[o.TargetedSettlementID]
	}
	if o.TargetedBattleID != 0 {
		o.TargetedBattle = s.battles[o.TargetedBattleID]
	}
}

func (s *Store) ListByStatus(ctx context.Context, status domain.PartyStatus) ([]*domain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Party
	for _, p := range s.parties {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Party, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Party
	for _, p := range s.parties {
		if planar.Distance(p.Position, center) <= radius {
			out = append(out, p)
		}
	}
	return out, nil
}

func (s *Store) Save(ctx context.Context, parties ...*domain.Party) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, p := range parties {
		s.parties[p.ID] = p
	}
	return nil
}

// AddParty 初始化种子数据用。
func (s *Store) AddParty(p *domain.Party) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.parties[p.ID] = p
}

// ---- SettlementRepo ----

func (s *Store) GetSettlement(ctx context.Context, id int64) (*domain.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	st, ok := s.settlements[id]
	if !ok {
		return nil, domain.ErrSettlementNotFound.WithData("settlementId", id)
	}
	if st.OwnerPartyID != 0 {
		st.Owner = s.parties[st.OwnerPartyID]
	}
	return st, nil
}

func (s *Store) ListVisibleSettlements(ctx context.Context, center orb.Point, radius float64) ([]*domain.Settlement, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Settlement
	for _, st := range s.settlements {
		if planar.Distance(st.Position, center) <= radius {
			out = append(out, st)
		}
	}
	return out, nil
}

func (s *Store) AddSettlement(st *domain.Settlement) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.settlements[st.ID] = st
}

// ---- BattleRepo ----

func (s *Store) GetBattle(ctx context.Context, id int64) (*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.battles[id]
	if !ok {
		return nil, domain.ErrBattleNotFound.WithData("battleId", id)
	}
	return b, nil
}

func (s *Store) GetByMercenaryApplication(ctx context.Context, applicationID int64) (*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.battles {
		for _, a := range b.MercenaryApplications {
			if a.ID == applicationID {
				return b, nil
			}
		}
	}
	return nil, domain.ErrApplicationNotFound.WithData("applicationId", applicationID)
}

func (s *Store) GetByFighterApplication(ctx context.Context, applicationID int64) (*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.battles {
		for _, a := range b.FighterApplications {
			if a.ID == applicationID {
				return b, nil
			}
		}
	}
	return nil, domain.ErrApplicationNotFound.WithData("applicationId", applicationID)
}

func (s *Store) ListDuePhaseChange(ctx context.Context, now time.Time, prep, hiring time.Duration) ([]*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Battle
	for _, b := range s.battles {
		switch {
		case b.Phase == domain.BattlePreparation && b.CreatedAt.Add(prep).Before(now):
			out = append(out, b)
		case b.Phase == domain.BattleHiring && b.CreatedAt.Add(prep+hiring).Before(now):
			out = append(out, b)
		case b.Phase == domain.BattleScheduled && b.ScheduledFor != nil && b.ScheduledFor.Before(now):
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) ListVisibleBattles(ctx context.Context, center orb.Point, radius float64) ([]*domain.Battle, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []*domain.Battle
	for _, b := range s.battles {
		if planar.Distance(b.Position, center) <= radius {
			out = append(out, b)
		}
	}
	return out, nil
}

func (s *Store) HasActiveSettlementBattle(ctx context.Context, settlementID int64) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.battles {
		if b.Phase == domain.BattleEnd {
			continue
		}
		for _, f := range b.Fighters {
			if f.SettlementID == settlementID {
				return true, nil
			}
		}
	}
	return false, nil
}

func (s *Store) DeleteIntentFighterApplicationsOfParty(ctx context.Context, partyID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range s.battles {
		kept := b.FighterApplications[:0]
		for _, a := range b.FighterApplications {
			if !(a.PartyID == partyID && a.Status == domain.ApplicationIntent) {
				kept = append(kept, a)
			}
		}
		b.FighterApplications = kept
	}
	return nil
}

func (s *Store) CreateBattle(ctx context.Context, battle *domain.Battle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.battles[battle.ID] = battle
	return nil
}

func (s *Store) SaveBattles(ctx context.Context, battles ...*domain.Battle) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, b := range battles {
		s.battles[b.ID] = b
	}
	return nil
}

// ---- OfferRepo ----

func (s *Store) GetOffer(ctx context.Context, id int64) (*domain.PartyTransferOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	o, ok := s.offers[id]
	if !ok {
		return nil, domain.ErrOfferNotFound.WithData("offerId", id)
	}
	o.Party = s.parties[o.PartyID]
	o.TargetParty = s.parties[o.TargetPartyID]
	return o, nil
}

func (s *Store) FindByParties(ctx context.Context, partyID, targetPartyID int64) (*domain.PartyTransferOffer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var found *domain.PartyTransferOffer
	for _, o := range s.offers {
		if o.PartyID == partyID && o.TargetPartyID == targetPartyID {
			if found == nil || o.ID > found.ID {
				found = o
			}
		}
	}
	if found == nil {
		return nil, domain.ErrOfferNotFound.WithData("partyId", partyID).WithData("targetPartyId", targetPartyID)
	}
	found.Party = s.parties[found.PartyID]
	found.TargetParty = s.parties[found.TargetPartyID]
	return found, nil
}

func (s *Store) DeleteIntentOfParty(ctx context.Context, partyID int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, o := range s.offers {
		if o.PartyID == partyID && o.Status == domain.TransferOfferIntent {
			delete(s.offers, id)
		}
	}
	return nil
}

func (s *Store) CreateOffer(ctx context.Context, offer *domain.PartyTransferOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[offer.ID] = offer
	return nil
}

func (s *Store) SaveOffer(ctx context.Context, offer *domain.PartyTransferOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.offers[offer.ID] = offer
	return nil
}

func (s *Store) DeleteOffer(ctx context.Context, offer *domain.PartyTransferOffer) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.offers, offer.ID)
	return nil
}

// ---- TerrainRepo ----

func (s *Store) ListAll(ctx context.Context) ([]domain.Terrain, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.terrains, nil
}

func (s *Store) SetTerrains(terrains []domain.Terrain) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.terrains = terrains
}
