package app

import (
	"context"
	"sync/atomic"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/logx"
)

type nopLogger struct{}

func (nopLogger) WithContext(ctx context.Context) logx.Logger { return nopLogger{} }
func (nopLogger) Info(msg string, fields ...zap.Field)        {}
func (nopLogger) Error(msg string, fields ...zap.Field)       {}
func (nopLogger) Debug(msg string, fields ...zap.Field)       {}
func (nopLogger) Warn(msg string, fields ...zap.Field)        {}

type fixedClock struct {
	now time.Time
}

func (c fixedClock) Now() time.Time { return c.now }

type fixedRand struct {
	n int
}

func (r fixedRand) Intn(n int) int { return r.n % n }

func seqID() NextID {
	var n int64
	return func() int64 { return atomic.AddInt64(&n, 1) }
}

type fakePartyRepo struct {
	parties   map[int64]*domain.Party
	saveCalls int
	saveErr   error
}

func newFakePartyRepo(parties ...*domain.Party) *fakePartyRepo {
	m := make(map[int64]*domain.Party, len(parties))
	for _, p := range parties {
		m[p.ID] = p
	}
	return &fakePartyRepo{parties: m}
}

func (r *fakePartyRepo) Get(ctx context.Context, id int64) (*domain.Party, error) {
	p, ok := r.parties[id]
	if !ok {
		return nil, domain.ErrPartyNotFound.WithData("partyId", id)
	}
	return p, nil
}

func (r *fakePartyRepo) ListWithOrders(ctx context.Context) ([]*domain.Party, error) {
	var out []*domain.Party
	for _, p := range r.parties {
		if len(p.Orders) > 0 {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePartyRepo) ListByStatus(ctx context.Context, status domain.PartyStatus) ([]*domain.Party, error) {
	var out []*domain.Party
	for _, p := range r.parties {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePartyRepo) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Party, error) {
	var out []*domain.Party
	for _, p := range r.parties {
		if planar.Distance(p.Position, center) <= radius {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePartyRepo) Save(ctx context.Context, parties ...*domain.Party) error {
	r.saveCalls++
	return r.saveErr
}

type fakeSettlementRepo struct {
	settlements map[int64]*domain.Settlement
}

func newFakeSettlementRepo(settlements ...*domain.Settlement) *fakeSettlementRepo {
	m := make(map[int64]*domain.Settlement, len(settlements))
	for _, s := range settlements {
		m[s.ID] = s
	}
	return &fakeSettlementRepo{settlements: m}
}

func (r *fakeSettlementRepo) Get(ctx context.Context, id int64) (*domain.Settlement, error) {
	s, ok := r.settlements[id]
	if !ok {
		return nil, domain.ErrSettlementNotFound.WithData("settlementId", id)
	}
	return s, nil
}

func (r *fakeSettlementRepo) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Settlement, error) {
	var out []*domain.Settlement
	for _, s := range r.settlements {
		if planar.Distance(s.Position, center) <= radius {
			out = append(out, s)
		}
	}
	return out, nil
}

type fakeBattleRepo struct {
	battles map[int64]*domain.Battle

	created                 []*domain.Battle
	saveCalls               int
	activeSettlementBattles map[int64]bool
	deletedIntentPartyIDs   []int64
}

func newFakeBattleRepo(battles ...*domain.Battle) *fakeBattleRepo {
	m := make(map[int64]*domain.Battle, len(battles))
	for _, b := range battles {
		m[b.ID] = b
	}
	return &fakeBattleRepo{battles: m, activeSettlementBattles: map[int64]bool{}}
}

func (r *fakeBattleRepo) Get(ctx context.Context, id int64) (*domain.Battle, error) {
	b, ok := r.battles[id]
	if !ok {
		return nil, domain.ErrBattleNotFound.WithData("battleId", id)
	}
	return b, nil
}

func (r *fakeBattleRepo) GetByMercenaryApplication(ctx context.Context, applicationID int64) (*domain.Battle, error) {
	for _, b := range r.battles {
		for _, a := range b.MercenaryApplications {
			if a.ID == applicationID {
				return b, nil
			}
		}
	}
	return nil, domain.ErrApplicationNotFound.WithData("applicationId", applicationID)
}

func (r *fakeBattleRepo) GetByFighterApplication(ctx context.Context, applicationID int64) (*domain.Battle, error) {
	for _, b := range r.battles {
		for _, a := range b.FighterApplications {
			if a.ID == applicationID {
				return b, nil
			}
		}
	}
	return nil, domain.ErrApplicationNotFound.WithData("applicationId", applicationID)
}

func (r *fakeBattleRepo) ListDuePhaseChange(ctx context.Context, now time.Time, prep, hiring time.Duration) ([]*domain.Battle, error) {
	var out []*domain.Battle
	for _, b := range r.battles {
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

func (r *fakeBattleRepo) ListVisible(ctx context.Context, center orb.Point, radius float64) ([]*domain.Battle, error) {
	var out []*domain.Battle
	for _, b := range r.battles {
		if planar.Distance(b.Position, center) <= radius {
			out = append(out, b)
		}
	}
	return out, nil
}

func (r *fakeBattleRepo) HasActiveSettlementBattle(ctx context.Context, settlementID int64) (bool, error) {
	return r.activeSettlementBattles[settlementID], nil
}

func (r *fakeBattleRepo) DeleteIntentFighterApplicationsOfParty(ctx context.Context, partyID int64) error {
	r.deletedIntentPartyIDs = append(r.deletedIntentPartyIDs, partyID)
	for _, b := range r.battles {
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

func (r *fakeBattleRepo) Create(ctx context.Context, battle *domain.Battle) error {
	r.battles[battle.ID] = battle
	r.created = append(r.created, battle)
	return nil
}

func (r *fakeBattleRepo) Save(ctx context.Context, battles ...*domain.Battle) error {
	r.saveCalls++
	return nil
}

type fakeOfferRepo struct {
	offers map[int64]*domain.PartyTransferOffer

	deletedIntentPartyIDs []int64
	deleted               []*domain.PartyTransferOffer
}

func newFakeOfferRepo(offers ...*domain.PartyTransferOffer) *fakeOfferRepo {
	m := make(map[int64]*domain.PartyTransferOffer, len(offers))
	for _, o := range offers {
		m[o.ID] = o
	}
	return &fakeOfferRepo{offers: m}
}

func (r *fakeOfferRepo) Get(ctx context.Context, id int64) (*domain.PartyTransferOffer, error) {
	o, ok := r.offers[id]
	if !ok {
		return nil, domain.ErrOfferNotFound.WithData("offerId", id)
	}
	return o, nil
}

func (r *fakeOfferRepo) FindByParties(ctx context.Context, partyID, targetPartyID int64) (*domain.PartyTransferOffer, error) {
	for _, o := range r.offers {
		if o.PartyID == partyID && o.TargetPartyID == targetPartyID {
			return o, nil
		}
	}
	return nil, domain.ErrOfferNotFound.WithData("partyId", partyID)
}

func (r *fakeOfferRepo) DeleteIntentOfParty(ctx context.Context, partyID int64) error {
	r.deletedIntentPartyIDs = append(r.deletedIntentPartyIDs, partyID)
	for id, o := range r.offers {
		if o.PartyID == partyID && o.Status == domain.TransferOfferIntent {
			delete(r.offers, id)
		}
	}
	return nil
}

func (r *fakeOfferRepo) Create(ctx context.Context, offer *domain.PartyTransferOffer) error {
	r.offers[offer.ID] = offer
	return nil
}

func (r *fakeOfferRepo) Save(ctx context.Context, offer *domain.PartyTransferOffer) error {
	r.offers[offer.ID] = offer
	return nil
}

func (r *fakeOfferRepo) Delete(ctx context.Context, offer *domain.PartyTransferOffer) error {
	delete(r.offers, offer.ID)
	r.deleted = append(r.deleted, offer)
	return nil
}

type fakeActivityLog struct {
	battleCreated        int
	applicationResponded int
}

func (l *fakeActivityLog) BattleCreated(ctx context.Context, battle *domain.Battle, attackerPartyID int64) {
	l.battleCreated++
}

func (l *fakeActivityLog) ApplicationResponded(ctx context.Context, battleID, applicationID, responderPartyID int64, accepted bool) {
	l.applicationResponded++
}

type fakeNotifier struct {
	notified int
}

func (n *fakeNotifier) ApplicationResponded(ctx context.Context, userID, battleID int64, accepted bool) {
	n.notified++
}

type fakeLauncher struct {
	err      error
	launched []int64
}

func (l *fakeLauncher) Launch(ctx context.Context, battle *domain.Battle) error {
	if l.err != nil {
		return l.err
	}
	l.launched = append(l.launched, battle.ID)
	return nil
}
