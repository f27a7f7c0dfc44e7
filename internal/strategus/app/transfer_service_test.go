package app

import (
	"context"
	"errors"
	"testing"

	"Strategus/internal/strategus/app/model"
	"Strategus/internal/strategus/domain"
)

func pendingOffer(offering, target *domain.Party) *domain.PartyTransferOffer {
	return &domain.PartyTransferOffer{
		ID:            7,
		PartyID:       offering.ID,
		TargetPartyID: target.ID,
		Party:         offering,
		TargetParty:   target,
		Status:        domain.TransferOfferPending,
		Gold:          50,
		Troops:        10,
		Items:         []domain.PartyTransferOfferItem{{ItemID: "crpg_horse", Count: 2}},
	}
}

func TestRespondToTransferOffer_接受后资源转移(t *testing.T) {
	offering := &domain.Party{
		ID: 1, Gold: 100, Troops: 50,
		Status:         domain.PartyAwaitingPartyOfferDecision,
		CurrentPartyID: 2,
		Items:          []domain.PartyItem{{ItemID: "crpg_horse", Count: 3, Mount: &domain.Mount{HitPoints: 300}}},
	}
	responding := &domain.Party{ID: 2, Gold: 10, Troops: 20}
	offer := pendingOffer(offering, responding)
	offers := newFakeOfferRepo(offer)
	svc := NewTransferService(newFakePartyRepo(offering, responding), offers, nopLogger{})

	err := svc.RespondToTransferOffer(context.Background(), model.RespondToTransferOfferReq{
		PartyID: 2, OfferID: 7, Accept: true,
		Accepted: &model.TransferOfferUpdate{
			Gold: 50, Troops: 10,
			Items: []model.TransferOfferItemUpdate{{ItemID: "crpg_horse", Count: 2}},
		},
	})
	if err != nil {
		t.Fatalf("应答不应报错: %v", err)
	}

	if offering.Gold != 50 || responding.Gold != 60 {
		t.Fatalf("金币转移不符: offering=%d responding=%d", offering.Gold, responding.Gold)
	}
	if offering.Troops != 40 || responding.Troops != 30 {
		t.Fatalf("兵力转移不符: offering=%v responding=%v", offering.Troops, responding.Troops)
	}
	if offering.Items[0].Count != 1 {
		t.Fatalf("发起方物品应扣减, got=%d", offering.Items[0].Count)
	}
	if len(responding.Items) != 1 || responding.Items[0].Count != 2 || responding.Items[0].Mount == nil {
		t.Fatalf("应答方物品不符: %+v", responding.Items)
	}
	if offering.Status != domain.PartyIdle || offering.CurrentPartyID != 0 {
		t.Fatalf("发起方应恢复空闲, got=%v", offering.Status)
	}
	if len(offers.deleted) != 1 {
		t.Fatalf("报价应被整体消费删除")
	}
}

func TestRespondToTransferOffer_拒绝也消费报价(t *testing.T) {
	offering := &domain.Party{ID: 1, Gold: 100, Troops: 50, Status: domain.PartyAwaitingPartyOfferDecision}
	responding := &domain.Party{ID: 2}
	offer := pendingOffer(offering, responding)
	offering.Items = []domain.PartyItem{{ItemID: "crpg_horse", Count: 3}}
	offers := newFakeOfferRepo(offer)
	svc := NewTransferService(newFakePartyRepo(offering, responding), offers, nopLogger{})

	err := svc.RespondToTransferOffer(context.Background(), model.RespondToTransferOfferReq{
		PartyID: 2, OfferID: 7, Accept: false,
	})
	if err != nil {
		t.Fatalf("应答不应报错: %v", err)
	}
	if offering.Gold != 100 || offering.Troops != 50 {
		t.Fatalf("拒绝时不应转移资源")
	}
	if offering.Status != domain.PartyIdle {
		t.Fatalf("发起方应恢复空闲, got=%v", offering.Status)
	}
	if len(offers.deleted) != 1 {
		t.Fatalf("拒绝也应删除报价")
	}
}

func TestRespondToTransferOffer_只有目标队伍能应答(t *testing.T) {
	offering := &domain.Party{ID: 1}
	responding := &domain.Party{ID: 2}
	outsider := &domain.Party{ID: 3}
	offer := pendingOffer(offering, responding)
	svc := NewTransferService(newFakePartyRepo(offering, responding, outsider), newFakeOfferRepo(offer), nopLogger{})

	err := svc.RespondToTransferOffer(context.Background(), model.RespondToTransferOfferReq{
		PartyID: 3, OfferID: 7, Accept: false,
	})
	if !errors.Is(err, ErrOfferNotAllowed) {
		t.Fatalf("期望 ErrOfferNotAllowed, got=%v", err)
	}
}

func TestRespondToTransferOffer_实收不能超过报价(t *testing.T) {
	offering := &domain.Party{ID: 1, Gold: 1000, Troops: 100}
	responding := &domain.Party{ID: 2}
	offer := pendingOffer(offering, responding)
	svc := NewTransferService(newFakePartyRepo(offering, responding), newFakeOfferRepo(offer), nopLogger{})

	err := svc.RespondToTransferOffer(context.Background(), model.RespondToTransferOfferReq{
		PartyID: 2, OfferID: 7, Accept: true,
		Accepted: &model.TransferOfferUpdate{Gold: 200},
	})
	if !errors.Is(err, ErrOfferInvalidAmount) {
		t.Fatalf("期望 ErrOfferInvalidAmount, got=%v", err)
	}
}

func TestRespondToTransferOffer_Intent报价不可应答(t *testing.T) {
	offering := &domain.Party{ID: 1}
	responding := &domain.Party{ID: 2}
	offer := pendingOffer(offering, responding)
	offer.Status = domain.TransferOfferIntent
	svc := NewTransferService(newFakePartyRepo(offering, responding), newFakeOfferRepo(offer), nopLogger{})

	err := svc.RespondToTransferOffer(context.Background(), model.RespondToTransferOfferReq{
		PartyID: 2, OfferID: 7, Accept: true,
		Accepted: &model.TransferOfferUpdate{},
	})
	if !errors.Is(err, ErrOfferInvalidStatus) {
		t.Fatalf("期望 ErrOfferInvalidStatus, got=%v", err)
	}
}
