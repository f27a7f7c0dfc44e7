package app

import (
	"context"
	"errors"

	"go.uber.org/zap"

	"Strategus/internal/strategus/app/model"
	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/logx"
)

// TransferService 处理交接报价的应答。
// 报价整体消费：不管接受还是拒绝，应答后报价删除，发起方回到空闲。
type TransferService struct {
	parties PartyRepo
	offers  OfferRepo
	log     logx.Logger
}

func NewTransferService(parties PartyRepo, offers OfferRepo, log logx.Logger) *TransferService {
	return &TransferService{parties: parties, offers: offers, log: log}
}

// RespondToTransferOffer 目标队伍应答报价。
// 接受时可以只收一部分（Accepted 声明实收），但不能超过报价承诺的数量。
func (s *TransferService) RespondToTransferOffer(ctx context.Context, req model.RespondToTransferOfferReq) error {
	respondingParty, err := s.parties.Get(ctx, req.PartyID)
	if err != nil {
		if errors.Is(err, domain.ErrPartyNotFound) {
			return err
		}
		return ErrUnavailable.WithCause(err)
	}

	offer, err := s.offers.Get(ctx, req.OfferID)
	if err != nil {
		if errors.Is(err, domain.ErrOfferNotFound) {
			return err
		}
		return ErrUnavailable.WithCause(err)
	}

	if offer.TargetPartyID != respondingParty.ID {
		return ErrOfferNotAllowed.WithData("offerId", offer.ID).WithData("partyId", respondingParty.ID)
	}
	if offer.Status != domain.TransferOfferPending {
		return ErrOfferInvalidStatus.WithData("offerId", offer.ID)
	}

	offeringParty := offer.Party
	if offeringParty == nil {
		return domain.ErrPartyNotFound.WithData("partyId", offer.PartyID)
	}

	if req.Accept {
		if req.Accepted == nil {
			return ErrInvalidOrder.WithData("reason", "接受报价需要声明实收内容")
		}
		if err := validateAcceptedWithinOffer(req.Accepted, offer); err != nil {
			return err
		}
		if err := validateOfferingPartyStillHas(offeringParty, offer); err != nil {
			return err
		}

		offeringParty.Gold -= req.Accepted.Gold
		offeringParty.Troops -= req.Accepted.Troops
		respondingParty.Gold += req.Accepted.Gold
		respondingParty.Troops += req.Accepted.Troops

		transferItems(offeringParty, respondingParty, req.Accepted.Items)
	}

	// 发起方恢复行动自由
	offeringParty.Status = domain.PartyIdle
	offeringParty.CurrentParty = nil
	offeringParty.CurrentPartyID = 0

	if err := s.offers.Delete(ctx, offer); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	if err := s.parties.Save(ctx, offeringParty, respondingParty); err != nil {
		return ErrUnavailable.WithCause(err)
	}

	s.log.WithContext(ctx).Info("交接报价已应答",
		zap.Int64("offerId", offer.ID), zap.Int64("partyId", respondingParty.ID),
		zap.Bool("accept", req.Accept))
	return nil
}

// validateAcceptedWithinOffer 实收不能超过报价承诺。
func validateAcceptedWithinOffer(accepted *model.TransferOfferUpdate, offer *domain.PartyTransferOffer) error {
	if accepted.Gold > offer.Gold {
		return ErrOfferInvalidAmount.WithData("accepted", accepted.Gold).WithData("offered", offer.Gold)
	}
	if accepted.Troops > offer.Troops {
		return ErrOfferInvalidAmount.WithData("accepted", accepted.Troops).WithData("offered", offer.Troops)
	}
	for _, it := range accepted.Items {
		offered := 0
		for _, oi := range offer.Items {
			if oi.ItemID == it.ItemID {
				offered = oi.Count
				break
			}
		}
		if offered == 0 {
			return ErrOfferInvalidAmount.WithData("itemId", it.ItemID).WithData("reason", "报价里没有这件物品")
		}
		if it.Count > offered {
			return ErrOfferInvalidAmount.WithData("itemId", it.ItemID).WithData("offered", offered)
		}
	}
	return nil
}

// validateOfferingPartyStillHas 下单到应答之间资源可能已被消耗，落账前复查。
func validateOfferingPartyStillHas(offeringParty *domain.Party, offer *domain.PartyTransferOffer) error {
	if offeringParty.Gold < offer.Gold {
		return ErrNotEnoughResources.WithData("gold", offeringParty.Gold)
	}
	if offeringParty.Troops < offer.Troops {
		return ErrNotEnoughResources.WithData("troops", offeringParty.Troops)
	}
	for _, oi := range offer.Items {
		have := 0
		for _, pi := range offeringParty.Items {
			if pi.ItemID == oi.ItemID {
				have = pi.Count
				break
			}
		}
		if have < oi.Count {
			return ErrNotEnoughResources.WithData("itemId", oi.ItemID).WithData("have", have)
		}
	}
	return nil
}

// transferItems 把实收物品从发起方搬到应答方，清零的物品槽删除，已有同类物品合并。
func transferItems(from, to *domain.Party, items []model.TransferOfferItemUpdate) {
	for _, it := range items {
		var mount *domain.Mount
		for i := range from.Items {
			if from.Items[i].ItemID != it.ItemID {
				continue
			}
			mount = from.Items[i].Mount
			from.Items[i].Count -= it.Count
			if from.Items[i].Count <= 0 {
				from.Items = append(from.Items[:i], from.Items[i+1:]...)
			}
			break
		}

		merged := false
		for i := range to.Items {
			if to.Items[i].ItemID == it.ItemID {
				to.Items[i].Count += it.Count
				merged = true
				break
			}
		}
		if !merged {
			to.Items = append(to.Items, domain.PartyItem{ItemID: it.ItemID, Count: it.Count, Mount: mount})
		}
	}
}
