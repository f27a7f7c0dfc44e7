package app

import (
	"context"
	"errors"

	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"Strategus/internal/strategus/app/model"
	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/logx"
)

// OrdersService 处理玩家下发的指令：整体替换队伍的指令队列，
// 并创建随指令产生的草稿实体（Intent 报价、Intent 参战申请）。
type OrdersService struct {
	parties     PartyRepo
	settlements SettlementRepo
	battles     BattleRepo
	offers      OfferRepo
	log         logx.Logger
	nextID      NextID

	viewDistance float64
}

func NewOrdersService(
	parties PartyRepo,
	settlements SettlementRepo,
	battles BattleRepo,
	offers OfferRepo,
	log logx.Logger,
	nextID NextID,
	viewDistance float64,
) *OrdersService {
	return &OrdersService{
		parties:      parties,
		settlements:  settlements,
		battles:      battles,
		offers:       offers,
		log:          log,
		nextID:       nextID,
		viewDistance: viewDistance,
	}
}

// UpdatePartyOrders 整体替换指令队列。
// 校验全部通过才落库：任何一条指令非法都不做部分变更。
func (s *OrdersService) UpdatePartyOrders(ctx context.Context, req model.UpdatePartyOrdersReq) error {
	party, err := s.parties.Get(ctx, req.PartyID)
	if err != nil {
		if errors.Is(err, domain.ErrPartyNotFound) {
			return err
		}
		return ErrUnavailable.WithCause(err)
	}

	if !party.CanAcceptOrders() {
		return ErrPartyInBattle.WithData("partyId", party.ID)
	}

	if err := validOrdersSequence(req.Orders); err != nil {
		return err
	}

	// 先解析并校验所有目标，再统一落库
	type resolvedOrder struct {
		item       model.PartyOrderItem
		party      *domain.Party
		settlement *domain.Settlement
		battle     *domain.Battle
	}
	resolved := make([]resolvedOrder, 0, len(req.Orders))

	for _, item := range req.Orders {
		ro := resolvedOrder{item: item}

		switch item.Type {
		case domain.OrderMoveToPoint:
			if len(item.Waypoints) == 0 {
				return ErrInvalidOrder.WithData("reason", "MoveToPoint 需要路径点")
			}

		case domain.OrderFollowParty, domain.OrderAttackParty, domain.OrderTransferOfferParty:
			if item.TargetedPartyID == 0 {
				return ErrInvalidOrder.WithData("reason", "缺少目标队伍")
			}
			target, err := s.parties.Get(ctx, item.TargetedPartyID)
			if err != nil {
				if errors.Is(err, domain.ErrPartyNotFound) {
					return err
				}
				return ErrUnavailable.WithCause(err)
			}
			if planar.Distance(party.Position, target.Position) > s.viewDistance {
				return ErrPartyNotInSight.WithData("targetPartyId", target.ID)
			}
			if item.Type == domain.OrderTransferOfferParty {
				if item.TransferOffer == nil {
					return ErrInvalidOrder.WithData("reason", "缺少报价内容")
				}
				if err := validateOfferResources(party, item.TransferOffer); err != nil {
					return err
				}
			}
			ro.party = target

		case domain.OrderMoveToSettlement, domain.OrderAttackSettlement:
			if item.TargetedSettlementID == 0 {
				return ErrInvalidOrder.WithData("reason", "缺少目标据点")
			}
			target, err := s.settlements.Get(ctx, item.TargetedSettlementID)
			if err != nil {
				if errors.Is(err, domain.ErrSettlementNotFound) {
					return err
				}
				return ErrUnavailable.WithCause(err)
			}
			ro.settlement = target

		case domain.OrderJoinBattle:
			if item.TargetedBattleID == 0 || len(item.BattleJoinIntents) == 0 {
				return ErrInvalidOrder.WithData("reason", "缺少目标战局或参战意向")
			}
			target, err := s.battles.Get(ctx, item.TargetedBattleID)
			if err != nil {
				if errors.Is(err, domain.ErrBattleNotFound) {
					return err
				}
				return ErrUnavailable.WithCause(err)
			}
			ro.battle = target

		default:
			return ErrInvalidOrder.WithData("type", int8(item.Type))
		}

		resolved = append(resolved, ro)
	}

	// 清掉旧队列和随旧指令创建的草稿实体
	party.ClearOrders()
	if err := s.offers.DeleteIntentOfParty(ctx, party.ID); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	if err := s.battles.DeleteIntentFighterApplicationsOfParty(ctx, party.ID); err != nil {
		return ErrUnavailable.WithCause(err)
	}

	var touchedBattles []*domain.Battle
	for idx, ro := range resolved {
		order := &domain.PartyOrder{
			ID:                   s.nextID(),
			PartyID:              party.ID,
			Type:                 ro.item.Type,
			OrderIndex:           idx,
			Waypoints:            ro.item.Waypoints,
			TargetedPartyID:      ro.item.TargetedPartyID,
			TargetedSettlementID: ro.item.TargetedSettlementID,
			TargetedBattleID:     ro.item.TargetedBattleID,
			TargetedParty:        ro.party,
			TargetedSettlement:   ro.settlement,
			TargetedBattle:       ro.battle,
		}
		party.Orders = append(party.Orders, order)

		if ro.item.Type == domain.OrderTransferOfferParty {
			offer := &domain.PartyTransferOffer{
				ID:            s.nextID(),
				PartyID:       party.ID,
				TargetPartyID: ro.party.ID,
				Party:         party,
				TargetParty:   ro.party,
				Status:        domain.TransferOfferIntent,
				Gold:          ro.item.TransferOffer.Gold,
				Troops:        ro.item.TransferOffer.Troops,
			}
			for _, it := range ro.item.TransferOffer.Items {
				offer.Items = append(offer.Items, domain.PartyTransferOfferItem{ItemID: it.ItemID, Count: it.Count})
			}
			if err := s.offers.Create(ctx, offer); err != nil {
				return ErrUnavailable.WithCause(err)
			}
		}

		if ro.item.Type == domain.OrderJoinBattle {
			for _, intent := range ro.item.BattleJoinIntents {
				ro.battle.FighterApplications = append(ro.battle.FighterApplications, &domain.BattleFighterApplication{
					ID:       s.nextID(),
					BattleID: ro.battle.ID,
					PartyID:  party.ID,
					Party:    party,
					Side:     intent.Side,
					Status:   domain.ApplicationIntent,
				})
			}
			touchedBattles = append(touchedBattles, ro.battle)
		}
	}

	if len(touchedBattles) > 0 {
		if err := s.battles.Save(ctx, touchedBattles...); err != nil {
			return ErrUnavailable.WithCause(err)
		}
	}
	if err := s.parties.Save(ctx, party); err != nil {
		return ErrUnavailable.WithCause(err)
	}

	s.log.WithContext(ctx).Info("指令队列已更新",
		zap.Int64("partyId", party.ID), zap.Int("orders", len(party.Orders)))
	return nil
}

// validOrdersSequence 只有 MoveToPoint 允许出现在队列非末位。
func validOrdersSequence(orders []model.PartyOrderItem) error {
	for i := 0; i+1 < len(orders); i++ {
		if orders[i].Type != domain.OrderMoveToPoint {
			return ErrInvalidOrderSequence.WithData("orderIndex", i)
		}
	}
	return nil
}

// validateOfferResources 发起方必须真的拿得出报价里承诺的资源。
func validateOfferResources(party *domain.Party, offer *model.TransferOfferUpdate) error {
	if offer.Gold < 0 || offer.Troops < 0 {
		return ErrOfferInvalidAmount.WithData("reason", "数量不能为负")
	}
	if party.Gold < offer.Gold {
		return ErrNotEnoughResources.WithData("gold", party.Gold).WithData("offered", offer.Gold)
	}
	if party.Troops < offer.Troops {
		return ErrNotEnoughResources.WithData("troops", party.Troops).WithData("offered", offer.Troops)
	}
	for _, it := range offer.Items {
		have := 0
		for _, pi := range party.Items {
			if pi.ItemID == it.ItemID {
				have = pi.Count
				break
			}
		}
		if have < it.Count {
			return ErrNotEnoughResources.WithData("itemId", it.ItemID).WithData("have", have)
		}
	}
	return nil
}
