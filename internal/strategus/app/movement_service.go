package app

import (
	"context"
	"time"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"go.uber.org/zap"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/service"
	"Strategus/modules/kit/logx"
)

// MovementService 是行军 tick：逐支队伍消费指令队列，推进位置与状态，
// 碰撞时创建战局。每次调用批量装载、内存推进、最后一次落库。
type MovementService struct {
	parties  PartyRepo
	battles  BattleRepo
	terrains TerrainRepo
	offers   OfferRepo

	routing *service.Routing
	speed   *service.SpeedModel
	clock   service.Clock

	activity ActivityLog
	log      logx.Logger
	nextID   NextID

	viewDistance        float64
	interactionDistance float64
}

func NewMovementService(
	parties PartyRepo,
	battles BattleRepo,
	terrains TerrainRepo,
	offers OfferRepo,
	routing *service.Routing,
	speed *service.SpeedModel,
	clock service.Clock,
	activity ActivityLog,
	log logx.Logger,
	nextID NextID,
	viewDistance, interactionDistance float64,
) *MovementService {
	return &MovementService{
		parties:             parties,
		battles:             battles,
		terrains:            terrains,
		offers:              offers,
		routing:             routing,
		speed:               speed,
		clock:               clock,
		activity:            activity,
		log:                 log,
		nextID:              nextID,
		viewDistance:        viewDistance,
		interactionDistance: interactionDistance,
	}
}

// AdvanceParties 推进一个行军 tick。
// 单支队伍的坏指令只告警丢弃，不让整批失败；批量装载/落库失败才向上返回。
func (s *MovementService) AdvanceParties(ctx context.Context, delta time.Duration) error {
	parties, err := s.parties.ListWithOrders(ctx)
	if err != nil {
		return ErrUnavailable.WithCause(err)
	}
	terrains, err := s.terrains.ListAll(ctx)
	if err != nil {
		return ErrUnavailable.WithCause(err)
	}

	var createdBattles []*domain.Battle
	var touchedBattles []*domain.Battle
	for _, party := range parties {
		// 取消只在两支队伍之间生效，不会打断单支队伍的变更
		if err := ctx.Err(); err != nil {
			return err
		}

		baseSpeed := s.speed.ComputePartySpeed(party, nil).BaseSpeedWithoutTerrain
		remaining := delta.Seconds()

		for remaining > 0 && len(party.Orders) > 0 {
			order := party.ActiveOrder()

			switch order.Type {
			case domain.OrderMoveToPoint:
				remaining = s.moveToPoint(party, order, baseSpeed, remaining, terrains)
			case domain.OrderFollowParty, domain.OrderAttackParty, domain.OrderTransferOfferParty:
				remaining, createdBattles = s.moveToParty(ctx, party, order, baseSpeed, remaining, terrains, createdBattles)
			case domain.OrderMoveToSettlement, domain.OrderAttackSettlement:
				remaining, createdBattles = s.moveToSettlement(ctx, party, order, baseSpeed, remaining, terrains, createdBattles)
			case domain.OrderJoinBattle:
				var arrived *domain.Battle
				remaining, arrived = s.moveToBattle(party, order, baseSpeed, remaining, terrains)
				if arrived != nil {
					touchedBattles = appendBattleOnce(touchedBattles, arrived)
				}
			default:
				s.log.WithContext(ctx).Warn("未知指令类型，丢弃",
					zap.Int64("partyId", party.ID), zap.Int8("type", int8(order.Type)))
				party.RemoveOrder(order)
			}
		}
	}

	for _, battle := range createdBattles {
		if err := s.battles.Create(ctx, battle); err != nil {
			return ErrUnavailable.WithCause(err)
		}
	}
	// 抵达战局时把 Intent 申请提升成了 Pending，战局也要落库
	if len(touchedBattles) > 0 {
		if err := s.battles.Save(ctx, touchedBattles...); err != nil {
			return ErrUnavailable.WithCause(err)
		}
	}
	// 被动卷入战局的防守方可能不在本批（没有指令），也要一并落库
	if err := s.parties.Save(ctx, withBattleParties(parties, createdBattles)...); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	return nil
}

func appendBattleOnce(battles []*domain.Battle, battle *domain.Battle) []*domain.Battle {
	for _, b := range battles {
		if b == battle {
			return battles
		}
	}
	return append(battles, battle)
}

func withBattleParties(parties []*domain.Party, battles []*domain.Battle) []*domain.Party {
	seen := make(map[int64]bool, len(parties))
	for _, p := range parties {
		seen[p.ID] = true
	}
	out := parties
	for _, b := range battles {
		for _, f := range b.Fighters {
			if f.Party != nil && !seen[f.Party.ID] {
				seen[f.Party.ID] = true
				out = append(out, f.Party)
			}
		}
	}
	return out
}

func (s *MovementService) moveToPoint(party *domain.Party, order *domain.PartyOrder, baseSpeed, remaining float64, terrains []domain.Terrain) float64 {
	if len(order.Waypoints) == 0 {
		s.log.Warn("指令没有路径点，丢弃",
			zap.Int64("partyId", party.ID), zap.String("orderType", order.Type.String()))
		party.RemoveOrder(order)
		return remaining
	}

	remaining = s.moveAlongWaypoints(party, order, baseSpeed, remaining, terrains)

	if len(order.Waypoints) == 0 {
		party.RemoveOrder(order)
	}
	return remaining
}

func (s *MovementService) moveToParty(ctx context.Context, party *domain.Party, order *domain.PartyOrder, baseSpeed, remaining float64, terrains []domain.Terrain, created []*domain.Battle) (float64, []*domain.Battle) {
	target := order.TargetedParty
	if target == nil {
		s.log.Warn("指令目标队伍不存在，丢弃",
			zap.Int64("partyId", party.ID), zap.String("orderType", order.Type.String()))
		party.RemoveOrder(order)
		return remaining, created
	}

	if planar.Distance(party.Position, target.Position) > s.viewDistance {
		// 目标脱离视野，停止
		party.RemoveOrder(order)
		return remaining, created
	}

	if order.Type == domain.OrderFollowParty {
		s.moveTowardsWithTerrainSegmentation(party, target.Position, baseSpeed, remaining, terrains)
		return 0, created // 目标一直在动，本 tick 预算直接耗尽
	}

	if planar.Distance(party.Position, target.Position) <= s.interactionDistance {
		switch order.Type {
		case domain.OrderAttackParty:
			if !target.Attackable() {
				// 原地追着打不动会空转，直接丢弃指令
				s.log.Warn("目标当前不可被攻击，丢弃攻击指令",
					zap.Int64("partyId", party.ID), zap.Int64("targetId", target.ID),
					zap.String("targetStatus", target.Status.String()))
				party.RemoveOrder(order)
				return remaining, created
			}
			created = append(created, s.startBattle(ctx, party, target))
		case domain.OrderTransferOfferParty:
			offer, err := s.offers.FindByParties(ctx, party.ID, target.ID)
			if err != nil {
				s.log.Warn("找不到随指令创建的报价，丢弃指令",
					zap.Int64("partyId", party.ID), zap.Int64("targetId", target.ID), zap.Error(err))
				party.RemoveOrder(order)
				return remaining, created
			}
			offer.Status = domain.TransferOfferPending
			if err := s.offers.Save(ctx, offer); err != nil {
				s.log.Error("报价状态保存失败", zap.Int64("offerId", offer.ID), zap.Error(err))
			}
			party.Status = domain.PartyAwaitingPartyOfferDecision
			party.CurrentParty = target
			party.CurrentPartyID = target.ID
			party.ClearOrders()
		}
		return remaining, created
	}

	remaining, _ = s.moveTowardsWithTerrainSegmentation(party, target.Position, baseSpeed, remaining, terrains)
	return remaining, created
}

func (s *MovementService) moveToSettlement(ctx context.Context, party *domain.Party, order *domain.PartyOrder, baseSpeed, remaining float64, terrains []domain.Terrain, created []*domain.Battle) (float64, []*domain.Battle) {
	target := order.TargetedSettlement
	if target == nil {
		s.log.Warn("指令目标据点不存在，丢弃",
			zap.Int64("partyId", party.ID), zap.String("orderType", order.Type.String()))
		party.RemoveOrder(order)
		return remaining, created
	}

	if planar.Distance(party.Position, target.Position) <= s.interactionDistance {
		if order.Type == domain.OrderMoveToSettlement {
			party.Status = domain.PartyIdleInSettlement
			party.CurrentSettlement = target
			party.CurrentSettlementID = target.ID
		} else {
			created = s.startSettlementBattle(ctx, party, target, created)
		}

		party.Position = target.Position
		party.RemoveOrder(order)
		return remaining, created
	}

	remaining, _ = s.moveTowardsWithTerrainSegmentation(party, target.Position, baseSpeed, remaining, terrains)
	return remaining, created
}

func (s *MovementService) moveToBattle(party *domain.Party, order *domain.PartyOrder, baseSpeed, remaining float64, terrains []domain.Terrain) (float64, *domain.Battle) {
	target := order.TargetedBattle
	if target == nil {
		s.log.Warn("指令目标战局不存在，丢弃",
			zap.Int64("partyId", party.ID), zap.String("orderType", order.Type.String()))
		party.RemoveOrder(order)
		return remaining, nil
	}

	if planar.Distance(party.Position, target.Position) <= s.interactionDistance {
		party.Status = domain.PartyAwaitingBattleJoinDecision
		party.Position = target.Position
		party.CurrentBattle = target
		party.CurrentBattleID = target.ID

		// 抵达后把随指令创建的参战申请草稿送进裁决队列
		for _, application := range target.FighterApplications {
			if application.PartyID == party.ID && application.Status == domain.ApplicationIntent {
				application.Status = domain.ApplicationPending
			}
		}

		party.RemoveOrder(order)
		return remaining, target
	}

	remaining, _ = s.moveTowardsWithTerrainSegmentation(party, target.Position, baseSpeed, remaining, terrains)
	return remaining, nil
}

func (s *MovementService) moveAlongWaypoints(party *domain.Party, order *domain.PartyOrder, baseSpeed, remaining float64, terrains []domain.Terrain) float64 {
	reached := 0
	for remaining > 0 && reached < len(order.Waypoints) {
		var ok bool
		remaining, ok = s.moveTowardsWithTerrainSegmentation(party, order.Waypoints[reached], baseSpeed, remaining, terrains)
		if !ok {
			// 没走到，时间用完了
			break
		}
		reached++
	}

	order.Waypoints = order.Waypoints[reached:]
	return remaining
}

// moveTowardsWithTerrainSegmentation 沿 party.Position -> target 的直线行军，
// 路径按地形边界切段，每段按 baseSpeed*地形系数 折算时间。
// 返回剩余时间与是否抵达目标。
func (s *MovementService) moveTowardsWithTerrainSegmentation(party *domain.Party, target orb.Point, baseSpeed, remaining float64, terrains []domain.Terrain) (float64, bool) {
	totalDistance := planar.Distance(party.Position, target)
	if totalDistance < 1e-10 {
		return remaining, true
	}

	segments := s.routing.BuildPathSegments(party.Position, target, terrains)

	current := party.Position
	for _, segment := range segments {
		segmentDistance := planar.Distance(current, segment.End)
		currentSpeed := baseSpeed * segment.TerrainMultiplier
		maxDistance := currentSpeed * remaining

		if segmentDistance <= maxDistance {
			remaining -= segmentDistance / currentSpeed
			current = segment.End
			party.Position = segment.End
			continue
		}

		if currentSpeed <= 0 {
			// 不可通行地形（Barrier/DeepWater）。当前不会绕行，队伍会停在边界上。
			s.log.Warn("行军撞上不可通行地形，停滞",
				zap.Int64("partyId", party.ID), zap.Float64("x", current[0]), zap.Float64("y", current[1]))
			return 0, false
		}

		// 时间不够走完这一段，走到哪算哪
		party.Position = movePointTowards(current, segment.End, maxDistance)
		return 0, false
	}

	return remaining, true
}

func (s *MovementService) startBattle(ctx context.Context, attacker, defender *domain.Party) *domain.Battle {
	battle := &domain.Battle{
		ID:        s.nextID(),
		Phase:     domain.BattlePreparation,
		Region:    defender.Region, // 战局分区跟防守方
		Position:  midPoint(attacker.Position, defender.Position),
		CreatedAt: s.clock.Now(),
	}
	battle.Fighters = []*domain.BattleFighter{
		{
			ID:        s.nextID(),
			BattleID:  battle.ID,
			Side:      domain.SideAttacker,
			Commander: true,
			PartyID:   attacker.ID,
			Party:     attacker,
		},
		{
			ID:        s.nextID(),
			BattleID:  battle.ID,
			Side:      domain.SideDefender,
			Commander: true,
			PartyID:   defender.ID,
			Party:     defender,
		},
	}

	attacker.Status = domain.PartyInBattle
	attacker.CurrentBattle = battle
	attacker.CurrentBattleID = battle.ID
	attacker.ClearOrders()

	defender.Status = domain.PartyInBattle
	defender.CurrentBattle = battle
	defender.CurrentBattleID = battle.ID
	defender.ClearOrders()

	s.activity.BattleCreated(ctx, battle, attacker.ID)
	s.log.WithContext(ctx).Info("队伍发起战斗",
		zap.Int64("attackerId", attacker.ID), zap.Int64("defenderId", defender.ID),
		zap.Int64("battleId", battle.ID))
	return battle
}

func (s *MovementService) startSettlementBattle(ctx context.Context, party *domain.Party, settlement *domain.Settlement, created []*domain.Battle) []*domain.Battle {
	inProgress, err := s.battles.HasActiveSettlementBattle(ctx, settlement.ID)
	if err != nil {
		s.log.Error("查询据点战局失败", zap.Int64("settlementId", settlement.ID), zap.Error(err))
		return created
	}
	if inProgress {
		// 已有人在攻打这个据点
		return created
	}

	battle := &domain.Battle{
		ID:        s.nextID(),
		Phase:     domain.BattlePreparation,
		Region:    settlement.Region,
		Position:  midPoint(party.Position, settlement.Position),
		CreatedAt: s.clock.Now(),
	}
	battle.Fighters = []*domain.BattleFighter{
		{
			ID:        s.nextID(),
			BattleID:  battle.ID,
			Side:      domain.SideAttacker,
			Commander: true,
			PartyID:   party.ID,
			Party:     party,
		},
		{
			ID:           s.nextID(),
			BattleID:     battle.ID,
			Side:         domain.SideDefender,
			Commander:    true,
			SettlementID: settlement.ID,
			Settlement:   settlement,
		},
	}

	party.Status = domain.PartyInBattle
	party.CurrentBattle = battle
	party.CurrentBattleID = battle.ID
	party.ClearOrders()

	s.activity.BattleCreated(ctx, battle, party.ID)
	s.log.WithContext(ctx).Info("队伍发起攻城",
		zap.Int64("partyId", party.ID), zap.Int64("settlementId", settlement.ID),
		zap.Int64("battleId", battle.ID))
	return append(created, battle)
}

func midPoint(a, b orb.Point) orb.Point {
	return orb.Point{(a[0] + b[0]) / 2, (a[1] + b[1]) / 2}
}

// movePointTowards 从 from 朝 to 前进 distance（不超过两点间距）。
func movePointTowards(from, to orb.Point, distance float64) orb.Point {
	total := planar.Distance(from, to)
	if total < 1e-10 || distance >= total {
		return to
	}
	ratio := distance / total
	return orb.Point{
		from[0] + (to[0]-from[0])*ratio,
		from[1] + (to[1]-from[1])*ratio,
	}
}
