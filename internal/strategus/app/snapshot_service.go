package app

import (
	"context"
	"errors"

	"Strategus/internal/strategus/app/model"
	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/service"
)

// 大地图上对其他玩家可见的队伍状态。驻扎、备战中的队伍藏起来。
var visibleStatuses = map[domain.PartyStatus]bool{
	domain.PartyIdle:                       true,
	domain.PartyAwaitingBattleJoinDecision: true,
	domain.PartyAwaitingPartyOfferDecision: true,
}

// SnapshotService 给客户端出某支队伍视角下的大地图快照。
type SnapshotService struct {
	parties     PartyRepo
	settlements SettlementRepo
	battles     BattleRepo
	speed       *service.SpeedModel

	viewDistance float64
}

func NewSnapshotService(parties PartyRepo, settlements SettlementRepo, battles BattleRepo, speed *service.SpeedModel, viewDistance float64) *SnapshotService {
	return &SnapshotService{
		parties:      parties,
		settlements:  settlements,
		battles:      battles,
		speed:        speed,
		viewDistance: viewDistance,
	}
}

func (s *SnapshotService) GetUpdate(ctx context.Context, partyID int64) (*model.StrategusUpdate, error) {
	party, err := s.parties.Get(ctx, partyID)
	if err != nil {
		if errors.Is(err, domain.ErrPartyNotFound) {
			return nil, err
		}
		return nil, ErrUnavailable.WithCause(err)
	}

	nearby, err := s.parties.ListVisible(ctx, party.Position, s.viewDistance)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	visibleParties := make([]*domain.Party, 0, len(nearby))
	for _, p := range nearby {
		if p.ID != party.ID && visibleStatuses[p.Status] {
			visibleParties = append(visibleParties, p)
		}
	}

	settlements, err := s.settlements.ListVisible(ctx, party.Position, s.viewDistance)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}

	nearbyBattles, err := s.battles.ListVisible(ctx, party.Position, s.viewDistance)
	if err != nil {
		return nil, ErrUnavailable.WithCause(err)
	}
	visibleBattles := make([]*domain.Battle, 0, len(nearbyBattles))
	for _, b := range nearbyBattles {
		if b.Phase != domain.BattleEnd {
			visibleBattles = append(visibleBattles, b)
		}
	}

	speed := s.speed.ComputePartySpeed(party, nil)

	return &model.StrategusUpdate{
		Party: party,
		Speed: model.PartySpeedView{
			BaseSpeed:      speed.BaseSpeed,
			TroopInfluence: speed.TroopInfluence,
			MountInfluence: speed.MountInfluence,
			FinalSpeed:     speed.BaseSpeedWithoutTerrain,
		},
		VisibleParties:     visibleParties,
		VisibleSettlements: settlements,
		VisibleBattles:     visibleBattles,
	}, nil
}
