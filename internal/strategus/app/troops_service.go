package app

import (
	"context"
	"math"
	"time"

	"Strategus/internal/strategus/domain"
	"Strategus/modules/kit/logx"
)

// TroopsService 是募兵 tick：驻扎募兵的队伍按小时速率增长兵力，封顶。
type TroopsService struct {
	parties PartyRepo
	log     logx.Logger

	recruitsPerHour float64
	maxTroops       float64
}

func NewTroopsService(parties PartyRepo, log logx.Logger, recruitsPerHour, maxTroops float64) *TroopsService {
	return &TroopsService{
		parties:         parties,
		log:             log,
		recruitsPerHour: recruitsPerHour,
		maxTroops:       maxTroops,
	}
}

func (s *TroopsService) GrowTroops(ctx context.Context, delta time.Duration) error {
	recruits := delta.Hours() * s.recruitsPerHour

	parties, err := s.parties.ListByStatus(ctx, domain.PartyRecruitingInSettlement)
	if err != nil {
		return ErrUnavailable.WithCause(err)
	}

	for _, party := range parties {
		if err := ctx.Err(); err != nil {
			return err
		}
		party.Troops = math.Min(party.Troops+recruits, s.maxTroops)
	}

	if err := s.parties.Save(ctx, parties...); err != nil {
		return ErrUnavailable.WithCause(err)
	}
	return nil
}
