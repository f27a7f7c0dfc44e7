package mapper

import (
	"encoding/json"

	"github.com/paulmach/orb"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/infra/persistence/model"
)

// BattleRows 是一场战局在各表里的行集合（加载/落库时的搬运单位）。
type BattleRows struct {
	Battle                *model.Battle
	Fighters              []*model.BattleFighter
	FighterApplications   []*model.BattleFighterApplication
	MercenaryApplications []*model.BattleMercenaryApplication
	Participants          []*model.BattleParticipant
	SideBriefings         []*model.BattleSideBriefing
}

// BattleRowsToDomain 只还原战局自身；Fighter 上的队伍/据点指针由仓储补齐。
func BattleRowsToDomain(rows BattleRows) *domain.Battle {
	m := rows.Battle
	b := &domain.Battle{
		ID:            m.Id,
		Phase:         domain.BattlePhase(m.Phase),
		Region:        domain.Region(m.Region),
		Position:      orb.Point{m.PosX, m.PosY},
		CreatedAt:     m.CreatedAt,
		ScheduledFor:  m.ScheduledFor,
		InstanceToken: m.InstanceToken,
	}
	for _, f := range rows.Fighters {
		b.Fighters = append(b.Fighters, &domain.BattleFighter{
			ID:               f.Id,
			BattleID:         f.BattleId,
			Side:             domain.BattleSide(f.Side),
			Commander:        f.Commander != 0,
			PartyID:          f.PartyId,
			SettlementID:     f.SettlementId,
			ParticipantSlots: f.ParticipantSlots,
		})
	}
	for _, a := range rows.FighterApplications {
		b.FighterApplications = append(b.FighterApplications, &domain.BattleFighterApplication{
			ID:       a.Id,
			BattleID: a.BattleId,
			PartyID:  a.PartyId,
			Side:     domain.BattleSide(a.Side),
			Status:   domain.ApplicationStatus(a.Status),
		})
	}
	for _, a := range rows.MercenaryApplications {
		b.MercenaryApplications = append(b.MercenaryApplications, &domain.BattleMercenaryApplication{
			ID:          a.Id,
			BattleID:    a.BattleId,
			CharacterID: a.CharacterId,
			UserID:      a.UserId,
			Side:        domain.BattleSide(a.Side),
			Wage:        a.Wage,
			Note:        a.Note,
			Status:      domain.ApplicationStatus(a.Status),
		})
	}
	for _, p := range rows.Participants {
		b.Participants = append(b.Participants, &domain.BattleParticipant{
			ID:                     p.Id,
			BattleID:               p.BattleId,
			Side:                   domain.BattleSide(p.Side),
			Type:                   domain.BattleParticipantType(p.Type),
			CharacterID:            p.CharacterId,
			CaptainFighterID:       p.CaptainFighterId,
			MercenaryApplicationID: p.MercenaryApplicationId,
		})
	}
	for _, s := range rows.SideBriefings {
		b.SideBriefings = append(b.SideBriefings, &domain.BattleSideBriefing{
			ID:       s.Id,
			BattleID: s.BattleId,
			Side:     domain.BattleSide(s.Side),
			Note:     s.Note,
		})
	}
	return b
}

func BattleDomainToRows(b *domain.Battle) BattleRows {
	rows := BattleRows{
		Battle: &model.Battle{
			Id:            b.ID,
			Phase:         int8(b.Phase),
			Region:        int8(b.Region),
			PosX:          b.Position[0],
			PosY:          b.Position[1],
			CreatedAt:     b.CreatedAt,
			ScheduledFor:  b.ScheduledFor,
			InstanceToken: b.InstanceToken,
		},
	}
	for _, f := range b.Fighters {
		commander := int8(0)
		if f.Commander {
			commander = 1
		}
		rows.Fighters = append(rows.Fighters, &model.BattleFighter{
			Id:               f.ID,
			BattleId:         f.BattleID,
			Side:             int8(f.Side),
			Commander:        commander,
			PartyId:          f.PartyID,
			SettlementId:     f.SettlementID,
			ParticipantSlots: f.ParticipantSlots,
		})
	}
	for _, a := range b.FighterApplications {
		rows.FighterApplications = append(rows.FighterApplications, &model.BattleFighterApplication{
			Id:       a.ID,
			BattleId: a.BattleID,
			PartyId:  a.PartyID,
			Side:     int8(a.Side),
			Status:   int8(a.Status),
		})
	}
	for _, a := range b.MercenaryApplications {
		rows.MercenaryApplications = append(rows.MercenaryApplications, &model.BattleMercenaryApplication{
			Id:          a.ID,
			BattleId:    a.BattleID,
			CharacterId: a.CharacterID,
			UserId:      a.UserID,
			Side:        int8(a.Side),
			Wage:        a.Wage,
			Note:        a.Note,
			Status:      int8(a.Status),
		})
	}
	for _, p := range b.Participants {
		rows.Participants = append(rows.Participants, &model.BattleParticipant{
			Id:                     p.ID,
			BattleId:               p.BattleID,
			Side:                   int8(p.Side),
			Type:                   int8(p.Type),
			CharacterId:            p.CharacterID,
			CaptainFighterId:       p.CaptainFighterID,
			MercenaryApplicationId: p.MercenaryApplicationID,
		})
	}
	for _, s := range b.SideBriefings {
		rows.SideBriefings = append(rows.SideBriefings, &model.BattleSideBriefing{
			Id:       s.ID,
			BattleId: s.BattleID,
			Side:     int8(s.Side),
			Note:     s.Note,
		})
	}
	return rows
}

// SettlementModelToDomain Owner 指针由仓储按需补齐。
func SettlementModelToDomain(m *model.Settlement) *domain.Settlement {
	return &domain.Settlement{
		ID:           m.Id,
		Name:         m.Name,
		Region:       domain.Region(m.Region),
		Position:     orb.Point{m.PosX, m.PosY},
		Troops:       m.Troops,
		OwnerPartyID: m.OwnerPartyId,
	}
}

func SettlementDomainToModel(s *domain.Settlement) *model.Settlement {
	return &model.Settlement{
		Id:           s.ID,
		Name:         s.Name,
		Region:       int8(s.Region),
		PosX:         s.Position[0],
		PosY:         s.Position[1],
		Troops:       s.Troops,
		OwnerPartyId: s.OwnerPartyID,
	}
}

// OfferModelToDomain 双方队伍指针由仓储补齐。
func OfferModelToDomain(m *model.PartyTransferOffer) *domain.PartyTransferOffer {
	o := &domain.PartyTransferOffer{
		ID:            m.Id,
		PartyID:       m.PartyId,
		TargetPartyID: m.TargetPartyId,
		Status:        domain.PartyTransferOfferStatus(m.Status),
		Gold:          m.Gold,
		Troops:        m.Troops,
	}
	if m.Items != "" {
		_ = json.Unmarshal([]byte(m.Items), &o.Items)
	}
	return o
}

func OfferDomainToModel(o *domain.PartyTransferOffer) *model.PartyTransferOffer {
	m := &model.PartyTransferOffer{
		Id:            o.ID,
		PartyId:       o.PartyID,
		TargetPartyId: o.TargetPartyID,
		Status:        int8(o.Status),
		Gold:          o.Gold,
		Troops:        o.Troops,
	}
	if len(o.Items) > 0 {
		if raw, err := json.Marshal(o.Items); err == nil {
			m.Items = string(raw)
		}
	}
	return m
}
