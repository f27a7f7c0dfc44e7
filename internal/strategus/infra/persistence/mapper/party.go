package mapper

import (
	"encoding/json"

	"github.com/paulmach/orb"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/infra/persistence/model"
)

// 物品/时段/路径点这类小而杂的子结构走 JSON 列，避免为它们各开一张表。

type partyItemJSON struct {
	ItemID        string `json:"itemId"`
	Count         int    `json:"count"`
	MountHitPoint *int   `json:"mountHp,omitempty"`
}

func PartyModelToDomain(m *model.Party, orders []*model.PartyOrder) *domain.Party {
	p := &domain.Party{
		ID:                  m.Id,
		UserID:              m.UserId,
		Name:                m.Name,
		Region:              domain.Region(m.Region),
		Gold:                m.Gold,
		Troops:              m.Troops,
		Position:            orb.Point{m.PosX, m.PosY},
		Status:              domain.PartyStatus(m.Status),
		CurrentPartyID:      m.CurrentPartyId,
		CurrentSettlementID: m.CurrentSettlementId,
		CurrentBattleID:     m.CurrentBattleId,
	}
	p.Items = itemsFromJSON(m.Items)
	if m.Windows != "" {
		_ = json.Unmarshal([]byte(m.Windows), &p.VulnerabilityWindows)
	}
	for _, o := range orders {
		p.Orders = append(p.Orders, OrderModelToDomain(o))
	}
	return p
}

func PartyDomainToModel(p *domain.Party) *model.Party {
	m := &model.Party{
		Id:                  p.ID,
		UserId:              p.UserID,
		Name:                p.Name,
		Region:              int8(p.Region),
		Gold:                p.Gold,
		Troops:              p.Troops,
		PosX:                p.Position[0],
		PosY:                p.Position[1],
		Status:              int8(p.Status),
		CurrentPartyId:      p.CurrentPartyID,
		CurrentSettlementId: p.CurrentSettlementID,
		CurrentBattleId:     p.CurrentBattleID,
	}
	m.Items = itemsToJSON(p.Items)
	if len(p.VulnerabilityWindows) > 0 {
		if raw, err := json.Marshal(p.VulnerabilityWindows); err == nil {
			m.Windows = string(raw)
		}
	}
	return m
}

func OrderModelToDomain(m *model.PartyOrder) *domain.PartyOrder {
	o := &domain.PartyOrder{
		ID:                   m.Id,
		PartyID:              m.PartyId,
		Type:                 domain.PartyOrderType(m.Type),
		OrderIndex:           m.OrderIndex,
		TargetedPartyID:      m.TargetedPartyId,
		TargetedSettlementID: m.TargetedSettlementId,
		TargetedBattleID:     m.TargetedBattleId,
	}
	if m.Waypoints != "" {
		_ = json.Unmarshal([]byte(m.Waypoints), &o.Waypoints)
	}
	return o
}

func OrderDomainToModel(o *domain.PartyOrder) *model.PartyOrder {
	m := &model.PartyOrder{
		Id:                   o.ID,
		PartyId:              o.PartyID,
		Type:                 int8(o.Type),
		OrderIndex:           o.OrderIndex,
		TargetedPartyId:      o.TargetedPartyID,
		TargetedSettlementId: o.TargetedSettlementID,
		TargetedBattleId:     o.TargetedBattleID,
	}
	if len(o.Waypoints) > 0 {
		if raw, err := json.Marshal(o.Waypoints); err == nil {
			m.Waypoints = string(raw)
		}
	}
	return m
}

func itemsFromJSON(raw string) []domain.PartyItem {
	if raw == "" {
		return nil
	}
	var rows []partyItemJSON
	if err := json.Unmarshal([]byte(raw), &rows); err != nil {
		return nil
	}
	items := make([]domain.PartyItem, 0, len(rows))
	for _, r := range rows {
		item := domain.PartyItem{ItemID: r.ItemID, Count: r.Count}
		if r.MountHitPoint != nil {
			item.Mount = &domain.Mount{HitPoints: *r.MountHitPoint}
		}
		items = append(items, item)
	}
	return items
}

func itemsToJSON(items []domain.PartyItem) string {
	if len(items) == 0 {
		return ""
	}
	rows := make([]partyItemJSON, 0, len(items))
	for _, item := range items {
		r := partyItemJSON{ItemID: item.ItemID, Count: item.Count}
		if item.Mount != nil {
			hp := item.Mount.HitPoints
			r.MountHitPoint = &hp
		}
		rows = append(rows, r)
	}
	raw, err := json.Marshal(rows)
	if err != nil {
		return ""
	}
	return string(raw)
}
