package mysql

import (
	"context"

	"gorm.io/gorm"

	"Strategus/internal/strategus/domain"
	"Strategus/internal/strategus/infra/persistence/mapper"
	"Strategus/internal/strategus/infra/persistence/model"
)

// loadPartiesByIDs 装载队伍及其指令队列（不解析指令目标）。
func loadPartiesByIDs(ctx context.Context, db *gorm.DB, ids []int64) (map[int64]*domain.Party, error) {
	out := make(map[int64]*domain.Party, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var partyRows []*model.Party
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&partyRows).Error; err != nil {
		return nil, err
	}
	var orderRows []*model.PartyOrder
	if err := db.WithContext(ctx).Where("party_id IN ?", ids).
		Order("party_id, order_index").Find(&orderRows).Error; err != nil {
		return nil, err
	}

	ordersByParty := make(map[int64][]*model.PartyOrder, len(partyRows))
	for _, o := range orderRows {
		ordersByParty[o.PartyId] = append(ordersByParty[o.PartyId], o)
	}
	for _, row := range partyRows {
		out[row.Id] = mapper.PartyModelToDomain(row, ordersByParty[row.Id])
	}
	return out, nil
}

// loadBattlesByIDs 装载战局聚合并补齐参战方的队伍/据点指针（含据点占领方）。
func loadBattlesByIDs(ctx context.Context, db *gorm.DB, ids []int64) (map[int64]*domain.Battle, error) {
	out := make(map[int64]*domain.Battle, len(ids))
	if len(ids) == 0 {
		return out, nil
	}

	var battleRows []*model.Battle
	if err := db.WithContext(ctx).Where("id IN ?", ids).Find(&battleRows).Error; err != nil {
		return nil, err
	}
	var fighterRows []*model.BattleFighter
	if err := db.WithContext(ctx).Where("battle_id IN ?", ids).Find(&fighterRows).Error; err != nil {
		return nil, err
	}
	var fighterAppRows []*model.BattleFighterApplication
	if err := db.WithContext(ctx).Where("battle_id IN ?", ids).Find(&fighterAppRows).Error; err != nil {
		return nil, err
	}
	var mercAppRows []*model.BattleMercenaryApplication
	if err := db.WithContext(ctx).Where("battle_id IN ?", ids).Find(&mercAppRows).Error; err != nil {
		return nil, err
	}
	var participantRows []*model.BattleParticipant
	if err := db.WithContext(ctx).Where("battle_id IN ?", ids).Find(&participantRows).Error; err != nil {
		return nil, err
	}
	var briefingRows []*model.BattleSideBriefing
	if err := db.WithContext(ctx).Where("battle_id IN ?", ids).Find(&briefingRows).Error; err != nil {
		return nil, err
	}

	rowsByBattle := make(map[int64]mapper.BattleRows, len(battleRows))
	for _, b := range battleRows {
		rowsByBattle[b.Id] = mapper.BattleRows{Battle: b}
	}
	for _, f := range fighterRows {
		rows := rowsByBattle[f.BattleId]
		rows.Fighters = append(rows.Fighters, f)
		rowsByBattle[f.BattleId] = rows
	}
	for _, a := range fighterAppRows {
		rows := rowsByBattle[a.BattleId]
		rows.FighterApplications = append(rows.FighterApplications, a)
		rowsByBattle[a.BattleId] = rows
	}
	for _, a := range mercAppRows {
		rows := rowsByBattle[a.BattleId]
		rows.MercenaryApplications = append(rows.MercenaryApplications, a)
		rowsByBattle[a.BattleId] = rows
	}
	for _, p := range participantRows {
		rows := rowsByBattle[p.BattleId]
		rows.Participants = append(rows.Participants, p)
		rowsByBattle[p.BattleId] = rows
	}
	for _, s := range briefingRows {
		rows := rowsByBattle[s.BattleId]
		rows.SideBriefings = append(rows.SideBriefings, s)
		rowsByBattle[s.BattleId] = rows
	}
	for id, rows := range rowsByBattle {
		out[id] = mapper.BattleRowsToDomain(rows)
	}

	if err := hydrateBattleParties(ctx, db, out); err != nil {
		return nil, err
	}
	return out, nil
}

func hydrateBattleParties(ctx context.Context, db *gorm.DB, battles map[int64]*domain.Battle) error {
	partyIDs := make(map[int64]bool)
	settlementIDs := make(map[int64]bool)
	for _, b := range battles {
		for _, f := range b.Fighters {
			if f.PartyID != 0 {
				partyIDs[f.PartyID] = true
			}
			if f.SettlementID != 0 {
				settlementIDs[f.SettlementID] = true
			}
		}
		for _, a := range b.FighterApplications {
			if a.PartyID != 0 {
				partyIDs[a.PartyID] = true
			}
		}
	}

	settlements := make(map[int64]*domain.Settlement, len(settlementIDs))
	if len(settlementIDs) > 0 {
		var rows []*model.Settlement
		if err := db.WithContext(ctx).Where("id IN ?", keysOf(settlementIDs)).Find(&rows).Error; err != nil {
			return err
		}
		for _, row := range rows {
			settlements[row.Id] = mapper.SettlementModelToDomain(row)
			if row.OwnerPartyId != 0 {
				partyIDs[row.OwnerPartyId] = true
			}
		}
	}

	parties, err := loadPartiesByIDs(ctx, db, keysOf(partyIDs))
	if err != nil {
		return err
	}

	for _, s := range settlements {
		if s.OwnerPartyID != 0 {
			s.Owner = parties[s.OwnerPartyID]
		}
	}
	for _, b := range battles {
		for _, f := range b.Fighters {
			f.Party = parties[f.PartyID]
			f.Settlement = settlements[f.SettlementID]
		}
		for _, a := range b.FighterApplications {
			a.Party = parties[a.PartyID]
		}
	}
	return nil
}

func keysOf(set map[int64]bool) []int64 {
	ids := make([]int64, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}
