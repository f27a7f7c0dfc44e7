package service

import (
	"math"

	"Strategus/internal/strategus/domain"
)

// DistributionModel 把战局参战名额按兵力占比分给各参战方。
type DistributionModel struct{}

func NewDistributionModel() *DistributionModel {
	return &DistributionModel{}
}

// DistributeParticipants 为每个 BattleFighter 写入 ParticipantSlots。
// battleSlots 是每一方的名额池。算法（含取整顺序）保持与既有数值兼容：
// 先按份额向下取整并扣掉参战方自身一个名额，再把取整剩下的名额按遍历顺序逐个发放。
func (DistributionModel) DistributeParticipants(fighters []*domain.BattleFighter, battleSlots int) {
	bySide := map[domain.BattleSide][]*domain.BattleFighter{}
	for _, f := range fighters {
		bySide[f.Side] = append(bySide[f.Side], f)
	}

	for _, teamFighters := range bySide {
		teamTotalTroops := 0
		for _, f := range teamFighters {
			teamTotalTroops += int(f.Troops())
		}
		if teamTotalTroops == 0 {
			// todo 纯据点方（守军兵力未建模）没有可分配基数
			continue
		}

		remainingSlots := battleSlots
		for _, f := range teamFighters {
			// 队伍兵力在全军中的份额，同比例分参战名额
			fighterFactor := math.Floor(f.Troops()) / float64(teamTotalTroops)
			slotsForFighter := int(fighterFactor * float64(battleSlots))
			f.ParticipantSlots = slotsForFighter - 1 // 扣掉参战方自己占的名额
			remainingSlots -= slotsForFighter
		}

		for _, f := range teamFighters {
			if remainingSlots == 0 {
				break
			}
			f.ParticipantSlots += 1
			remainingSlots -= 1
		}
	}
}
