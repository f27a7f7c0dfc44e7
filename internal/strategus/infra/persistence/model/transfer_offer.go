package model

// model
type PartyTransferOffer struct {
	Id            int64   `gorm:"column:id;type:bigint;comment:offerId;primaryKey;not null;" json:"id"`                    // offerId
	PartyId       int64   `gorm:"column:party_id;type:bigint;comment:发起队伍;not null;index;" json:"party_id"`                // 发起队伍
	TargetPartyId int64   `gorm:"column:target_party_id;type:bigint;comment:目标队伍;not null;index;" json:"target_party_id"`  // 目标队伍
	Status        int8    `gorm:"column:status;type:tinyint;comment:报价状态;not null;default:0;" json:"status"`               // 报价状态
	Gold          int     `gorm:"column:gold;type:int;comment:报价金币;not null;default:0;" json:"gold"`                       // 报价金币
	Troops        float64 `gorm:"column:troops;type:double;comment:报价兵力;not null;default:0;" json:"troops"`                // 报价兵力
	Items         string  `gorm:"column:items;type:text;comment:报价物品(JSON);" json:"items"`                                 // 报价物品(JSON)
}

func (m *PartyTransferOffer) TableName() string {
	return "strategus_transfer_offer"
}
