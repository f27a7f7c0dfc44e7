package model

// model
type Party struct {
	Id                  int64   `gorm:"column:id;type:bigint;comment:partyId;primaryKey;not null;" json:"id"`                                     // partyId
	UserId              int64   `gorm:"column:user_id;type:bigint;comment:所属用户;not null;index;" json:"user_id"`                                   // 所属用户
	Name                string  `gorm:"column:name;type:varchar(100);comment:队伍名称;not null;" json:"name"`                                         // 队伍名称
	Region              int8    `gorm:"column:region;type:tinyint;comment:所在分区;not null;default:0;" json:"region"`                                // 所在分区
	Gold                int     `gorm:"column:gold;type:int;comment:金币;not null;default:0;" json:"gold"`                                          // 金币
	Troops              float64 `gorm:"column:troops;type:double;comment:兵力;not null;default:0;" json:"troops"`                                   // 兵力
	PosX                float64 `gorm:"column:pos_x;type:double;comment:x坐标;not null;default:0;" json:"pos_x"`                                    // x坐标
	PosY                float64 `gorm:"column:pos_y;type:double;comment:y坐标;not null;default:0;" json:"pos_y"`                                    // y坐标
	Status              int8    `gorm:"column:status;type:tinyint;comment:队伍状态;not null;default:0;index;" json:"status"`                          // 队伍状态
	Items               string  `gorm:"column:items;type:text;comment:携带物品(JSON);" json:"items"`                                                  // 携带物品(JSON)
	Windows             string  `gorm:"column:windows;type:text;comment:可攻击时段(JSON);" json:"windows"`                                             // 可攻击时段(JSON)
	CurrentPartyId      int64   `gorm:"column:current_party_id;type:bigint;comment:交互中的队伍;not null;default:0;" json:"current_party_id"`           // 交互中的队伍
	CurrentSettlementId int64   `gorm:"column:current_settlement_id;type:bigint;comment:交互中的据点;not null;default:0;" json:"current_settlement_id"` // 交互中的据点
	CurrentBattleId     int64   `gorm:"column:current_battle_id;type:bigint;comment:交互中的战局;not null;default:0;" json:"current_battle_id"`         // 交互中的战局
}

func (m *Party) TableName() string {
	return "strategus_party"
}

// model
type PartyOrder struct {
	Id                   int64  `gorm:"column:id;type:bigint;comment:orderId;primaryKey;not null;" json:"id"`                                         // orderId
	PartyId              int64  `gorm:"column:party_id;type:bigint;comment:所属队伍;not null;index;" json:"party_id"`                                     // 所属队伍
	Type                 int8   `gorm:"column:type;type:tinyint;comment:指令类型;not null;default:0;" json:"type"`                                        // 指令类型
	OrderIndex           int    `gorm:"column:order_index;type:int;comment:队列序号;not null;default:0;" json:"order_index"`                              // 队列序号
	Waypoints            string `gorm:"column:waypoints;type:text;comment:路径点(JSON);" json:"waypoints"`                                               // 路径点(JSON)
	TargetedPartyId      int64  `gorm:"column:targeted_party_id;type:bigint;comment:目标队伍;not null;default:0;" json:"targeted_party_id"`               // 目标队伍
	TargetedSettlementId int64  `gorm:"column:targeted_settlement_id;type:bigint;comment:目标据点;not null;default:0;" json:"targeted_settlement_id"`     // 目标据点
	TargetedBattleId     int64  `gorm:"column:targeted_battle_id;type:bigint;comment:目标战局;not null;default:0;" json:"targeted_battle_id"`             // 目标战局
}

func (m *PartyOrder) TableName() string {
	return "strategus_party_order"
}
