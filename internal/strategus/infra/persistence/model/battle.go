package model

import "time"

// model
type Battle struct {
	Id            int64      `gorm:"column:id;type:bigint;comment:battleId;primaryKey;not null;" json:"id"`                  // battleId
	Phase         int8       `gorm:"column:phase;type:tinyint;comment:阶段;not null;default:0;index;" json:"phase"`            // 阶段
	Region        int8       `gorm:"column:region;type:tinyint;comment:分区;not null;default:0;" json:"region"`                // 分区
	PosX          float64    `gorm:"column:pos_x;type:double;comment:x坐标;not null;default:0;" json:"pos_x"`                  // x坐标
	PosY          float64    `gorm:"column:pos_y;type:double;comment:y坐标;not null;default:0;" json:"pos_y"`                  // y坐标
	CreatedAt     time.Time  `gorm:"column:created_at;type:timestamp;not null;default:CURRENT_TIMESTAMP;" json:"created_at"`
	ScheduledFor  *time.Time `gorm:"column:scheduled_for;type:timestamp;comment:开战时刻;default:NULL;" json:"scheduled_for"`    // 开战时刻
	InstanceToken string     `gorm:"column:instance_token;type:varchar(100);comment:占用实例;" json:"instance_token"`            // 占用实例
}

func (m *Battle) TableName() string {
	return "strategus_battle"
}

// model
type BattleFighter struct {
	Id               int64 `gorm:"column:id;type:bigint;comment:fighterId;primaryKey;not null;" json:"id"`                          // fighterId
	BattleId         int64 `gorm:"column:battle_id;type:bigint;comment:所属战局;not null;index;" json:"battle_id"`                      // 所属战局
	Side             int8  `gorm:"column:side;type:tinyint;comment:攻守方;not null;default:0;" json:"side"`                            // 攻守方
	Commander        int8  `gorm:"column:commander;type:tinyint;comment:是否指挥官;not null;default:0;" json:"commander"`                // 是否指挥官
	PartyId          int64 `gorm:"column:party_id;type:bigint;comment:队伍;not null;default:0;" json:"party_id"`                      // 队伍
	SettlementId     int64 `gorm:"column:settlement_id;type:bigint;comment:据点;not null;default:0;" json:"settlement_id"`            // 据点
	ParticipantSlots int   `gorm:"column:participant_slots;type:int;comment:可带参战者数;not null;default:0;" json:"participant_slots"`   // 可带参战者数
}

func (m *BattleFighter) TableName() string {
	return "strategus_battle_fighter"
}

// model
type BattleFighterApplication struct {
	Id       int64 `gorm:"column:id;type:bigint;comment:applicationId;primaryKey;not null;" json:"id"` // applicationId
	BattleId int64 `gorm:"column:battle_id;type:bigint;comment:所属战局;not null;index;" json:"battle_id"` // 所属战局
	PartyId  int64 `gorm:"column:party_id;type:bigint;comment:申请队伍;not null;index;" json:"party_id"`   // 申请队伍
	Side     int8  `gorm:"column:side;type:tinyint;comment:申请加入方;not null;default:0;" json:"side"`     // 申请加入方
	Status   int8  `gorm:"column:status;type:tinyint;comment:申请状态;not null;default:0;" json:"status"`  // 申请状态
}

func (m *BattleFighterApplication) TableName() string {
	return "strategus_battle_fighter_application"
}

// model
type BattleMercenaryApplication struct {
	Id          int64  `gorm:"column:id;type:bigint;comment:applicationId;primaryKey;not null;" json:"id"`  // applicationId
	BattleId    int64  `gorm:"column:battle_id;type:bigint;comment:所属战局;not null;index;" json:"battle_id"`  // 所属战局
	CharacterId int64  `gorm:"column:character_id;type:bigint;comment:申请角色;not null;" json:"character_id"`  // 申请角色
	UserId      int64  `gorm:"column:user_id;type:bigint;comment:所属用户;not null;index;" json:"user_id"`      // 所属用户
	Side        int8   `gorm:"column:side;type:tinyint;comment:申请加入方;not null;default:0;" json:"side"`      // 申请加入方
	Wage        int    `gorm:"column:wage;type:int;comment:期望佣金;not null;default:0;" json:"wage"`           // 期望佣金
	Note        string `gorm:"column:note;type:varchar(500);comment:附言;" json:"note"`                       // 附言
	Status      int8   `gorm:"column:status;type:tinyint;comment:申请状态;not null;default:0;" json:"status"`   // 申请状态
}

func (m *BattleMercenaryApplication) TableName() string {
	return "strategus_battle_mercenary_application"
}

// model
type BattleParticipant struct {
	Id                     int64 `gorm:"column:id;type:bigint;comment:participantId;primaryKey;not null;" json:"id"`                              // participantId
	BattleId               int64 `gorm:"column:battle_id;type:bigint;comment:所属战局;not null;index;" json:"battle_id"`                              // 所属战局
	Side                   int8  `gorm:"column:side;type:tinyint;comment:攻守方;not null;default:0;" json:"side"`                                    // 攻守方
	Type                   int8  `gorm:"column:type;type:tinyint;comment:来源;not null;default:0;" json:"type"`                                     // 来源
	CharacterId            int64 `gorm:"column:character_id;type:bigint;comment:角色;not null;default:0;" json:"character_id"`                      // 角色
	CaptainFighterId       int64 `gorm:"column:captain_fighter_id;type:bigint;comment:所属参战方;not null;default:0;" json:"captain_fighter_id"`       // 所属参战方
	MercenaryApplicationId int64 `gorm:"column:mercenary_application_id;type:bigint;comment:来源申请;not null;default:0;" json:"mercenary_application_id"` // 来源申请
}

func (m *BattleParticipant) TableName() string {
	return "strategus_battle_participant"
}

// model
type BattleSideBriefing struct {
	Id       int64  `gorm:"column:id;type:bigint;comment:briefingId;primaryKey;not null;" json:"id"`    // briefingId
	BattleId int64  `gorm:"column:battle_id;type:bigint;comment:所属战局;not null;index;" json:"battle_id"` // 所属战局
	Side     int8   `gorm:"column:side;type:tinyint;comment:攻守方;not null;default:0;" json:"side"`       // 攻守方
	Note     string `gorm:"column:note;type:varchar(1000);comment:战前说明;" json:"note"`                   // 战前说明
}

func (m *BattleSideBriefing) TableName() string {
	return "strategus_battle_side_briefing"
}
