package model

// model
type Settlement struct {
	Id           int64   `gorm:"column:id;type:bigint;comment:settlementId;primaryKey;not null;" json:"id"`      // settlementId
	Name         string  `gorm:"column:name;type:varchar(100);comment:据点名称;not null;" json:"name"`               // 据点名称
	Region       int8    `gorm:"column:region;type:tinyint;comment:所在分区;not null;default:0;" json:"region"`      // 所在分区
	PosX         float64 `gorm:"column:pos_x;type:double;comment:x坐标;not null;default:0;" json:"pos_x"`          // x坐标
	PosY         float64 `gorm:"column:pos_y;type:double;comment:y坐标;not null;default:0;" json:"pos_y"`          // y坐标
	Troops       float64 `gorm:"column:troops;type:double;comment:守军兵力;not null;default:0;" json:"troops"`       // 守军兵力
	OwnerPartyId int64   `gorm:"column:owner_party_id;type:bigint;comment:占领队伍;not null;default:0;" json:"owner_party_id"` // 占领队伍，0 表示无主
}

func (m *Settlement) TableName() string {
	return "strategus_settlement"
}
