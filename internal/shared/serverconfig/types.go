package serverconfig

type Config struct {
	MySQL      MySQLConfig      `yaml:"mysql" mapstructure:"mysql"`
	MongoDB    MongoDBConfig    `yaml:"mongodb" mapstructure:"mongodb"`
	TickServer TickServerConfig `yaml:"tickserver" mapstructure:"tickserver"`
	APIServer  APIServerConfig  `yaml:"apiserver" mapstructure:"apiserver"`
	GameServer GameServerConfig `yaml:"gameserver" mapstructure:"gameserver"`
	Log        LogConfig        `yaml:"log" mapstructure:"log"`
	Logic      LogicConfig      `yaml:"logic" mapstructure:"logic"`
	JWTSecret  string           `yaml:"jwt_secret" mapstructure:"jwt_secret"`
}

type MySQLConfig struct {
	Host     string `yaml:"host" mapstructure:"host"`
	Port     int    `yaml:"port" mapstructure:"port"`
	User     string `yaml:"user" mapstructure:"user"`
	Password string `yaml:"password" mapstructure:"password"`
	DBName   string `yaml:"dbname" mapstructure:"dbname"`
	Charset  string `yaml:"charset" mapstructure:"charset"`
	MaxIdle  int    `yaml:"max_idle" mapstructure:"max_idle"`
	MaxConn  int    `yaml:"max_conn" mapstructure:"max_conn"`
}

type MongoDBConfig struct {
	URI             string `yaml:"uri" mapstructure:"uri"`
	Database        string `yaml:"database" mapstructure:"database"`
	ConnectTimeoutS int    `yaml:"connect_timeout_s" mapstructure:"connect_timeout_s"`
}

// TickServerConfig 是世界 tick 服务的配置（含地图推送 websocket）。
type TickServerConfig struct {
	Host string `yaml:"host" mapstructure:"host"`
	Port int    `yaml:"port" mapstructure:"port"`
	// Storage 选择仓储实现：mysql / mongodb / memory
	Storage string `yaml:"storage" mapstructure:"storage"`
	// 各 tick 周期（秒）
	MoveTickS    int `yaml:"move_tick_s" mapstructure:"move_tick_s"`
	PhaseTickS   int `yaml:"phase_tick_s" mapstructure:"phase_tick_s"`
	RecruitTickS int `yaml:"recruit_tick_s" mapstructure:"recruit_tick_s"`
}

type APIServerConfig struct {
	Host       string `yaml:"host" mapstructure:"host"`
	Port       int    `yaml:"port" mapstructure:"port"`
	NeedSecret bool   `yaml:"need_secret" mapstructure:"need_secret"`
}

// GameServerConfig 指向实时战斗实例的管理端（Scheduled -> Live 交接）。
type GameServerConfig struct {
	LauncherURL string `yaml:"launcher_url" mapstructure:"launcher_url"`
	TimeoutS    int    `yaml:"timeout_s" mapstructure:"timeout_s"`
}

type LogConfig struct {
	Level      string `yaml:"level" mapstructure:"level"`
	FileDir    string `yaml:"file_dir" mapstructure:"file_dir"`
	MaxSize    int    `yaml:"max_size" mapstructure:"max_size"`
	MaxBackups int    `yaml:"max_backups" mapstructure:"max_backups"`
	MaxAge     int    `yaml:"max_age" mapstructure:"max_age"`
	Compress   bool   `yaml:"compress" mapstructure:"compress"`
	Dev        bool   `yaml:"dev" mapstructure:"dev"`
}

// LogicConfig 是大地图玩法数值（对应战局/行军的可调参数）。
type LogicConfig struct {
	// 视野与交互距离（地图单位）
	ViewDistance        float64 `yaml:"view_distance" mapstructure:"view_distance"`
	InteractionDistance float64 `yaml:"interaction_distance" mapstructure:"interaction_distance"`
	// 战局参战名额池（双方各一份）
	BattleSlots int `yaml:"battle_slots" mapstructure:"battle_slots"`
	// 战局阶段时长（小时）
	BattlePreparationHours float64 `yaml:"battle_preparation_hours" mapstructure:"battle_preparation_hours"`
	BattleHiringHours      float64 `yaml:"battle_hiring_hours" mapstructure:"battle_hiring_hours"`
	// 排期最小提前量（小时）
	BattleScheduleLeadHours float64 `yaml:"battle_schedule_lead_hours" mapstructure:"battle_schedule_lead_hours"`
	// 募兵速度与兵力上限
	TroopRecruitmentPerHour float64 `yaml:"troop_recruitment_per_hour" mapstructure:"troop_recruitment_per_hour"`
	MaxPartyTroops          float64 `yaml:"max_party_troops" mapstructure:"max_party_troops"`
	// 地图数据文件（memory 仓储的地形来源）
	MapData string `yaml:"map_data" mapstructure:"map_data"`
}

// Defaults 回填未配置的玩法数值。
func (c *LogicConfig) Defaults() {
	if c.ViewDistance <= 0 {
		c.ViewDistance = 50
	}
	if c.InteractionDistance <= 0 {
		c.InteractionDistance = 2
	}
	if c.BattleSlots <= 0 {
		c.BattleSlots = 100
	}
	if c.BattlePreparationHours <= 0 {
		c.BattlePreparationHours = 12
	}
	if c.BattleHiringHours <= 0 {
		c.BattleHiringHours = 12
	}
	if c.BattleScheduleLeadHours <= 0 {
		c.BattleScheduleLeadHours = 12
	}
	if c.TroopRecruitmentPerHour <= 0 {
		c.TroopRecruitmentPerHour = 5
	}
	if c.MaxPartyTroops <= 0 {
		c.MaxPartyTroops = 1000
	}
}
