package domain

// VulnerabilityWindow 表示某分区内允许被攻击的小时集合（0-23）。
type VulnerabilityWindow struct {
	Region Region `json:"region"`
	Hours  []int  `json:"hours"`
}

type VulnerabilityWindows []VulnerabilityWindow

// Get 返回指定分区的可攻击小时；未配置时返回 nil（排期器会跳过并告警）。
func (ws VulnerabilityWindows) Get(region Region) []int {
	for _, w := range ws {
		if w.Region == region {
			return w.Hours
		}
	}
	return nil
}
