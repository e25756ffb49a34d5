package components

// LifetimeComponent 管理实体的生命周期
// 用于自动清理存在时间超过上限的实体(如雨滴)
type LifetimeComponent struct {
	MaxLifetime     float64 // 最大生命周期(秒)
	CurrentLifetime float64 // 当前已存在时间(秒)
	IsExpired       bool    // 是否已过期

	// CullBelowY 实体世界坐标 Y 超过此值时提前清理（0 表示不检查）
	// 雨滴落出屏幕后无需等到生命周期结束
	CullBelowY float64
}
