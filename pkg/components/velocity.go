package components

// VelocityComponent 速度（像素/秒）
type VelocityComponent struct {
	VX float64
	VY float64
}

// AccelerationComponent 恒定加速度（像素/秒²）
// 雨滴使用：重力 + 恒定横向力
type AccelerationComponent struct {
	AX float64
	AY float64
}
