package components

// PositionComponent 节点位置（相对父节点，屏幕坐标系，Y 轴向下）
// 对于精灵和形状，位置是图形中心点
type PositionComponent struct {
	X float64
	Y float64
}

// ScaleComponent 存储实体级别的缩放因子
//
// 最终绘制尺寸 = SpriteComponent.Width/Height * ScaleX/ScaleY
// 缩放不会传递给子节点
type ScaleComponent struct {
	// ScaleX X轴缩放因子（1.0 = 原始大小，0.5 = 50%，2.0 = 200%）
	ScaleX float64

	// ScaleY Y轴缩放因子（1.0 = 原始大小，0.5 = 50%，2.0 = 200%）
	ScaleY float64
}
