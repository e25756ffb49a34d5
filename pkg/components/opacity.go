package components

// OpacityComponent 节点不透明度
// 没有该组件的节点视为完全不透明
type OpacityComponent struct {
	Alpha float64 // 0.0 = 完全透明, 1.0 = 完全不透明
}
