package components

import "github.com/decker502/redsun/pkg/ecs"

// NodeComponent 把实体挂到节点树上
//
// 场景的所有可见元素组成一棵树：根节点 → 时刻视觉根节点 → 背景/前景/特效。
// 子节点的位置相对父节点，不透明度会与父节点相乘（淡入淡出整个子树）。
// 删除父节点时整棵子树一起删除，挂在这些实体上的动画也随之停止。
type NodeComponent struct {
	// Name 节点名称，用于点击检测（如 "house"、"tool"），可为空
	Name string

	// Parent 父节点，InvalidEntity 表示根节点
	Parent ecs.EntityID

	// Children 子节点列表，按添加顺序
	Children []ecs.EntityID

	// ZIndex 同级排序，值大的后绘制（在上层）
	ZIndex int
}
