package entities

import (
	"image/color"

	"github.com/decker502/redsun/pkg/actions"
	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/utils"
)

// ActionRunner 启动挂在实体上的动作（由 systems.ActionSystem 实现）
type ActionRunner interface {
	Run(id ecs.EntityID, action actions.Action, onComplete func())
}

// defaultSpriteSize 未登记尺寸的精灵使用的基础尺寸
const defaultSpriteSize = 16.0

// NewContainer 创建一个空节点（只有位置和不透明度）
//
// 参数:
//   - parent: 父节点，InvalidEntity 表示创建根节点
//   - x, y: 相对父节点的位置
func NewContainer(em *ecs.EntityManager, parent ecs.EntityID, x, y float64) ecs.EntityID {
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{X: x, Y: y})
	ecs.AddComponent(em, id, &components.OpacityComponent{Alpha: 1})
	ecs.AddComponent(em, id, &components.NodeComponent{})
	if parent != ecs.InvalidEntity {
		utils.AddChild(em, parent, id)
	}
	return id
}

// NewSprite 创建图片精灵，使用登记的基础尺寸
func NewSprite(em *ecs.EntityManager, parent ecs.EntityID, imageName string, x, y float64) ecs.EntityID {
	w, h := defaultSpriteSize, defaultSpriteSize
	if size, ok := config.GetSpriteSize(imageName); ok {
		w, h = size.Width, size.Height
	}
	return NewSizedSprite(em, parent, imageName, x, y, w, h)
}

// NewSizedSprite 创建指定尺寸的图片精灵（背景等需要铺满视口的图片）
func NewSizedSprite(em *ecs.EntityManager, parent ecs.EntityID, imageName string, x, y, w, h float64) ecs.EntityID {
	id := NewContainer(em, parent, x, y)
	ecs.AddComponent(em, id, &components.SpriteComponent{
		ImageName: imageName,
		Width:     w,
		Height:    h,
	})
	return id
}

// NewShape 创建纯色矩形
func NewShape(em *ecs.EntityManager, parent ecs.EntityID, x, y, w, h float64, c color.RGBA) ecs.EntityID {
	id := NewContainer(em, parent, x, y)
	ecs.AddComponent(em, id, &components.ShapeComponent{Width: w, Height: h, Color: c})
	return id
}

// NewLight 创建点光源
func NewLight(em *ecs.EntityManager, parent ecs.EntityID, x, y, falloff float64, enabled bool) ecs.EntityID {
	id := NewContainer(em, parent, x, y)
	ecs.AddComponent(em, id, &components.LightComponent{
		Color:   color.RGBA{R: 255, G: 255, B: 255, A: 255},
		Falloff: falloff,
		Enabled: enabled,
	})
	return id
}

// SetScale 等比缩放节点
func SetScale(em *ecs.EntityManager, id ecs.EntityID, scale float64) {
	if s, ok := ecs.GetComponent[*components.ScaleComponent](em, id); ok {
		s.ScaleX, s.ScaleY = scale, scale
		return
	}
	ecs.AddComponent(em, id, &components.ScaleComponent{ScaleX: scale, ScaleY: scale})
}

// SetZIndex 设置同级绘制顺序
func SetZIndex(em *ecs.EntityManager, id ecs.EntityID, z int) {
	if node, ok := ecs.GetComponent[*components.NodeComponent](em, id); ok {
		node.ZIndex = z
	}
}

// SetName 设置节点名称
func SetName(em *ecs.EntityManager, id ecs.EntityID, name string) {
	if node, ok := ecs.GetComponent[*components.NodeComponent](em, id); ok {
		node.Name = name
	}
}

// SetAlpha 设置节点不透明度
func SetAlpha(em *ecs.EntityManager, id ecs.EntityID, alpha float64) {
	if op, ok := ecs.GetComponent[*components.OpacityComponent](em, id); ok {
		op.Alpha = alpha
		return
	}
	ecs.AddComponent(em, id, &components.OpacityComponent{Alpha: alpha})
}
