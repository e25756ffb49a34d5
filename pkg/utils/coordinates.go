// Package utils 提供游戏开发中常用的工具函数
//
// coordinates.go 提供节点树的坐标工具，用于渲染和点击检测。
//
// # 坐标系统概述
//
//   - **局部坐标**：PositionComponent 相对父节点
//   - **世界坐标**：沿父节点链累加得到，即场景/屏幕坐标（Y 轴向下）
//   - **节点锚点**：位置代表精灵/形状的中心
//
// 缩放只作用于节点自身的尺寸，不传递给子节点；不透明度沿父节点链相乘。
package utils

import (
	"errors"

	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/ecs"
)

// ErrNoPositionComponent 表示实体缺少 PositionComponent 组件
var ErrNoPositionComponent = errors.New("entity has no PositionComponent")

// Rect 轴对齐矩形（世界坐标）
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// Contains 判断点是否在矩形内（含边界）
func (r Rect) Contains(x, y float64) bool {
	return x >= r.MinX && x <= r.MaxX && y >= r.MinY && y <= r.MaxY
}

// WorldPosition 计算节点的世界坐标
// 沿父节点链累加局部坐标，缺少位置组件的祖先视为原点
func WorldPosition(em *ecs.EntityManager, id ecs.EntityID) (float64, float64, error) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		return 0, 0, ErrNoPositionComponent
	}

	x, y := pos.X, pos.Y
	for parent := ParentOf(em, id); parent != ecs.InvalidEntity; parent = ParentOf(em, parent) {
		if p, ok := ecs.GetComponent[*components.PositionComponent](em, parent); ok {
			x += p.X
			y += p.Y
		}
	}
	return x, y, nil
}

// WorldAlpha 计算节点的最终不透明度（自身与所有祖先相乘）
func WorldAlpha(em *ecs.EntityManager, id ecs.EntityID) float64 {
	alpha := 1.0
	for cur := id; cur != ecs.InvalidEntity; cur = ParentOf(em, cur) {
		if op, ok := ecs.GetComponent[*components.OpacityComponent](em, cur); ok {
			alpha *= op.Alpha
		}
	}
	return alpha
}

// NodeSize 返回节点缩放后的尺寸
// 精灵和形状有尺寸，其他节点（如容器、光源）尺寸为 0
func NodeSize(em *ecs.EntityManager, id ecs.EntityID) (float64, float64) {
	var w, h float64
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, id); ok {
		w, h = sprite.Width, sprite.Height
	} else if shape, ok := ecs.GetComponent[*components.ShapeComponent](em, id); ok {
		w, h = shape.Width, shape.Height
	}

	if scale, ok := ecs.GetComponent[*components.ScaleComponent](em, id); ok {
		w *= scale.ScaleX
		h *= scale.ScaleY
	}
	return w, h
}

// NodeBounds 计算节点的世界坐标包围盒（中心锚点，忽略旋转）
func NodeBounds(em *ecs.EntityManager, id ecs.EntityID) (Rect, error) {
	x, y, err := WorldPosition(em, id)
	if err != nil {
		return Rect{}, err
	}
	w, h := NodeSize(em, id)
	if w < 0 {
		w = -w
	}
	if h < 0 {
		h = -h
	}
	return Rect{
		MinX: x - w/2,
		MinY: y - h/2,
		MaxX: x + w/2,
		MaxY: y + h/2,
	}, nil
}

// HitTest 判断点是否落在节点上
func HitTest(em *ecs.EntityManager, id ecs.EntityID, p Point) bool {
	bounds, err := NodeBounds(em, id)
	if err != nil {
		return false
	}
	return bounds.Contains(p.X, p.Y)
}
