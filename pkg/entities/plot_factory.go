package entities

import (
	"image/color"

	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/types"
)

// plotColors 各种地块内容的颜色（还没有作物素材，先用色块表示）
var plotColors = map[types.PlotContent]color.RGBA{
	types.PlotDeadBody: {R: 139, G: 69, B: 19, A: 255},
	types.PlotEmpty:    {A: 255},
	types.PlotCorn:     {R: 255, G: 255, A: 255},
	types.PlotHouse:    {R: 255, A: 255},
	types.PlotTractor:  {R: 128, B: 128, A: 255},
	types.PlotWheat:    {G: 255, A: 255},
	types.PlotWindmill: {R: 128, G: 128, B: 128, A: 255},
}

// PlotColor 返回地块内容对应的颜色
func PlotColor(contents types.PlotContent) color.RGBA {
	if c, ok := plotColors[contents]; ok {
		return c
	}
	return plotColors[types.PlotEmpty]
}

// NewPlot 创建一块农田
//
// 地块节点位于 (x, y)，尺寸 w×h：底部五分之一是土地，
// 下半部分中间是表示内容的色块（名称为 "field"）。
//
// 返回地块实体
func NewPlot(em *ecs.EntityManager, parent ecs.EntityID, index int, contents types.PlotContent, age int,
	x, y, w, h float64) ecs.EntityID {

	plot := NewContainer(em, parent, x, y)
	ecs.AddComponent(em, plot, &components.PlotComponent{
		Index:    index,
		Contents: contents,
		Age:      age,
	})

	groundHeight := h / 5
	NewSizedSprite(em, plot, "Ground", 0, h/2-groundHeight/2, w, groundHeight)

	field := NewShape(em, plot, 0, h/4, w/4, h/4, PlotColor(contents))
	SetName(em, field, config.PlotFieldName)
	SetZIndex(em, field, config.ZForeground)

	return plot
}

// UpdatePlotContents 修改地块内容并刷新色块颜色
func UpdatePlotContents(em *ecs.EntityManager, plot ecs.EntityID, contents types.PlotContent, age int) {
	pc, ok := ecs.GetComponent[*components.PlotComponent](em, plot)
	if !ok {
		return
	}
	pc.Contents = contents
	pc.Age = age

	node, ok := ecs.GetComponent[*components.NodeComponent](em, plot)
	if !ok {
		return
	}
	for _, child := range node.Children {
		childNode, ok := ecs.GetComponent[*components.NodeComponent](em, child)
		if !ok || childNode.Name != config.PlotFieldName {
			continue
		}
		if shape, ok := ecs.GetComponent[*components.ShapeComponent](em, child); ok {
			shape.Color = PlotColor(contents)
		}
	}
}
