package actions

import (
	"image/color"

	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/utils"
)

// tween 补间动作的公共部分
//
// 首次推进时调用 begin 记录起始值（与节点当时的状态相关），
// 之后每帧按线性进度调用 apply。
type tween struct {
	duration float64
	elapsed  float64
	started  bool
	begin    func(ctx *Context)
	apply    func(ctx *Context, t float64)
}

func (tw *tween) Step(ctx *Context, dt float64) (float64, bool) {
	if !tw.started {
		tw.started = true
		if tw.begin != nil {
			tw.begin(ctx)
		}
	}
	tw.elapsed += dt
	tw.apply(ctx, utils.EaseLinear(utils.Progress(tw.elapsed, tw.duration)))
	if tw.elapsed >= tw.duration {
		return tw.elapsed - tw.duration, true
	}
	return 0, false
}

func (tw *tween) Reset() {
	tw.elapsed = 0
	tw.started = false
}

// opacityOf 获取（必要时创建）不透明度组件
func opacityOf(em *ecs.EntityManager, id ecs.EntityID) *components.OpacityComponent {
	op, ok := ecs.GetComponent[*components.OpacityComponent](em, id)
	if !ok {
		op = &components.OpacityComponent{Alpha: 1}
		ecs.AddComponent(em, id, op)
	}
	return op
}

func positionOf(em *ecs.EntityManager, id ecs.EntityID) *components.PositionComponent {
	pos, ok := ecs.GetComponent[*components.PositionComponent](em, id)
	if !ok {
		pos = &components.PositionComponent{}
		ecs.AddComponent(em, id, pos)
	}
	return pos
}

func scaleOf(em *ecs.EntityManager, id ecs.EntityID) *components.ScaleComponent {
	scale, ok := ecs.GetComponent[*components.ScaleComponent](em, id)
	if !ok {
		scale = &components.ScaleComponent{ScaleX: 1, ScaleY: 1}
		ecs.AddComponent(em, id, scale)
	}
	return scale
}

func tintOf(em *ecs.EntityManager, id ecs.EntityID) *components.TintComponent {
	tint, ok := ecs.GetComponent[*components.TintComponent](em, id)
	if !ok {
		tint = &components.TintComponent{Color: color.RGBA{R: 255, G: 255, B: 255, A: 255}}
		ecs.AddComponent(em, id, tint)
	}
	return tint
}

// FadeTo 从当前不透明度线性过渡到 alpha
func FadeTo(alpha, duration float64) Action {
	var from float64
	return &tween{
		duration: duration,
		begin: func(ctx *Context) {
			from = opacityOf(ctx.EM, ctx.Entity).Alpha
		},
		apply: func(ctx *Context, t float64) {
			opacityOf(ctx.EM, ctx.Entity).Alpha = utils.Lerp(from, alpha, t)
		},
	}
}

// FadeIn 淡入到完全不透明
func FadeIn(duration float64) Action {
	return FadeTo(1, duration)
}

// FadeOut 淡出到完全透明
func FadeOut(duration float64) Action {
	return FadeTo(0, duration)
}

// FadeBy 在当前不透明度上增加 delta
// 每帧只叠加本帧的增量，同一节点上重叠的 FadeBy 会累加而不是互相覆盖。
// 结果不做限制，超过 1 的部分由渲染层截断
func FadeBy(delta, duration float64) Action {
	var applied float64
	return &tween{
		duration: duration,
		begin: func(ctx *Context) {
			applied = 0
		},
		apply: func(ctx *Context, t float64) {
			opacityOf(ctx.EM, ctx.Entity).Alpha += delta * (t - applied)
			applied = t
		},
	}
}

// MoveTo 线性移动到局部坐标 (x, y)
func MoveTo(x, y, duration float64) Action {
	var fromX, fromY float64
	return &tween{
		duration: duration,
		begin: func(ctx *Context) {
			pos := positionOf(ctx.EM, ctx.Entity)
			fromX, fromY = pos.X, pos.Y
		},
		apply: func(ctx *Context, t float64) {
			pos := positionOf(ctx.EM, ctx.Entity)
			pos.X = utils.Lerp(fromX, x, t)
			pos.Y = utils.Lerp(fromY, y, t)
		},
	}
}

// MoveToY 只在纵向移动
func MoveToY(y, duration float64) Action {
	var fromY float64
	return &tween{
		duration: duration,
		begin: func(ctx *Context) {
			fromY = positionOf(ctx.EM, ctx.Entity).Y
		},
		apply: func(ctx *Context, t float64) {
			positionOf(ctx.EM, ctx.Entity).Y = utils.Lerp(fromY, y, t)
		},
	}
}

// ScaleTo 等比缩放到 scale
func ScaleTo(scale, duration float64) Action {
	var fromX, fromY float64
	return &tween{
		duration: duration,
		begin: func(ctx *Context) {
			s := scaleOf(ctx.EM, ctx.Entity)
			fromX, fromY = s.ScaleX, s.ScaleY
		},
		apply: func(ctx *Context, t float64) {
			s := scaleOf(ctx.EM, ctx.Entity)
			s.ScaleX = utils.Lerp(fromX, scale, t)
			s.ScaleY = utils.Lerp(fromY, scale, t)
		},
	}
}

// ColorizeTo 着色：颜色与混合系数同时过渡到目标值
func ColorizeTo(c color.RGBA, blendFactor, duration float64) Action {
	var from color.RGBA
	var fromFactor float64
	return &tween{
		duration: duration,
		begin: func(ctx *Context) {
			tint := tintOf(ctx.EM, ctx.Entity)
			from, fromFactor = tint.Color, tint.BlendFactor
		},
		apply: func(ctx *Context, t float64) {
			tint := tintOf(ctx.EM, ctx.Entity)
			tint.Color = lerpColor(from, c, t)
			tint.BlendFactor = utils.Lerp(fromFactor, blendFactor, t)
		},
	}
}

// ColorizeFactorTo 只改变混合系数，颜色保持不变
func ColorizeFactorTo(blendFactor, duration float64) Action {
	var fromFactor float64
	return &tween{
		duration: duration,
		begin: func(ctx *Context) {
			fromFactor = tintOf(ctx.EM, ctx.Entity).BlendFactor
		},
		apply: func(ctx *Context, t float64) {
			tintOf(ctx.EM, ctx.Entity).BlendFactor = utils.Lerp(fromFactor, blendFactor, t)
		},
	}
}

func lerpColor(a, b color.RGBA, t float64) color.RGBA {
	lerp8 := func(x, y uint8) uint8 {
		return uint8(utils.Lerp(float64(x), float64(y), t) + 0.5)
	}
	return color.RGBA{
		R: lerp8(a.R, b.R),
		G: lerp8(a.G, b.G),
		B: lerp8(a.B, b.B),
		A: lerp8(a.A, b.A),
	}
}
