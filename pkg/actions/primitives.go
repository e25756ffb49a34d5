package actions

import "image/color"

// 过场动画使用的动画基元
//
// 这些基元只描述时间线，需要交给 ActionSystem.Run 挂到节点上才会执行。
// 循环类基元没有终点，目标节点被删除时停止。

// Fade 从 from 线性过渡到 to
// 起始值在动作开始时强制设置，不依赖节点当前的不透明度
func Fade(from, to, duration float64) Action {
	return Sequence(SetAlpha(from), FadeTo(to, duration))
}

// ColorBlink 颜色闪烁循环
// 在 blendDuration 内混合到 c（混合系数 factor），再用同样时长褪回无着色，无限循环
func ColorBlink(c color.RGBA, factor, blendDuration float64) Action {
	return RepeatForever(Sequence(
		ColorizeTo(c, factor, blendDuration),
		ColorizeFactorTo(0, blendDuration),
	))
}

// Vibrate 在两个位置之间来回震动
// 移动到 B，停顿，移动回 A，停顿，无限循环
func Vibrate(ax, ay, bx, by, moveDuration, holdDuration float64) Action {
	return RepeatForever(Sequence(
		MoveTo(bx, by, moveDuration),
		Wait(holdDuration),
		MoveTo(ax, ay, moveDuration),
		Wait(holdDuration),
	))
}

// Pulse 执行 on，保持 hold 秒后执行 off（闪电的单次闪光）
func Pulse(on, off Action, hold float64) Action {
	return Sequence(on, Wait(hold), off)
}
