// Package actions 提供基于时间推进的动作时间线
//
// 动作挂在节点实体上，由 systems.ActionSystem 每帧推进一次：
//
//	seq := actions.Sequence(actions.FadeOut(1), actions.RemoveFromParent())
//	actionSystem.Run(visualRoot, seq, func() { locked = false })
//
// 时间线可以组合：Sequence 顺序执行，RepeatForever 无限循环。
// 需要并行的效果挂在不同节点上，各自由 ActionSystem 推进。
// 所有动作都在游戏循环的同一协程中推进，没有阻塞调用。
// 动作没有取消接口：目标实体被删除后，ActionSystem 会丢弃它的所有动作。
package actions

import "github.com/decker502/redsun/pkg/ecs"

// Context 动作执行上下文
type Context struct {
	EM     *ecs.EntityManager
	Entity ecs.EntityID
}

// Action 可按帧推进的动作
type Action interface {
	// Step 推进 dt 秒
	// 返回 done 表示动作已完成；remaining 是完成后未用完的时间，
	// 供 Sequence 继续推进下一个动作，使瞬时动作在同一帧内连续执行。
	Step(ctx *Context, dt float64) (remaining float64, done bool)

	// Reset 恢复到未开始状态（RepeatForever 每轮调用）
	Reset()
}

// sequence 顺序执行
type sequence struct {
	actions []Action
	index   int
}

// Sequence 按顺序执行动作，前一个完成后开始下一个
func Sequence(actions ...Action) Action {
	return &sequence{actions: actions}
}

func (s *sequence) Step(ctx *Context, dt float64) (float64, bool) {
	for s.index < len(s.actions) {
		remaining, done := s.actions[s.index].Step(ctx, dt)
		if !done {
			return 0, false
		}
		s.index++
		dt = remaining
	}
	return dt, true
}

func (s *sequence) Reset() {
	s.index = 0
	for _, a := range s.actions {
		a.Reset()
	}
}

// repeatForever 无限循环
type repeatForever struct {
	action Action
}

// RepeatForever 无限重复动作，永不完成
//
// 一轮循环如果没有消耗任何时间（全部是瞬时动作），本帧停止推进，
// 避免在同一帧内死循环。
func RepeatForever(action Action) Action {
	return &repeatForever{action: action}
}

func (r *repeatForever) Step(ctx *Context, dt float64) (float64, bool) {
	for {
		remaining, done := r.action.Step(ctx, dt)
		if !done {
			return 0, false
		}
		r.action.Reset()
		if remaining >= dt {
			return 0, false
		}
		dt = remaining
	}
}

func (r *repeatForever) Reset() {
	r.action.Reset()
}

// wait 等待
type wait struct {
	duration float64
	elapsed  float64
}

// Wait 等待指定时长
func Wait(duration float64) Action {
	return &wait{duration: duration}
}

func (w *wait) Step(_ *Context, dt float64) (float64, bool) {
	w.elapsed += dt
	if w.elapsed >= w.duration {
		return w.elapsed - w.duration, true
	}
	return 0, false
}

func (w *wait) Reset() {
	w.elapsed = 0
}

// run 执行回调
type run struct {
	fn func(ctx *Context)
}

// Run 立即执行回调（瞬时动作），每轮循环执行一次
func Run(fn func(ctx *Context)) Action {
	return &run{fn: fn}
}

func (r *run) Step(ctx *Context, dt float64) (float64, bool) {
	r.fn(ctx)
	return dt, true
}

func (r *run) Reset() {}
