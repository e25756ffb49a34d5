package systems

import (
	"github.com/decker502/redsun/pkg/actions"
	"github.com/decker502/redsun/pkg/ecs"
)

// actionRunner 一个挂在实体上的动作时间线
type actionRunner struct {
	ctx        actions.Context
	action     actions.Action
	onComplete func()
}

// ActionSystem 推进所有实体上的动作时间线
//
// 动作与实体绑定：实体被删除（包括作为被摘下子树的一部分）后，
// 其上所有未完成的动作在下一次 Update 时丢弃，不会触发完成回调。
// 循环动画因此随节点离开场景树自动停止。
type ActionSystem struct {
	entityManager *ecs.EntityManager
	runners       []*actionRunner
}

// NewActionSystem 创建动作系统
func NewActionSystem(em *ecs.EntityManager) *ActionSystem {
	return &ActionSystem{
		entityManager: em,
	}
}

// Run 在实体上启动一个动作
//
// 参数:
//   - id: 动作作用的实体
//   - action: 动作时间线（不可与其他 Run 调用共享同一个实例）
//   - onComplete: 动作完成后调用一次，可为 nil；永不完成的动作不会调用
//
// 在 Update 的回调中启动的动作从下一帧开始推进。
func (s *ActionSystem) Run(id ecs.EntityID, action actions.Action, onComplete func()) {
	s.runners = append(s.runners, &actionRunner{
		ctx:        actions.Context{EM: s.entityManager, Entity: id},
		action:     action,
		onComplete: onComplete,
	})
}

// Update 推进所有动作 deltaTime 秒
func (s *ActionSystem) Update(deltaTime float64) {
	// 只推进本帧开始前已存在的动作，回调中新增的动作追加在末尾
	count := len(s.runners)
	finished := make([]bool, count)

	for i := 0; i < count; i++ {
		r := s.runners[i]
		if !s.entityManager.IsAlive(r.ctx.Entity) {
			finished[i] = true
			continue
		}

		if _, done := r.action.Step(&r.ctx, deltaTime); !done {
			continue
		}
		finished[i] = true
		if r.onComplete != nil {
			r.onComplete()
		}
	}

	kept := s.runners[:0]
	for i, r := range s.runners {
		if i < count && finished[i] {
			continue
		}
		kept = append(kept, r)
	}
	// 释放被移除动作的引用
	for i := len(kept); i < len(s.runners); i++ {
		s.runners[i] = nil
	}
	s.runners = kept
}

// HasActions 判断实体上是否还有未完成的动作
func (s *ActionSystem) HasActions(id ecs.EntityID) bool {
	for _, r := range s.runners {
		if r.ctx.Entity == id && s.entityManager.IsAlive(id) {
			return true
		}
	}
	return false
}

// Count 返回当前时间线数量（包括尚未清理的已删除实体上的动作）
func (s *ActionSystem) Count() int {
	return len(s.runners)
}
