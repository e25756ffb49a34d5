package scenes

import (
	"log"

	"github.com/decker502/redsun/pkg/actions"
	"github.com/decker502/redsun/pkg/entities"
	"github.com/decker502/redsun/pkg/types"
	"github.com/decker502/redsun/pkg/utils"
)

// RequestTransition 请求交叉淡化到目标时刻
//
// 转场进行中（已加锁）的请求直接丢弃，不排队也不报错。
// 否则加锁，构建新时刻并以透明状态挂上场景，
// 旧时刻淡出后删除并解锁，新时刻同时淡入。
// currentMoment 和 currentVisual 在请求时立即更新，点击检测只会看到新时刻。
//
// 请求当前所在的时刻同样会完整地交叉淡化（环境动画从头开始）。
func (s *MurderScene) RequestTransition(target types.Moment) {
	if s.transitionLocked {
		log.Printf("[MurderScene] 转场进行中，忽略请求: %s", target)
		return
	}
	s.transitionLocked = true

	next := s.momentFactory.Build(target)
	entities.SetAlpha(s.entityManager, next.Root, 0)
	utils.AddChild(s.entityManager, s.world, next.Root)

	duration := s.config.Transition.CrossfadeDuration
	previous := s.currentVisual

	s.actionSystem.Run(previous.Root, actions.Sequence(
		actions.FadeOut(duration),
		actions.RemoveFromParent(),
	), func() {
		s.transitionLocked = false
	})
	s.actionSystem.Run(next.Root, actions.Fade(0, 1, duration), nil)

	log.Printf("[MurderScene] 转场: %s -> %s", s.currentMoment, target)
	s.currentMoment = target
	s.currentVisual = next
}
