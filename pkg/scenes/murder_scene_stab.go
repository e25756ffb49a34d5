package scenes

import (
	"image/color"
	"log"

	"github.com/decker502/redsun/pkg/actions"
	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/entities"
)

// stab 刺击一次
//
// 草叉动画：淡入 → 刺入（缩小并下移）→ 同时伤口淡入、恐惧画面淡出、刺出（放大并上移）。
// 计数不等动画，立即加一；每次刺击加深遮罩，次数达到阈值时触发结局。
func (s *MurderScene) stab() {
	weapon := s.currentVisual.MustNode(entities.NodeWeapon)
	wound := s.currentVisual.MustNode(entities.NodeWound)
	fear := s.currentVisual.MustNode(entities.NodeFear)

	st := s.config.Stab
	_, y := s.localPosition(weapon)

	stabIn := actions.Sequence(
		actions.ScaleTo(config.WeaponStabInScale, st.StrokeDuration),
		actions.MoveToY(y+st.StrokeShift, st.StrokeDuration),
	)
	stabOut := actions.Sequence(
		actions.ScaleTo(config.WeaponScale, st.StrokeDuration),
		actions.MoveToY(y-st.StrokeShift, st.StrokeDuration),
	)

	s.actionSystem.Run(weapon, actions.Sequence(actions.FadeIn(st.WeaponFadeIn), stabIn), func() {
		s.actionSystem.Run(wound, actions.FadeIn(st.WoundFadeIn), nil)
		s.actionSystem.Run(fear, actions.FadeOut(st.FearFadeOut), nil)
		s.actionSystem.Run(weapon, stabOut, nil)
	})

	s.stabCount++
	log.Printf("[MurderScene] 刺击 #%d", s.stabCount)

	s.deepenOverlay()

	if s.stabCount >= st.Threshold {
		s.exit()
	}
}

// deepenOverlay 第一次刺击时创建透明的全屏黑色遮罩，之后每次加深
// 不透明度不做上限检查，超过 1 时由渲染截断
func (s *MurderScene) deepenOverlay() {
	if s.overlay == ecs.InvalidEntity {
		s.overlay = entities.NewShape(s.entityManager, s.world,
			s.width/2, s.height/2, s.width, s.height, color.RGBA{A: 255})
		entities.SetAlpha(s.entityManager, s.overlay, 0)
		entities.SetZIndex(s.entityManager, s.overlay, config.ZOverlay)
		return
	}

	st := s.config.Stab
	s.actionSystem.Run(s.overlay, actions.FadeBy(st.OverlayIncrement, st.OverlayFadeDuration), nil)
}

// exit 结局：写入并保存存档，然后交叉淡化到下一个场景
// 只执行一次
func (s *MurderScene) exit() {
	if s.exited {
		return
	}
	s.exited = true
	log.Printf("[MurderScene] 刺击次数达到 %d，进入结局", s.stabCount)

	if s.profile != nil {
		s.profile.SetCommittedMurder(true)
		if err := s.profile.Save(); err != nil {
			log.Printf("[MurderScene] 警告: 保存存档失败: %v", err)
		}
	}

	if s.switcher != nil && s.nextScene != nil {
		s.switcher.TransitionTo(s.nextScene(s.width, s.height), s.config.Transition.ExitDuration)
	}
}
