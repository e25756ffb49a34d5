package scenes

import (
	"log"

	"github.com/decker502/redsun/pkg/actions"
	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/entities"
	"github.com/decker502/redsun/pkg/types"
	"github.com/decker502/redsun/pkg/utils"
)

// HandleTaps 按顺序处理本帧的所有点击
//
// 每个点击根据当前时刻分发：
//
//	HouseDistant  点中房子 → HouseClose
//	HouseClose    点中房子 → Window
//	Window        任意位置 → ToolGrab
//	ToolGrab      点中草叉 → 抓草叉
//	DoorClosed    任意位置 → DoorOpen
//	DoorOpen      任意位置 → Stabbing
//	Stabbing      任意位置 → 刺击
//
// 没点中要求的目标时什么也不做。触发结局后剩余的点击全部忽略。
func (s *MurderScene) HandleTaps(points []utils.Point) {
	for _, p := range points {
		if s.exited {
			return
		}
		s.handleTap(p)
	}
}

func (s *MurderScene) handleTap(p utils.Point) {
	switch s.currentMoment {
	case types.MomentHouseDistant:
		if s.hit(entities.NodeHouse, p) {
			s.RequestTransition(types.MomentHouseClose)
		}
	case types.MomentHouseClose:
		if s.hit(entities.NodeHouse, p) {
			s.RequestTransition(types.MomentWindow)
		}
	case types.MomentWindow:
		s.RequestTransition(types.MomentToolGrab)
	case types.MomentToolGrab:
		if s.hit(entities.NodeTool, p) {
			s.grabTool()
		}
	case types.MomentDoorClosed:
		s.RequestTransition(types.MomentDoorOpen)
	case types.MomentDoorOpen:
		s.RequestTransition(types.MomentStabbing)
	case types.MomentStabbing:
		s.stab()
	}
}

// hit 判断点击是否落在当前时刻的命名节点上
// 当前时刻没有该节点说明状态与视觉不一致，MustNode 会 panic
func (s *MurderScene) hit(name string, p utils.Point) bool {
	return utils.HitTest(s.entityManager, s.currentVisual.MustNode(name), p)
}

// grabTool 手臂伸向草叉，然后连同草叉一起收回，完成后转场到 DoorClosed
// 动画进行中再次点击草叉不会重复触发
func (s *MurderScene) grabTool() {
	if s.grabbing {
		return
	}
	s.grabbing = true

	arm := s.currentVisual.MustNode(entities.NodeArm)
	tool := s.currentVisual.MustNode(entities.NodeTool)
	armX, armY := s.localPosition(arm)
	toolX, toolY := s.localPosition(tool)

	grab := s.config.Grab
	log.Printf("[MurderScene] 抓草叉")

	s.actionSystem.Run(arm, actions.MoveTo(toolX, toolY, grab.ReachDuration), func() {
		s.actionSystem.Run(arm, actions.MoveTo(armX, armY, grab.ReturnDuration), nil)
		s.actionSystem.Run(tool, actions.MoveTo(armX, armY, grab.ReturnDuration), func() {
			s.grabbing = false
			s.RequestTransition(types.MomentDoorClosed)
		})
	})
}

// localPosition 返回节点相对父节点的位置
func (s *MurderScene) localPosition(id ecs.EntityID) (float64, float64) {
	pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id)
	if !ok {
		return 0, 0
	}
	return pos.X, pos.Y
}
