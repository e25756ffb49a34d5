package systems

import (
	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/ecs"
)

// PhysicsSystem 积分速度与加速度
// 雨滴生成后由本系统负责下落（恒定重力 + 横向力），没有碰撞
type PhysicsSystem struct {
	em *ecs.EntityManager
}

// NewPhysicsSystem 创建物理系统
func NewPhysicsSystem(em *ecs.EntityManager) *PhysicsSystem {
	return &PhysicsSystem{em: em}
}

// Update 更新所有拥有位置和速度的实体
// 使用半隐式欧拉积分：先更新速度，再用新速度更新位置
//
// 参数:
//   - deltaTime: 自上一帧以来经过的时间（秒）
func (ps *PhysicsSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith2[*components.PositionComponent, *components.VelocityComponent](ps.em)

	for _, id := range entities {
		if !ps.em.IsAlive(id) {
			continue
		}
		pos, _ := ecs.GetComponent[*components.PositionComponent](ps.em, id)
		vel, _ := ecs.GetComponent[*components.VelocityComponent](ps.em, id)

		if acc, ok := ecs.GetComponent[*components.AccelerationComponent](ps.em, id); ok {
			vel.VX += acc.AX * deltaTime
			vel.VY += acc.AY * deltaTime
		}

		pos.X += vel.VX * deltaTime
		pos.Y += vel.VY * deltaTime
	}
}
