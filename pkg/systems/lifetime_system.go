package systems

import (
	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/utils"
)

// LifetimeSystem 管理实体的生命周期
type LifetimeSystem struct {
	entityManager *ecs.EntityManager
}

// NewLifetimeSystem 创建一个新的生命周期系统
func NewLifetimeSystem(em *ecs.EntityManager) *LifetimeSystem {
	return &LifetimeSystem{
		entityManager: em,
	}
}

// Update 更新所有拥有生命周期组件的实体
//
// 过期或落出 CullBelowY 的实体从父节点摘下并标记删除，
// 这样父节点（如雨层）的子节点列表不会无限增长。
func (s *LifetimeSystem) Update(deltaTime float64) {
	entities := ecs.GetEntitiesWith1[*components.LifetimeComponent](s.entityManager)

	for _, id := range entities {
		if !s.entityManager.IsAlive(id) {
			continue
		}
		lifetime, ok := ecs.GetComponent[*components.LifetimeComponent](s.entityManager, id)
		if !ok {
			continue
		}

		// 增加当前生命时间
		lifetime.CurrentLifetime += deltaTime

		// 检查是否过期
		if lifetime.MaxLifetime > 0 && lifetime.CurrentLifetime >= lifetime.MaxLifetime {
			lifetime.IsExpired = true
		}

		// 落出屏幕的实体提前过期
		if lifetime.CullBelowY > 0 {
			if _, y, err := utils.WorldPosition(s.entityManager, id); err == nil && y > lifetime.CullBelowY {
				lifetime.IsExpired = true
			}
		}

		if lifetime.IsExpired {
			utils.RemoveFromParent(s.entityManager, id)
		}
	}
}
