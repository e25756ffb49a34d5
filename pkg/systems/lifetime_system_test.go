package systems

import (
	"testing"

	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/utils"
)

func TestLifetimeUpdate(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	// 创建测试实体
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{
		MaxLifetime: 10.0,
	})

	// 模拟5秒更新
	system.Update(5.0)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if lifetime.CurrentLifetime != 5.0 {
		t.Errorf("Expected CurrentLifetime=5.0, got %f", lifetime.CurrentLifetime)
	}
	if lifetime.IsExpired {
		t.Error("Entity should not be expired yet")
	}
}

func TestLifetimeExpiration(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.LifetimeComponent{
		MaxLifetime: 10.0,
	})

	// 模拟超过最大生命周期
	system.Update(12.0)

	lifetime, _ := ecs.GetComponent[*components.LifetimeComponent](em, id)
	if !lifetime.IsExpired {
		t.Error("Entity should be expired")
	}

	// 清理实体
	em.RemoveMarkedEntities()

	if ecs.HasComponent[*components.LifetimeComponent](em, id) {
		t.Error("Expired entity should be removed")
	}
}

func TestLifetimeCullBelowViewport(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewLifetimeSystem(em)

	// 雨层在屏幕上方，雨滴坐标相对雨层
	layer := em.CreateEntity()
	ecs.AddComponent(em, layer, &components.PositionComponent{X: 512, Y: -80})

	inside := em.CreateEntity()
	ecs.AddComponent(em, inside, &components.PositionComponent{Y: 700})
	ecs.AddComponent(em, inside, &components.LifetimeComponent{MaxLifetime: 10, CullBelowY: 768})
	utils.AddChild(em, layer, inside)

	below := em.CreateEntity()
	ecs.AddComponent(em, below, &components.PositionComponent{Y: 900})
	ecs.AddComponent(em, below, &components.LifetimeComponent{MaxLifetime: 10, CullBelowY: 768})
	utils.AddChild(em, layer, below)

	system.Update(0.1)
	em.RemoveMarkedEntities()

	if !em.IsAlive(inside) {
		t.Error("Drop at world Y=620 should survive")
	}
	if em.IsAlive(below) {
		t.Error("Drop at world Y=820 should be culled")
	}

	node, _ := ecs.GetComponent[*components.NodeComponent](em, layer)
	if len(node.Children) != 1 || node.Children[0] != inside {
		t.Errorf("Culled drop should be detached from the layer, children=%v", node.Children)
	}
}
