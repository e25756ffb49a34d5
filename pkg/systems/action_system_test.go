package systems

import (
	"testing"

	"github.com/decker502/redsun/pkg/actions"
	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/utils"
)

const testDeltaTime = 1.0 / 60.0

func advance(s *ActionSystem, em *ecs.EntityManager, seconds float64) {
	frames := int(seconds/testDeltaTime + 0.5)
	for i := 0; i < frames; i++ {
		s.Update(testDeltaTime)
		em.RemoveMarkedEntities()
	}
}

func TestActionSystemCompletionFiresOnce(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.OpacityComponent{Alpha: 0})

	calls := 0
	system.Run(id, actions.Fade(0, 1, 0.5), func() { calls++ })

	advance(system, em, 0.25)
	if calls != 0 {
		t.Fatalf("onComplete fired before the fade finished (%d calls)", calls)
	}

	advance(system, em, 1.0)
	if calls != 1 {
		t.Errorf("Expected onComplete exactly once, got %d", calls)
	}
	if system.HasActions(id) {
		t.Error("Finished action should be removed")
	}
	op, _ := ecs.GetComponent[*components.OpacityComponent](em, id)
	if op.Alpha != 1 {
		t.Errorf("Expected alpha 1, got %f", op.Alpha)
	}
}

func TestActionSystemDropsActionsOfDetachedNodes(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)
	root := em.CreateEntity()
	layer := em.CreateEntity()
	utils.AddChild(em, root, layer)

	ticks := 0
	system.Run(layer, actions.RepeatForever(actions.Sequence(
		actions.Wait(0.1),
		actions.Run(func(*actions.Context) { ticks++ }),
	)), nil)

	advance(system, em, 0.55)
	if ticks == 0 {
		t.Fatal("Looping action should have ticked")
	}
	if !system.HasActions(layer) {
		t.Fatal("Looping action should still be running")
	}

	utils.RemoveFromParent(em, layer)
	before := ticks
	advance(system, em, 1.0)

	if ticks != before {
		t.Errorf("Loop kept running after its node was removed: %d -> %d", before, ticks)
	}
	if system.Count() != 0 {
		t.Errorf("Expected no runners left, got %d", system.Count())
	}
}

func TestActionSystemCompletionAfterSelfRemoval(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)
	root := em.CreateEntity()
	visual := em.CreateEntity()
	utils.AddChild(em, root, visual)
	ecs.AddComponent(em, visual, &components.OpacityComponent{Alpha: 1})

	unlocked := false
	system.Run(visual, actions.Sequence(actions.FadeOut(0.2), actions.RemoveFromParent()), func() {
		unlocked = true
	})

	advance(system, em, 0.5)
	if !unlocked {
		t.Error("Fade-out-and-remove should still report completion")
	}
	if em.IsAlive(visual) {
		t.Error("Visual should have been removed")
	}
}

func TestActionSystemRunFromCallbackStartsNextFrame(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{})

	secondDone := false
	system.Run(id, actions.MoveTo(10, 0, 0.1), func() {
		system.Run(id, actions.MoveTo(0, 0, 0.1), func() { secondDone = true })
	})

	advance(system, em, 0.15)
	if secondDone {
		t.Fatal("Chained action finished too early")
	}
	advance(system, em, 0.2)
	if !secondDone {
		t.Error("Chained action should finish")
	}
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if pos.X != 0 {
		t.Errorf("Expected X back at 0, got %f", pos.X)
	}
}

func TestActionSystemConcurrentActionsOnOneEntity(t *testing.T) {
	em := ecs.NewEntityManager()
	system := NewActionSystem(em)
	id := em.CreateEntity()
	ecs.AddComponent(em, id, &components.PositionComponent{})
	ecs.AddComponent(em, id, &components.OpacityComponent{Alpha: 0})

	system.Run(id, actions.FadeIn(0.3), nil)
	system.Run(id, actions.MoveTo(30, 0, 0.3), nil)

	advance(system, em, 0.5)

	op, _ := ecs.GetComponent[*components.OpacityComponent](em, id)
	pos, _ := ecs.GetComponent[*components.PositionComponent](em, id)
	if op.Alpha != 1 || pos.X != 30 {
		t.Errorf("Expected alpha=1 x=30, got alpha=%f x=%f", op.Alpha, pos.X)
	}
}
