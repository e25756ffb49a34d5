package game

import (
	"testing"

	"github.com/hajimehoshi/ebiten/v2"
)

// MockScene is a mock implementation of the Scene interface for testing.
type MockScene struct {
	updateCalls int
	drawCalled  bool
	deltaTime   float64
}

// Update records that Update was called and stores the deltaTime.
func (m *MockScene) Update(deltaTime float64) {
	m.updateCalls++
	m.deltaTime = deltaTime
}

// Draw records that Draw was called.
func (m *MockScene) Draw(screen *ebiten.Image) {
	m.drawCalled = true
}

// TestNewSceneManager verifies that NewSceneManager creates a valid instance.
func TestNewSceneManager(t *testing.T) {
	sm := NewSceneManager()
	if sm == nil {
		t.Fatal("NewSceneManager() returned nil")
	}
	if sm.currentScene != nil {
		t.Error("Expected currentScene to be nil initially")
	}
}

// TestSceneManagerUpdate verifies that Update calls the current scene's Update method.
func TestSceneManagerUpdate(t *testing.T) {
	sm := NewSceneManager()
	mockScene := &MockScene{}
	sm.SwitchTo(mockScene)

	deltaTime := 0.016 // ~60 FPS
	sm.Update(deltaTime)

	if mockScene.updateCalls != 1 {
		t.Errorf("Expected 1 Update call, got %d", mockScene.updateCalls)
	}
	if mockScene.deltaTime != deltaTime {
		t.Errorf("Expected deltaTime %.3f, got %.3f", deltaTime, mockScene.deltaTime)
	}
}

// TestSceneManagerUpdateNoScene verifies that Update handles nil scene gracefully.
func TestSceneManagerUpdateNoScene(t *testing.T) {
	sm := NewSceneManager()
	sm.Update(0.016) // Should not panic
}

// TestSceneManagerTransitionPausesBothScenes verifies that neither scene is
// updated while the cross-fade runs, and the new scene resumes afterwards.
func TestSceneManagerTransitionPausesBothScenes(t *testing.T) {
	sm := NewSceneManager()
	oldScene := &MockScene{}
	newScene := &MockScene{}
	sm.SwitchTo(oldScene)

	sm.TransitionTo(newScene, 1.0)
	if sm.GetCurrentScene() != newScene {
		t.Fatal("Current scene should be the incoming scene right away")
	}
	if !sm.InTransition() {
		t.Fatal("Expected a transition in progress")
	}

	for i := 0; i < 30; i++ {
		sm.Update(1.0 / 60.0)
	}
	if oldScene.updateCalls != 0 || newScene.updateCalls != 0 {
		t.Errorf("Scenes updated during cross-fade: old=%d new=%d", oldScene.updateCalls, newScene.updateCalls)
	}
	if p := sm.transitionProgress(); p < 0.45 || p > 0.55 {
		t.Errorf("Expected progress around 0.5, got %f", p)
	}

	for i := 0; i < 40; i++ {
		sm.Update(1.0 / 60.0)
	}
	if sm.InTransition() {
		t.Fatal("Transition should have finished")
	}
	if newScene.updateCalls == 0 {
		t.Error("Incoming scene should be updated after the fade")
	}
	if oldScene.updateCalls != 0 {
		t.Error("Outgoing scene must never be updated again")
	}
}

// TestSceneManagerTransitionWithoutDuration switches immediately.
func TestSceneManagerTransitionWithoutDuration(t *testing.T) {
	sm := NewSceneManager()
	sm.SwitchTo(&MockScene{})
	next := &MockScene{}

	sm.TransitionTo(next, 0)

	if sm.InTransition() {
		t.Error("Zero-length transition should not be pending")
	}
	sm.Update(0.016)
	if next.updateCalls != 1 {
		t.Errorf("Expected the new scene to update immediately, got %d calls", next.updateCalls)
	}
}

// TestSceneManagerTransitionFromNothing switches immediately when no scene is active.
func TestSceneManagerTransitionFromNothing(t *testing.T) {
	sm := NewSceneManager()
	first := &MockScene{}

	sm.TransitionTo(first, 5.0)

	if sm.InTransition() {
		t.Error("There is nothing to fade from")
	}
	if sm.GetCurrentScene() != first {
		t.Error("Expected the scene to become current")
	}
}

// TestSceneManagerSwitchCancelsTransition verifies SwitchTo drops a pending fade.
func TestSceneManagerSwitchCancelsTransition(t *testing.T) {
	sm := NewSceneManager()
	sm.SwitchTo(&MockScene{})
	sm.TransitionTo(&MockScene{}, 2.0)

	final := &MockScene{}
	sm.SwitchTo(final)

	if sm.InTransition() {
		t.Error("SwitchTo should cancel the cross-fade")
	}
	sm.Update(0.016)
	if final.updateCalls != 1 {
		t.Errorf("Expected the final scene to update, got %d calls", final.updateCalls)
	}
}
