package game

import (
	"log"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/redsun/pkg/utils"
)

// sceneTransition 进行中的交叉淡化
type sceneTransition struct {
	from     Scene
	elapsed  float64
	duration float64
}

// SceneManager manages the game's high-level state by controlling which scene is active.
// It ensures only one scene's Update method is called at any given time.
//
// During a timed cross-fade both scenes are drawn (outgoing fading out over the
// incoming one) and neither is updated; the incoming scene starts receiving
// updates, and therefore input, once the fade completes.
type SceneManager struct {
	currentScene Scene
	transition   *sceneTransition

	// 交叉淡化用的离屏缓冲（延迟创建，尺寸随屏幕变化）
	fromBuffer *ebiten.Image
	toBuffer   *ebiten.Image
}

// NewSceneManager creates and returns a new SceneManager instance.
// The manager starts with no active scene; use SwitchTo to set the initial scene.
func NewSceneManager() *SceneManager {
	return &SceneManager{}
}

// SwitchTo changes the active scene immediately, cancelling any cross-fade in progress.
func (sm *SceneManager) SwitchTo(scene Scene) {
	sm.currentScene = scene
	sm.transition = nil
}

// TransitionTo cross-fades from the current scene to scene over duration seconds.
// A non-positive duration, or no current scene, switches immediately.
func (sm *SceneManager) TransitionTo(scene Scene, duration float64) {
	if duration <= 0 || sm.currentScene == nil {
		sm.SwitchTo(scene)
		return
	}

	log.Printf("[SceneManager] 交叉淡化切换场景 (%.1fs)", duration)
	sm.transition = &sceneTransition{
		from:     sm.currentScene,
		duration: duration,
	}
	sm.currentScene = scene
}

// GetCurrentScene 返回当前活动的场景（交叉淡化期间为新场景）
func (sm *SceneManager) GetCurrentScene() Scene {
	return sm.currentScene
}

// InTransition 是否正在交叉淡化
func (sm *SceneManager) InTransition() bool {
	return sm.transition != nil
}

// Update updates the currently active scene.
// If no scene is active, this method does nothing.
// deltaTime is the time elapsed since the last update in seconds.
func (sm *SceneManager) Update(deltaTime float64) {
	if sm.transition != nil {
		sm.transition.elapsed += deltaTime
		if sm.transition.elapsed < sm.transition.duration {
			return
		}
		log.Printf("[SceneManager] 场景切换完成")
		sm.transition = nil
		sm.fromBuffer = nil
		sm.toBuffer = nil
		return
	}

	if sm.currentScene != nil {
		sm.currentScene.Update(deltaTime)
	}
}

// Draw renders the currently active scene to the provided screen.
// If no scene is active, this method does nothing.
func (sm *SceneManager) Draw(screen *ebiten.Image) {
	if sm.currentScene == nil {
		return
	}
	if sm.transition == nil {
		sm.currentScene.Draw(screen)
		return
	}

	bounds := screen.Bounds()
	sm.fromBuffer = ensureBuffer(sm.fromBuffer, bounds.Dx(), bounds.Dy())
	sm.toBuffer = ensureBuffer(sm.toBuffer, bounds.Dx(), bounds.Dy())

	sm.fromBuffer.Clear()
	sm.transition.from.Draw(sm.fromBuffer)
	sm.toBuffer.Clear()
	sm.currentScene.Draw(sm.toBuffer)

	p := sm.transitionProgress()

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(1 - p))
	screen.DrawImage(sm.fromBuffer, op)

	op = &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(p))
	screen.DrawImage(sm.toBuffer, op)
}

// transitionProgress 交叉淡化进度 [0, 1]（缓入缓出）
func (sm *SceneManager) transitionProgress() float64 {
	if sm.transition == nil {
		return 1
	}
	return utils.EaseInOutQuad(utils.Progress(sm.transition.elapsed, sm.transition.duration))
}

func ensureBuffer(buf *ebiten.Image, w, h int) *ebiten.Image {
	if buf != nil {
		b := buf.Bounds()
		if b.Dx() == w && b.Dy() == h {
			return buf
		}
		buf.Deallocate()
	}
	return ebiten.NewImage(w, h)
}
