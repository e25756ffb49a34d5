package game

import (
	"github.com/hajimehoshi/ebiten/v2"
)

// Scene represents a top-level game scene (e.g., the murder cutscene, the farm).
// Each scene has its own update and rendering logic.
type Scene interface {
	// Update updates the scene logic based on the elapsed time.
	// deltaTime is the time elapsed since the last update in seconds.
	Update(deltaTime float64)

	// Draw renders the scene to the provided screen.
	// screen is the target image where the scene should be drawn.
	Draw(screen *ebiten.Image)
}

// SceneSwitcher 场景切换器
// 场景通过它把控制权交给下一个场景，不直接依赖 SceneManager
type SceneSwitcher interface {
	// TransitionTo 以 duration 秒的交叉淡化切换到 scene
	TransitionTo(scene Scene, duration float64)
}
