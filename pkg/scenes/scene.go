package scenes

import (
	"github.com/decker502/redsun/pkg/game"
)

// Scene is a type alias for game.Scene.
// All scene implementations should implement the game.Scene interface.
type Scene = game.Scene

// GameProfile 过场动画结局需要的存档操作
// 由 game.GameProfile 实现；测试中可替换
type GameProfile interface {
	SetCommittedMurder(committed bool)
	Save() error
}

// NextSceneFactory 按视口尺寸创建过场动画结束后的场景
type NextSceneFactory func(width, height float64) Scene
