// Package utils 提供通用工具函数
package utils

import (
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// Point 场景坐标中的一个点击/触摸位置
type Point struct {
	X, Y float64
}

// JustPressedPoints 返回本帧所有刚按下的指针位置
//
// 同时支持多点触摸和鼠标：每个新触摸点一项，鼠标左键点击再追加一项。
// 过场动画按顺序逐个处理这些点。
func JustPressedPoints() []Point {
	var points []Point

	// 首先检查触摸输入（移动设备）
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		points = append(points, Point{X: float64(x), Y: float64(y)})
	}

	// 其次检查鼠标输入（桌面设备）
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		x, y := ebiten.CursorPosition()
		points = append(points, Point{X: float64(x), Y: float64(y)})
	}

	return points
}
