package components

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
)

// SpriteComponent 图片精灵
//
// 工厂只记录逻辑图片名和基础尺寸，图片由渲染层第一次绘制时
// 通过 ResourceManager 按名称加载并缓存到 Image。
// 点击检测使用 Width/Height，不依赖图片是否加载成功。
type SpriteComponent struct {
	Image     *ebiten.Image // 已加载的图片，nil 表示尚未加载
	ImageName string        // 逻辑图片名，如 "House"、"BackgroundNight"
	Width     float64 // 基础宽度（缩放前）
	Height    float64 // 基础高度（缩放前）
	Rotation  float64 // 旋转角度（弧度，逆时针为正）
}

// ShapeComponent 纯色矩形（如渐暗遮罩）
type ShapeComponent struct {
	Width  float64
	Height float64
	Color  color.RGBA
}
