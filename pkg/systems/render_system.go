package systems

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/vector"

	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/game"
	"github.com/decker502/redsun/pkg/utils"
)

// RenderSystem 按节点树绘制场景
//
// 从根节点深度优先遍历：同一父节点下按 ZIndex 从小到大绘制，
// 位置沿父节点链累加，不透明度沿父节点链相乘。
// 精灵图片按逻辑名称从 ResourceManager 获取，之后缓存在 SpriteComponent 上。
type RenderSystem struct {
	entityManager   *ecs.EntityManager
	resourceManager *game.ResourceManager

	// whitePixel 绘制光源闪光用的 1x1 白色图片（延迟创建）
	whitePixel *ebiten.Image
}

// NewRenderSystem 创建渲染系统
func NewRenderSystem(em *ecs.EntityManager, rm *game.ResourceManager) *RenderSystem {
	return &RenderSystem{
		entityManager:   em,
		resourceManager: rm,
	}
}

// Draw 绘制以 root 为根的整棵节点树
func (s *RenderSystem) Draw(screen *ebiten.Image, root ecs.EntityID) {
	s.drawNode(screen, root, 0, 0, 1)
}

func (s *RenderSystem) drawNode(screen *ebiten.Image, id ecs.EntityID, originX, originY, parentAlpha float64) {
	if !s.entityManager.IsAlive(id) {
		return
	}

	x, y := originX, originY
	if pos, ok := ecs.GetComponent[*components.PositionComponent](s.entityManager, id); ok {
		x += pos.X
		y += pos.Y
	}

	alpha := parentAlpha
	if op, ok := ecs.GetComponent[*components.OpacityComponent](s.entityManager, id); ok {
		alpha *= clampAlpha(op.Alpha)
	}
	// 完全透明的节点连同子树一起跳过
	if alpha <= 0 {
		return
	}

	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](s.entityManager, id); ok {
		s.drawSprite(screen, id, sprite, x, y, alpha)
	} else if shape, ok := ecs.GetComponent[*components.ShapeComponent](s.entityManager, id); ok {
		s.drawShape(screen, id, shape, x, y, alpha)
	}
	if light, ok := ecs.GetComponent[*components.LightComponent](s.entityManager, id); ok && light.Enabled {
		s.drawLight(screen, light, alpha)
	}

	for _, child := range utils.SortedChildren(s.entityManager, id) {
		s.drawNode(screen, child, x, y, alpha)
	}
}

// spriteImage 返回精灵的图片，第一次使用时加载并缓存到组件上
func (s *RenderSystem) spriteImage(sprite *components.SpriteComponent) *ebiten.Image {
	if sprite.Image == nil {
		sprite.Image = s.resourceManager.Image(sprite.ImageName)
	}
	return sprite.Image
}

func (s *RenderSystem) drawSprite(screen *ebiten.Image, id ecs.EntityID, sprite *components.SpriteComponent, x, y, alpha float64) {
	img := s.spriteImage(sprite)
	bounds := img.Bounds()
	iw, ih := float64(bounds.Dx()), float64(bounds.Dy())
	if iw == 0 || ih == 0 {
		return
	}
	w, h := utils.NodeSize(s.entityManager, id)

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(-iw/2, -ih/2)
	op.GeoM.Scale(w/iw, h/ih)
	// Rotation 为逆时针弧度，屏幕坐标 Y 轴向下，所以取反
	op.GeoM.Rotate(-sprite.Rotation)
	op.GeoM.Translate(x, y)
	op.Filter = ebiten.FilterNearest

	if tint, ok := ecs.GetComponent[*components.TintComponent](s.entityManager, id); ok && tint.BlendFactor > 0 {
		r, g, b := tintScale(tint.Color, tint.BlendFactor)
		op.ColorScale.Scale(float32(r), float32(g), float32(b), 1)
	}
	op.ColorScale.ScaleAlpha(float32(alpha))

	screen.DrawImage(img, op)
}

func (s *RenderSystem) drawShape(screen *ebiten.Image, id ecs.EntityID, shape *components.ShapeComponent, x, y, alpha float64) {
	w, h := utils.NodeSize(s.entityManager, id)
	vector.DrawFilledRect(
		screen,
		float32(x-w/2), float32(y-h/2),
		float32(w), float32(h),
		premultiply(shape.Color, alpha),
		false,
	)
}

// drawLight 光源开启时以加法混合叠加一层全屏亮色
// 衰减越小照亮范围越大，闪光越强
func (s *RenderSystem) drawLight(screen *ebiten.Image, light *components.LightComponent, alpha float64) {
	intensity := lightIntensity(light.Falloff) * alpha
	if intensity <= 0 {
		return
	}
	if s.whitePixel == nil {
		s.whitePixel = ebiten.NewImage(1, 1)
		s.whitePixel.Fill(color.White)
	}

	bounds := screen.Bounds()
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(bounds.Dx()), float64(bounds.Dy()))
	op.ColorScale.ScaleWithColor(light.Color)
	op.ColorScale.ScaleAlpha(float32(intensity))
	op.Blend = ebiten.BlendLighter
	screen.DrawImage(s.whitePixel, op)
}

// clampAlpha 不透明度在逻辑层不做限制（遮罩可以叠加超过 1），绘制时截断到 [0, 1]
func clampAlpha(alpha float64) float64 {
	return utils.Clamp01(alpha)
}

// tintScale 计算着色后的颜色缩放
// factor=0 保持原色，factor=1 完全替换为着色颜色的明度
func tintScale(c color.RGBA, factor float64) (float64, float64, float64) {
	f := utils.Clamp01(factor)
	mix := func(v uint8) float64 {
		return (1 - f) + f*float64(v)/255
	}
	return mix(c.R), mix(c.G), mix(c.B)
}

// premultiply 把颜色乘上不透明度（ebiten 使用预乘 alpha）
func premultiply(c color.RGBA, alpha float64) color.RGBA {
	a := utils.Clamp01(alpha)
	return color.RGBA{
		R: uint8(float64(c.R)*a + 0.5),
		G: uint8(float64(c.G)*a + 0.5),
		B: uint8(float64(c.B)*a + 0.5),
		A: uint8(float64(c.A)*a + 0.5),
	}
}

func lightIntensity(falloff float64) float64 {
	return config.LightFlashIntensity * (1 - utils.Clamp01(falloff))
}
