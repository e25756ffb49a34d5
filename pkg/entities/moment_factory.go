package entities

import (
	"fmt"
	"image/color"
	"math/rand/v2"
	"slices"

	"github.com/decker502/redsun/pkg/actions"
	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/types"
)

// 可点击的命名节点
const (
	NodeHouse  = "house"
	NodeBed    = "bed"
	NodeTool   = "tool"
	NodeArm    = "arm"
	NodeFear   = "fear"
	NodeWound  = "wound"
	NodeWeapon = "weapon"
)

var (
	// houseBlinkColor 房子不祥的灰色脉动
	houseBlinkColor = color.RGBA{R: 128, G: 128, B: 128, A: 255}
	// groundBlinkColor 抓草叉时地面的红色脉动
	groundBlinkColor = color.RGBA{R: 255, A: 255}
)

// MomentVisual 一个时刻的视觉子树
//
// Root 是子树根节点（构建时尚未挂到场景上），named 记录可点击的命名节点。
// 点击检测只查询当前时刻的 MomentVisual，不遍历场景树，
// 因此转场时仍在淡出的旧时刻不会被误点中。
type MomentVisual struct {
	Moment types.Moment
	Root   ecs.EntityID
	named  map[string]ecs.EntityID
}

// MustNode 查找命名节点，不存在时 panic
// 交互逻辑与当前时刻的视觉不一致属于程序错误，不是可恢复的运行时状况
func (v *MomentVisual) MustNode(name string) ecs.EntityID {
	id, ok := v.named[name]
	if !ok {
		panic(fmt.Sprintf("moment %s has no node named %q", v.Moment, name))
	}
	return id
}

// Names 返回所有命名节点名称（排序后）
func (v *MomentVisual) Names() []string {
	names := make([]string, 0, len(v.named))
	for name := range v.named {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// MomentFactory 构建各个时刻的视觉子树
//
// 构建函数只创建节点并启动该时刻自带的环境动画（雨、闪电、闪烁、震动），
// 不负责转场。布局以视口尺寸为准，坐标为屏幕坐标（Y 轴向下）。
type MomentFactory struct {
	em     *ecs.EntityManager
	runner ActionRunner
	cfg    *config.CutsceneConfig
	width  float64
	height float64
	rng    *rand.Rand
}

// NewMomentFactory 创建时刻工厂
//
// 参数:
//   - runner: 启动环境动画的动作系统
//   - cfg: 时间参数
//   - width, height: 视口尺寸
//   - rng: 雨滴位置的随机源
func NewMomentFactory(em *ecs.EntityManager, runner ActionRunner, cfg *config.CutsceneConfig,
	width, height float64, rng *rand.Rand) *MomentFactory {
	return &MomentFactory{
		em:     em,
		runner: runner,
		cfg:    cfg,
		width:  width,
		height: height,
		rng:    rng,
	}
}

// Build 构建指定时刻的视觉子树，返回的根节点不透明度为 1、尚未挂到场景上
func (f *MomentFactory) Build(moment types.Moment) *MomentVisual {
	v := &MomentVisual{
		Moment: moment,
		Root:   NewContainer(f.em, ecs.InvalidEntity, 0, 0),
		named:  make(map[string]ecs.EntityID),
	}

	switch moment {
	case types.MomentHouseDistant:
		f.buildHouseDistant(v)
	case types.MomentHouseClose:
		f.buildHouseClose(v)
	case types.MomentWindow:
		f.buildWindow(v)
	case types.MomentToolGrab:
		f.buildToolGrab(v)
	case types.MomentDoorClosed:
		f.buildBackdrop(v, "DoorClosed")
	case types.MomentDoorOpen:
		f.buildBackdrop(v, "DoorOpen")
	case types.MomentStabbing:
		f.buildStabbing(v)
	default:
		panic(fmt.Sprintf("unknown moment %d", int(moment)))
	}
	return v
}

// --- 共享布局 ---

// backdrop 以视口中心为锚点的背景图，尺寸为视口的倍数
func (f *MomentFactory) backdrop(v *MomentVisual, imageName string, x, y, widthMul, heightMul float64) ecs.EntityID {
	return NewSizedSprite(f.em, v.Root, imageName, x, y, f.width*widthMul, f.height*heightMul)
}

// ground 贴在视口底部的地面条，centerY 为地面中心到视口底边的距离
func (f *MomentFactory) ground(v *MomentVisual, width, height, centerY float64) ecs.EntityID {
	id := NewSizedSprite(f.em, v.Root, "GroundNight", f.width/2, f.height-centerY, width, height)
	SetZIndex(f.em, id, config.ZForeground)
	return id
}

// named 创建命名前景精灵
func (f *MomentFactory) named(v *MomentVisual, name, imageName string, x, y, scale float64) ecs.EntityID {
	id := NewSprite(f.em, v.Root, imageName, x, y)
	SetScale(f.em, id, scale)
	SetZIndex(f.em, id, config.ZForeground)
	SetName(f.em, id, name)
	v.named[name] = id
	return id
}

// stormy 雨夜：闪电高亮背景、闪电光源和雨层
func (f *MomentFactory) stormy(v *MomentVisual, lightY float64) {
	ambient := f.cfg.Ambient
	backing := f.backdrop(v, "BackgroundNightLightning", f.width/2, lightY, 4, 1)
	NewLightningFlicker(f.em, f.runner, v.Root, backing, f.width/2, lightY, ambient)
	NewRainLayer(f.em, f.runner, v.Root, ambient, f.width, f.height, f.rng)
}

func (f *MomentFactory) blink(id ecs.EntityID, c color.RGBA) {
	f.runner.Run(id, actions.ColorBlink(c, f.cfg.Ambient.BlinkFactor, f.cfg.Ambient.BlinkDuration), nil)
}

// --- 各时刻 ---

func (f *MomentFactory) buildHouseDistant(v *MomentVisual) {
	f.backdrop(v, "BackgroundNight", f.width/2, f.height/2, 1, 1)
	NewLight(f.em, v.Root, f.width/2, f.height/2, config.DistantLightFalloff, true)
	f.stormy(v, f.height/2)

	f.ground(v, f.width*2, config.DistantGroundHeight, 0)
	house := f.named(v, NodeHouse, "House", f.width-20, f.height-config.DistantGroundHeight/2, config.DistantHouseScale)
	f.blink(house, houseBlinkColor)
}

func (f *MomentFactory) buildHouseClose(v *MomentVisual) {
	f.backdrop(v, "BackgroundNight", f.width/2, f.height/2, 2, 1)
	NewLight(f.em, v.Root, f.width/2, 0, config.CloseLightFalloff, true)
	f.stormy(v, 0)

	f.ground(v, f.width, config.CloseGroundHeight, config.CloseGroundHeight/2)
	house := f.named(v, NodeHouse, "House", f.width/2, f.height-config.CloseGroundHeight, config.CloseHouseScale)
	f.blink(house, houseBlinkColor)
}

func (f *MomentFactory) buildWindow(v *MomentVisual) {
	f.backdrop(v, "WindowView", f.width/2, f.height/2, 1, 1)

	restX := f.width/2 + config.BedRestOffsetX
	shakeX := f.width/2 + config.BedVibrateOffsetX
	y := f.height / 2
	bed := f.named(v, NodeBed, "Bed", restX, y, config.BedScale)

	ambient := f.cfg.Ambient
	f.runner.Run(bed, actions.Vibrate(restX, y, shakeX, y, ambient.VibrateMove, ambient.VibrateHold), nil)
}

func (f *MomentFactory) buildToolGrab(v *MomentVisual) {
	background := f.backdrop(v, "GroundNight", f.width/2, f.height/2, 3, 3)
	f.blink(background, groundBlinkColor)

	f.named(v, NodeTool, "Pitchfork", f.width/2, f.height/2, config.ToolScale)
	// 手臂从视口左下角外侧伸进来
	f.named(v, NodeArm, "Reachingarm", -config.ArmStartOffset, f.height+config.ArmStartOffset, config.ArmScale)
}

func (f *MomentFactory) buildBackdrop(v *MomentVisual, imageName string) {
	f.backdrop(v, imageName, f.width/2, f.height/2, 1, 1)
}

func (f *MomentFactory) buildStabbing(v *MomentVisual) {
	cx, cy := f.width/2, f.height/2

	fear := f.backdrop(v, "Fear", cx, cy, 1, 1)
	SetName(f.em, fear, NodeFear)
	v.named[NodeFear] = fear

	wound := f.backdrop(v, "Stabbing", cx, cy, 1, 1)
	SetName(f.em, wound, NodeWound)
	SetAlpha(f.em, wound, 0)
	v.named[NodeWound] = wound

	weapon := f.named(v, NodeWeapon, "PitchforkForward", cx, cy, config.WeaponScale)
	SetAlpha(f.em, weapon, 0)
}
