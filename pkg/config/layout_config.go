package config

// 布局配置常量
// 本文件定义了过场动画和农场场景的视口尺寸、精灵基础尺寸和绘制层级

// Viewport Configuration (视口配置)
const (
	// GameWindowWidth 逻辑屏幕宽度，独立于实际窗口大小
	GameWindowWidth = 1024

	// GameWindowHeight 逻辑屏幕高度
	GameWindowHeight = 768
)

// SpriteSize 精灵图片的基础尺寸（像素画原始尺寸，缩放前）
type SpriteSize struct {
	Width  float64
	Height float64
}

// 精灵基础尺寸
// 像素画素材很小，在时刻构建时按倍数放大（setScale 3~8）
var SpriteSizes = map[string]SpriteSize{
	"House":            {Width: 48, Height: 48},
	"Bed":              {Width: 40, Height: 24},
	"Pitchfork":        {Width: 16, Height: 40},
	"Reachingarm":      {Width: 40, Height: 20},
	"PitchforkForward": {Width: 32, Height: 32},
	"Raindrop":         {Width: 4, Height: 16},
}

// GetSpriteSize 返回精灵的基础尺寸
// 未登记的图片返回 ok=false，调用方需要显式指定尺寸
func GetSpriteSize(name string) (SpriteSize, bool) {
	size, ok := SpriteSizes[name]
	return size, ok
}

// Z Order (绘制层级)
// 同一父节点下 ZIndex 大的后绘制，相同 ZIndex 按添加顺序
const (
	ZBackground = 0
	ZForeground = 1
	ZOverlay    = 100
)

// Moment Layout (时刻布局)
const (
	// DistantGroundHeight 远景地面高度
	DistantGroundHeight = 300.0
	// CloseGroundHeight 近景地面高度
	CloseGroundHeight = 250.0

	// DistantHouseScale 远景房子放大倍数
	DistantHouseScale = 3.0
	// CloseHouseScale 近景房子放大倍数
	CloseHouseScale = 4.0
	// BedScale 床放大倍数
	BedScale = 4.0
	// ToolScale 草叉放大倍数
	ToolScale = 7.0
	// ArmScale 手臂放大倍数
	ArmScale = 4.0
	// WeaponScale 刺击草叉的初始放大倍数（刺出后恢复到此值）
	WeaponScale = 8.0
	// WeaponStabInScale 刺入时缩小到的倍数
	WeaponStabInScale = 4.0

	// BedRestOffsetX/BedVibrateOffsetX 床来回震动的两个水平位置（相对视口中心）
	BedRestOffsetX    = -10.0
	BedVibrateOffsetX = -20.0

	// ArmStartOffset 手臂初始位置在视口左下角外侧的距离
	ArmStartOffset = 25.0

	// RainDropScale 雨滴缩放
	RainDropScale = 0.5
	// RainDropRotation 雨滴倾斜角度（弧度）
	RainDropRotation = 0.185
	// RainSpawnShiftX 雨滴横向生成范围相对雨层的左移量
	RainSpawnShiftX = 300.0

	// LightFlashIntensity 衰减为 0 的光源开启时叠加的最大亮度
	LightFlashIntensity = 0.3

	// 光源衰减：远景月光几乎不照亮，近景稍亮，闪电照亮整个画面
	DistantLightFalloff = 1.0
	CloseLightFalloff   = 0.5
	LightningFalloff    = 0.3
)

// Farm Layout (农场布局)
const (
	// PlotFieldName 地块内容色块的节点名称
	PlotFieldName = "field"

	// FarmDayDuration 农场中一天的时长（秒），每过一天所有地块年龄加一
	FarmDayDuration = 60.0

	// FarmLabelX/FarmLabelY 天数标签位置（文字左上角）
	FarmLabelX = 16.0
	FarmLabelY = 16.0
)
