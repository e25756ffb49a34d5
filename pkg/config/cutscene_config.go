package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// CutsceneConfig 过场动画时间参数配置
//
// 所有时长单位为秒。未在 YAML 中出现的字段保留默认值。
//
// 配置文件位置: data/cutscene.yaml（可选）
type CutsceneConfig struct {
	// Transition 时刻之间的转场
	Transition TransitionConfig `yaml:"transition"`

	// Ambient 环境动画（雨、闪电、闪烁、震动）
	Ambient AmbientConfig `yaml:"ambient"`

	// Grab 抓草叉动画
	Grab GrabConfig `yaml:"grab"`

	// Stab 刺击动画与退出条件
	Stab StabConfig `yaml:"stab"`
}

// TransitionConfig 转场配置
type TransitionConfig struct {
	// CrossfadeDuration 时刻之间交叉淡入淡出时长
	CrossfadeDuration float64 `yaml:"crossfadeDuration"`

	// ExitDuration 切换到下一个场景的交叉淡化时长（比时刻转场更长）
	ExitDuration float64 `yaml:"exitDuration"`
}

// AmbientConfig 环境动画配置
type AmbientConfig struct {
	// RainInterval 雨滴生成间隔
	RainInterval float64 `yaml:"rainInterval"`
	// RainGravity 雨滴下落加速度（像素/秒²）
	RainGravity float64 `yaml:"rainGravity"`
	// RainLateralForce 雨滴横向加速度（像素/秒²）
	RainLateralForce float64 `yaml:"rainLateralForce"`
	// RainDropLifetime 雨滴最长存活时间
	RainDropLifetime float64 `yaml:"rainDropLifetime"`

	// BlinkDuration 颜色闪烁单程混合时长
	BlinkDuration float64 `yaml:"blinkDuration"`
	// BlinkFactor 颜色闪烁的最大混合系数
	BlinkFactor float64 `yaml:"blinkFactor"`

	// FlickerWait 闪电循环中的普通间隔
	FlickerWait float64 `yaml:"flickerWait"`
	// FlickerShortWait 闪电循环中的短间隔
	FlickerShortWait float64 `yaml:"flickerShortWait"`
	// FlickerLongWait 闪电循环末尾的长间隔
	FlickerLongWait float64 `yaml:"flickerLongWait"`
	// FlickerPulse 单次闪光持续时间
	FlickerPulse float64 `yaml:"flickerPulse"`

	// VibrateMove 床移动时长
	VibrateMove float64 `yaml:"vibrateMove"`
	// VibrateHold 床停顿时长
	VibrateHold float64 `yaml:"vibrateHold"`
}

// GrabConfig 抓草叉动画配置
type GrabConfig struct {
	// ReachDuration 手臂伸向草叉
	ReachDuration float64 `yaml:"reachDuration"`
	// ReturnDuration 手臂与草叉一起收回
	ReturnDuration float64 `yaml:"returnDuration"`
}

// StabConfig 刺击与退出条件配置
type StabConfig struct {
	// WeaponFadeIn 草叉淡入
	WeaponFadeIn float64 `yaml:"weaponFadeIn"`
	// StrokeDuration 刺入/刺出中缩放与位移各自的时长
	StrokeDuration float64 `yaml:"strokeDuration"`
	// StrokeShift 刺入/刺出的纵向位移
	StrokeShift float64 `yaml:"strokeShift"`
	// WoundFadeIn 伤口淡入
	WoundFadeIn float64 `yaml:"woundFadeIn"`
	// FearFadeOut 恐惧画面淡出
	FearFadeOut float64 `yaml:"fearFadeOut"`

	// OverlayIncrement 每次刺击遮罩增加的不透明度
	OverlayIncrement float64 `yaml:"overlayIncrement"`
	// OverlayFadeDuration 遮罩每次加深的时长
	OverlayFadeDuration float64 `yaml:"overlayFadeDuration"`

	// Threshold 触发退出的刺击次数
	Threshold int `yaml:"threshold"`
}

// DefaultCutsceneConfig 返回默认配置
func DefaultCutsceneConfig() *CutsceneConfig {
	return &CutsceneConfig{
		Transition: TransitionConfig{
			CrossfadeDuration: 1.0,
			ExitDuration:      5.0,
		},
		Ambient: AmbientConfig{
			RainInterval:     0.2,
			RainGravity:      600.0,
			RainLateralForce: 40.0,
			RainDropLifetime: 4.0,
			BlinkDuration:    0.6,
			BlinkFactor:      0.5,
			FlickerWait:      1.2,
			FlickerShortWait: 0.4,
			FlickerLongWait:  2.0,
			FlickerPulse:     0.06,
			VibrateMove:      0.1,
			VibrateHold:      1.0,
		},
		Grab: GrabConfig{
			ReachDuration:  1.0,
			ReturnDuration: 0.75,
		},
		Stab: StabConfig{
			WeaponFadeIn:        0.4,
			StrokeDuration:      0.3,
			StrokeShift:         10.0,
			WoundFadeIn:         1.0,
			FearFadeOut:         1.1,
			OverlayIncrement:    0.2,
			OverlayFadeDuration: 0.5,
			Threshold:           7,
		},
	}
}

// LoadCutsceneConfig 加载过场动画配置
//
// 在默认配置之上覆盖 YAML 中出现的字段。
//
// 参数:
//   - path: 配置文件路径（如 "data/cutscene.yaml"）
//
// 返回:
//   - *CutsceneConfig: 加载成功后的配置结构
//   - error: 读取、解析或验证失败时返回错误
func LoadCutsceneConfig(path string) (*CutsceneConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read cutscene config: %w", err)
	}

	return ParseCutsceneConfig(data)
}

// ParseCutsceneConfig 从 YAML 数据解析配置
func ParseCutsceneConfig(data []byte) (*CutsceneConfig, error) {
	config := DefaultCutsceneConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse cutscene config: %w", err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid cutscene config: %w", err)
	}

	return config, nil
}

// Validate 验证配置有效性
//
// 时长不能为负（0 表示瞬间完成），循环动画的周期必须为正，
// 否则一帧之内会无限循环。刺击阈值至少为 1。
func (c *CutsceneConfig) Validate() error {
	durations := map[string]float64{
		"transition.crossfadeDuration": c.Transition.CrossfadeDuration,
		"transition.exitDuration":      c.Transition.ExitDuration,
		"grab.reachDuration":           c.Grab.ReachDuration,
		"grab.returnDuration":          c.Grab.ReturnDuration,
		"stab.weaponFadeIn":            c.Stab.WeaponFadeIn,
		"stab.strokeDuration":          c.Stab.StrokeDuration,
		"stab.woundFadeIn":             c.Stab.WoundFadeIn,
		"stab.fearFadeOut":             c.Stab.FearFadeOut,
		"stab.overlayFadeDuration":     c.Stab.OverlayFadeDuration,
		"ambient.rainDropLifetime":     c.Ambient.RainDropLifetime,
		"ambient.flickerPulse":         c.Ambient.FlickerPulse,
	}
	for name, d := range durations {
		if d < 0 {
			return fmt.Errorf("%s must be >= 0, got %.3f", name, d)
		}
	}

	loops := map[string]float64{
		"ambient.rainInterval":  c.Ambient.RainInterval,
		"ambient.blinkDuration": c.Ambient.BlinkDuration,
		"ambient.flickerWait":   c.Ambient.FlickerWait,
		"ambient.vibrateHold":   c.Ambient.VibrateHold,
	}
	for name, d := range loops {
		if d <= 0 {
			return fmt.Errorf("%s must be > 0 for looping animations, got %.3f", name, d)
		}
	}

	if c.Ambient.BlinkFactor < 0 || c.Ambient.BlinkFactor > 1 {
		return fmt.Errorf("ambient.blinkFactor must be within [0, 1], got %.3f", c.Ambient.BlinkFactor)
	}

	if c.Stab.Threshold < 1 {
		return fmt.Errorf("stab.threshold must be >= 1, got %d", c.Stab.Threshold)
	}

	return nil
}
