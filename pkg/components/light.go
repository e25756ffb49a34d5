package components

import "image/color"

// LightComponent 点光源
//
// 光照计算由渲染层近似：启用时在光源周围叠加一层高亮。
// 闪电效果通过动画反复开关 Enabled 实现。
type LightComponent struct {
	Color   color.RGBA
	Falloff float64 // 衰减系数，越小照亮范围越大
	Enabled bool
}
