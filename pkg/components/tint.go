package components

import "image/color"

// TintComponent 着色（颜色混合）
// BlendFactor 为 0 时不着色，为 1 时完全变为 Color
type TintComponent struct {
	Color       color.RGBA
	BlendFactor float64
}
