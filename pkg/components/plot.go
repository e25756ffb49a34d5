package components

import "github.com/decker502/redsun/pkg/types"

// PlotComponent 农田地块
// 农场场景中每块地一个实体，按 Index 从左到右排列
type PlotComponent struct {
	Index    int
	Contents types.PlotContent
	Age      int
}
