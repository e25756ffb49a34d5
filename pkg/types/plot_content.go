package types

// PlotContent 农田地块上的内容
// 以字符串形式存档，未知值读取时回退为 PlotEmpty
type PlotContent string

const (
	PlotEmpty    PlotContent = "Empty"
	PlotCorn     PlotContent = "Corn"
	PlotWheat    PlotContent = "Wheat"
	PlotWindmill PlotContent = "Windmill"
	PlotDeadBody PlotContent = "DeadBody"
	PlotHouse    PlotContent = "House"   // 最左侧
	PlotTractor  PlotContent = "Tractor" // 最右侧
)

// ParsePlotContent 解析存档中的地块内容
func ParsePlotContent(s string) PlotContent {
	switch c := PlotContent(s); c {
	case PlotEmpty, PlotCorn, PlotWheat, PlotWindmill, PlotDeadBody, PlotHouse, PlotTractor:
		return c
	default:
		return PlotEmpty
	}
}
