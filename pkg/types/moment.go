// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

// Moment 过场动画中的一个叙事时刻
//
// 时刻之间没有内在顺序，顺序只由点击触发的转场决定：
// HouseDistant → HouseClose → Window → ToolGrab → DoorClosed → DoorOpen → Stabbing
type Moment int

const (
	// MomentHouseDistant 远处的房子（雨夜、闪电）
	MomentHouseDistant Moment = iota
	// MomentHouseClose 近处的房子
	MomentHouseClose
	// MomentWindow 窗户里的床
	MomentWindow
	// MomentToolGrab 抓起草叉
	MomentToolGrab
	// MomentDoorClosed 关着的门
	MomentDoorClosed
	// MomentDoorOpen 打开的门
	MomentDoorOpen
	// MomentStabbing 反复刺击
	MomentStabbing
)

// AllMoments 按叙事顺序列出所有时刻
var AllMoments = []Moment{
	MomentHouseDistant,
	MomentHouseClose,
	MomentWindow,
	MomentToolGrab,
	MomentDoorClosed,
	MomentDoorOpen,
	MomentStabbing,
}

// String 返回时刻的字符串表示（用于日志）
func (m Moment) String() string {
	switch m {
	case MomentHouseDistant:
		return "house_distant"
	case MomentHouseClose:
		return "house_close"
	case MomentWindow:
		return "window"
	case MomentToolGrab:
		return "tool_grab"
	case MomentDoorClosed:
		return "door_closed"
	case MomentDoorOpen:
		return "door_open"
	case MomentStabbing:
		return "stabbing"
	default:
		return "unknown"
	}
}
