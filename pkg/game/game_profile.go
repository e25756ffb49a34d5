package game

import (
	"fmt"
	"log"

	"github.com/quasilyte/gdata/v2"
	"gopkg.in/yaml.v3"

	"github.com/decker502/redsun/pkg/types"
)

// DefaultPlotCount 新存档的地块数量
const DefaultPlotCount = 5

// PlotData 单块农田的存档数据
type PlotData struct {
	Contents types.PlotContent `yaml:"contents"`
	Age      int               `yaml:"age"`
}

// ProfileData 玩家存档
type ProfileData struct {
	// CommittedMurder 过场动画是否已走到结局
	CommittedMurder bool `yaml:"committedMurder"`

	// Day 农场经过的天数
	Day int `yaml:"day"`

	// Plots 农田地块，从左到右
	Plots []PlotData `yaml:"plots"`
}

// DefaultProfileData 返回新存档：最左侧是房子，最右侧是拖拉机，中间为空地
func DefaultProfileData() *ProfileData {
	plots := make([]PlotData, DefaultPlotCount)
	for i := range plots {
		plots[i] = PlotData{Contents: types.PlotEmpty}
	}
	plots[0].Contents = types.PlotHouse
	plots[len(plots)-1].Contents = types.PlotTractor

	return &ProfileData{
		Day:   1,
		Plots: plots,
	}
}

// GameProfile 玩家存档管理器
//
// 存档以 YAML 形式保存在 gdata 对象属性中。
// gdataManager 为 nil 时进入降级模式：所有数据只存在于内存中，Save 不报错。
type GameProfile struct {
	gdataManager *gdata.Manager
	data         *ProfileData
}

// 存储路径常量
const (
	profileObject   = "profile"
	profileProperty = "main"
)

// NewGameProfile 创建存档管理器并尝试加载已有存档
//
// 加载失败不是致命错误：记录警告并使用新存档。
func NewGameProfile(gdataManager *gdata.Manager) *GameProfile {
	p := &GameProfile{
		gdataManager: gdataManager,
		data:         DefaultProfileData(),
	}

	if err := p.Load(); err != nil {
		log.Printf("[GameProfile] Warning: Failed to load profile: %v (using defaults)", err)
	}

	return p
}

// Load 从 gdata 加载存档
// 存档不存在或处于降级模式时使用新存档
func (p *GameProfile) Load() error {
	if p.gdataManager == nil {
		p.data = DefaultProfileData()
		return nil
	}

	if !p.gdataManager.ObjectPropExists(profileObject, profileProperty) {
		p.data = DefaultProfileData()
		return nil
	}

	raw, err := p.gdataManager.LoadObjectProp(profileObject, profileProperty)
	if err != nil {
		p.data = DefaultProfileData()
		return fmt.Errorf("failed to load profile: %w", err)
	}

	var loaded ProfileData
	if err := yaml.Unmarshal(raw, &loaded); err != nil {
		p.data = DefaultProfileData()
		return fmt.Errorf("failed to unmarshal profile: %w", err)
	}

	// 未知的地块内容回退为空地
	for i := range loaded.Plots {
		loaded.Plots[i].Contents = types.ParsePlotContent(string(loaded.Plots[i].Contents))
	}
	if len(loaded.Plots) == 0 {
		loaded.Plots = DefaultProfileData().Plots
	}

	p.data = &loaded
	log.Printf("[GameProfile] Profile loaded (day %d, committedMurder=%v)", loaded.Day, loaded.CommittedMurder)
	return nil
}

// Save 保存存档到 gdata
//
// 降级模式下返回 nil（不报错）
func (p *GameProfile) Save() error {
	if p.gdataManager == nil {
		return nil
	}

	raw, err := yaml.Marshal(p.data)
	if err != nil {
		return fmt.Errorf("failed to marshal profile: %w", err)
	}

	if err := p.gdataManager.SaveObjectProp(profileObject, profileProperty, raw); err != nil {
		return fmt.Errorf("failed to save profile: %w", err)
	}

	log.Printf("[GameProfile] Profile saved")
	return nil
}

// SetCommittedMurder 设置结局标记
// 注意：仅修改内存中的存档，需调用 Save() 方法持久化
func (p *GameProfile) SetCommittedMurder(committed bool) {
	p.data.CommittedMurder = committed
}

// CommittedMurder 返回结局标记
func (p *GameProfile) CommittedMurder() bool {
	return p.data.CommittedMurder
}

// Day 返回农场天数
func (p *GameProfile) Day() int {
	return p.data.Day
}

// Plots 返回地块列表的副本
func (p *GameProfile) Plots() []PlotData {
	plots := make([]PlotData, len(p.data.Plots))
	copy(plots, p.data.Plots)
	return plots
}

// SetPlotContents 修改指定地块的内容并重置其年龄
func (p *GameProfile) SetPlotContents(index int, contents types.PlotContent) error {
	if index < 0 || index >= len(p.data.Plots) {
		return fmt.Errorf("plot index %d out of range [0, %d)", index, len(p.data.Plots))
	}
	p.data.Plots[index] = PlotData{Contents: contents}
	return nil
}

// AdvanceDay 进入下一天，所有地块年龄加一
func (p *GameProfile) AdvanceDay() {
	p.data.Day++
	for i := range p.data.Plots {
		p.data.Plots[i].Age++
	}
}

// PlaceDeadBody 把尸体埋进第一块空地
//
// 已经有尸体或没有空地时不做任何修改。
// 返回尸体所在的地块索引，没有则返回 -1。
func (p *GameProfile) PlaceDeadBody() int {
	empty := -1
	for i, plot := range p.data.Plots {
		if plot.Contents == types.PlotDeadBody {
			return i
		}
		if empty < 0 && plot.Contents == types.PlotEmpty {
			empty = i
		}
	}
	if empty >= 0 {
		p.data.Plots[empty] = PlotData{Contents: types.PlotDeadBody}
	}
	return empty
}
