package scenes

import (
	"fmt"
	"image/color"
	"log"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/basicfont"

	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/entities"
	"github.com/decker502/redsun/pkg/game"
	"github.com/decker502/redsun/pkg/systems"
	"github.com/decker502/redsun/pkg/types"
	"github.com/decker502/redsun/pkg/utils"
)

// farmSkyColor 农场背景色（白天）
var farmSkyColor = color.RGBA{R: 135, G: 180, B: 220, A: 255}

// FarmScene 农场场景
//
// 一排农田地块，内容和年龄来自存档。过场动画走到结局后，
// 第一块空地里会出现尸体。点击空地种下玉米；每过一天所有地块年龄加一。
type FarmScene struct {
	entityManager *ecs.EntityManager
	renderSystem  *systems.RenderSystem
	profile       *game.GameProfile

	width  float64
	height float64

	world ecs.EntityID
	plots []ecs.EntityID

	// labelFace 天数标签字体
	labelFace text.Face

	// dayTimer 当天已经过的时间
	dayTimer float64
}

// NewFarmScene 创建农场场景
//
// 参数:
//   - rm: 资源管理器
//   - profile: 玩家存档（地块数据来源，修改后会保存）
//   - width, height: 视口尺寸
func NewFarmScene(rm *game.ResourceManager, profile *game.GameProfile, width, height float64) *FarmScene {
	em := ecs.NewEntityManager()
	s := &FarmScene{
		entityManager: em,
		renderSystem:  systems.NewRenderSystem(em, rm),
		profile:       profile,
		width:         width,
		height:        height,
		labelFace:     text.NewGoXFace(basicfont.Face7x13),
	}

	if profile.CommittedMurder() {
		if idx := profile.PlaceDeadBody(); idx >= 0 {
			log.Printf("[FarmScene] 尸体埋在第 %d 块地", idx)
		}
	}

	s.world = entities.NewContainer(em, ecs.InvalidEntity, 0, 0)
	s.buildPlots()

	log.Printf("[FarmScene] 场景创建完成，第 %d 天，%d 块地", profile.Day(), len(s.plots))
	return s
}

// buildPlots 按存档创建地块，等宽排列
func (s *FarmScene) buildPlots() {
	data := s.profile.Plots()
	if len(data) == 0 {
		return
	}
	plotWidth := s.width / float64(len(data))

	s.plots = make([]ecs.EntityID, len(data))
	for i, plot := range data {
		x := plotWidth * (float64(i) + 0.5)
		s.plots[i] = entities.NewPlot(s.entityManager, s.world, i, plot.Contents, plot.Age,
			x, s.height/2, plotWidth, s.height)
	}
}

// refreshPlots 用存档数据刷新所有地块
func (s *FarmScene) refreshPlots() {
	for i, plot := range s.profile.Plots() {
		if i < len(s.plots) {
			entities.UpdatePlotContents(s.entityManager, s.plots[i], plot.Contents, plot.Age)
		}
	}
}

// Update 处理点击并推进时间
func (s *FarmScene) Update(deltaTime float64) {
	s.HandleTaps(utils.JustPressedPoints())
	s.advance(deltaTime)
}

func (s *FarmScene) advance(deltaTime float64) {
	s.dayTimer += deltaTime
	for s.dayTimer >= config.FarmDayDuration {
		s.dayTimer -= config.FarmDayDuration
		s.profile.AdvanceDay()
		s.refreshPlots()
		s.save()
		log.Printf("[FarmScene] 进入第 %d 天", s.profile.Day())
	}
	s.entityManager.RemoveMarkedEntities()
}

// HandleTaps 点击空地种下玉米
func (s *FarmScene) HandleTaps(points []utils.Point) {
	for _, p := range points {
		idx := s.plotAt(p)
		if idx < 0 {
			continue
		}
		pc, ok := ecs.GetComponent[*components.PlotComponent](s.entityManager, s.plots[idx])
		if !ok || pc.Contents != types.PlotEmpty {
			continue
		}
		if err := s.profile.SetPlotContents(idx, types.PlotCorn); err != nil {
			log.Printf("[FarmScene] 警告: %v", err)
			continue
		}
		entities.UpdatePlotContents(s.entityManager, s.plots[idx], types.PlotCorn, 0)
		s.save()
	}
}

// plotAt 返回点击所在的地块索引，不在任何地块上返回 -1
func (s *FarmScene) plotAt(p utils.Point) int {
	if len(s.plots) == 0 || p.X < 0 || p.X >= s.width || p.Y < 0 || p.Y >= s.height {
		return -1
	}
	return int(p.X / (s.width / float64(len(s.plots))))
}

func (s *FarmScene) save() {
	if err := s.profile.Save(); err != nil {
		log.Printf("[FarmScene] 警告: 保存存档失败: %v", err)
	}
}

// Draw 绘制场景
func (s *FarmScene) Draw(screen *ebiten.Image) {
	screen.Fill(farmSkyColor)
	s.renderSystem.Draw(screen, s.world)
	s.drawDayLabel(screen)
}

// drawDayLabel 左上角显示当前天数（带阴影）
func (s *FarmScene) drawDayLabel(screen *ebiten.Image) {
	label := s.dayLabel()

	shadowOp := &text.DrawOptions{}
	shadowOp.GeoM.Translate(config.FarmLabelX+1, config.FarmLabelY+1)
	shadowOp.ColorScale.ScaleWithColor(color.RGBA{0, 0, 0, 180})
	text.Draw(screen, label, s.labelFace, shadowOp)

	op := &text.DrawOptions{}
	op.GeoM.Translate(config.FarmLabelX, config.FarmLabelY)
	op.ColorScale.ScaleWithColor(color.White)
	text.Draw(screen, label, s.labelFace, op)
}

func (s *FarmScene) dayLabel() string {
	return fmt.Sprintf("Day %d", s.profile.Day())
}
