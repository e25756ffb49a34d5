package scenes

import (
	"image/color"
	"log"
	"math/rand/v2"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/entities"
	"github.com/decker502/redsun/pkg/game"
	"github.com/decker502/redsun/pkg/systems"
	"github.com/decker502/redsun/pkg/types"
	"github.com/decker502/redsun/pkg/utils"
)

// MurderScene 谋杀过场动画
//
// 玩家点击画面推进一系列时刻：
// 远处的房子 → 近处的房子 → 窗户 → 抓草叉 → 关着的门 → 打开的门 → 刺击。
// 每个时刻是一棵独立的视觉子树（由 MomentFactory 构建），
// 时刻之间交叉淡化，淡化期间转场锁拒绝新的转场请求。
// 刺击次数达到阈值后写入存档并切换到下一个场景。
//
// 文件组织：
//   - murder_scene.go: 场景结构、构造、Update/Draw
//   - murder_scene_transition.go: 时刻转场
//   - murder_scene_input.go: 点击分发与抓草叉
//   - murder_scene_stab.go: 刺击、渐暗遮罩与退出
type MurderScene struct {
	entityManager  *ecs.EntityManager
	actionSystem   *systems.ActionSystem
	physicsSystem  *systems.PhysicsSystem
	lifetimeSystem *systems.LifetimeSystem
	renderSystem   *systems.RenderSystem
	momentFactory  *entities.MomentFactory

	config *config.CutsceneConfig
	width  float64
	height float64

	// 外部协作者
	profile   GameProfile
	switcher  game.SceneSwitcher
	nextScene NextSceneFactory

	// world 场景根节点，时刻视觉和渐暗遮罩都挂在它下面
	world ecs.EntityID

	// 场景状态
	currentMoment    types.Moment
	currentVisual    *entities.MomentVisual
	transitionLocked bool
	stabCount        int

	// overlay 渐暗遮罩，第一次刺击时创建
	overlay ecs.EntityID
	// grabbing 抓草叉动画进行中
	grabbing bool
	// exited 已触发结局，之后忽略所有输入
	exited bool
}

// NewMurderScene 创建谋杀过场动画场景
//
// 参数:
//   - rm: 资源管理器（绘制时按名称加载图片）
//   - switcher: 结局时用于切换场景
//   - profile: 结局时写入并保存的存档
//   - cfg: 时间参数，nil 表示使用默认值
//   - nextScene: 结局后进入的场景
func NewMurderScene(rm *game.ResourceManager, switcher game.SceneSwitcher, profile GameProfile,
	cfg *config.CutsceneConfig, nextScene NextSceneFactory) *MurderScene {
	rng := rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	return newMurderScene(rm, switcher, profile, cfg, nextScene,
		config.GameWindowWidth, config.GameWindowHeight, rng)
}

func newMurderScene(rm *game.ResourceManager, switcher game.SceneSwitcher, profile GameProfile,
	cfg *config.CutsceneConfig, nextScene NextSceneFactory,
	width, height float64, rng *rand.Rand) *MurderScene {

	if cfg == nil {
		cfg = config.DefaultCutsceneConfig()
	}

	em := ecs.NewEntityManager()
	actionSystem := systems.NewActionSystem(em)

	s := &MurderScene{
		entityManager:  em,
		actionSystem:   actionSystem,
		physicsSystem:  systems.NewPhysicsSystem(em),
		lifetimeSystem: systems.NewLifetimeSystem(em),
		renderSystem:   systems.NewRenderSystem(em, rm),
		momentFactory:  entities.NewMomentFactory(em, actionSystem, cfg, width, height, rng),
		config:         cfg,
		width:          width,
		height:         height,
		profile:        profile,
		switcher:       switcher,
		nextScene:      nextScene,
		currentMoment:  types.MomentHouseDistant,
	}

	// 第一个时刻直接构建并挂载，不经过转场
	s.world = entities.NewContainer(em, ecs.InvalidEntity, 0, 0)
	s.currentVisual = s.momentFactory.Build(s.currentMoment)
	utils.AddChild(em, s.world, s.currentVisual.Root)

	log.Printf("[MurderScene] 场景创建完成 (%.0fx%.0f)，初始时刻: %s", width, height, s.currentMoment)
	return s
}

// Update 处理输入并推进所有动画
func (s *MurderScene) Update(deltaTime float64) {
	if !s.exited {
		s.HandleTaps(utils.JustPressedPoints())
	}
	s.advance(deltaTime)
}

// advance 推进动画、物理和生命周期，并清理本帧删除的实体
func (s *MurderScene) advance(deltaTime float64) {
	s.actionSystem.Update(deltaTime)
	s.physicsSystem.Update(deltaTime)
	s.lifetimeSystem.Update(deltaTime)
	s.entityManager.RemoveMarkedEntities()
}

// Draw 绘制场景
func (s *MurderScene) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	s.renderSystem.Draw(screen, s.world)
}

// CurrentMoment 返回当前时刻
func (s *MurderScene) CurrentMoment() types.Moment {
	return s.currentMoment
}

// TransitionLocked 是否正在转场
func (s *MurderScene) TransitionLocked() bool {
	return s.transitionLocked
}

// StabCount 返回刺击次数
func (s *MurderScene) StabCount() int {
	return s.stabCount
}

// Exited 是否已触发结局
func (s *MurderScene) Exited() bool {
	return s.exited
}
