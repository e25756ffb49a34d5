// Package app 提供游戏应用的核心包装器
//
// 该包将初始化逻辑从 main 包提取出来：日志、配置、资源、存档和场景管理器。
package app

import (
	"image/color"
	"io"
	"log"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/quasilyte/gdata/v2"

	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/game"
	"github.com/decker502/redsun/pkg/scenes"
)

// AppName gdata 存储目录名
const AppName = "redsun"

// Config 定义应用启动配置
type Config struct {
	// Verbose 启用详细日志输出
	Verbose bool
	// ConfigPath 过场动画时间参数文件，为空或加载失败时使用默认值
	ConfigPath string
	// AssetsDir 资源根目录（images/ 和 config/images.yaml 所在目录）
	AssetsDir string
}

// App 是游戏应用的核心包装器，实现 ebiten.Game 接口
type App struct {
	sceneManager    *game.SceneManager
	settingsManager *game.SettingsManager
}

// NewApp 创建并初始化游戏应用
//
// 所有外部资源都是可选的：配置、图片清单、存档目录缺失时记录警告并降级运行。
func NewApp(cfg Config) (*App, error) {
	// 配置日志输出
	if !cfg.Verbose {
		log.SetOutput(io.Discard)
		log.SetFlags(0)
	}

	cutsceneConfig := loadCutsceneConfig(cfg.ConfigPath)

	// gdata 打开失败时存档只保存在内存中
	gdataManager, err := gdata.Open(gdata.Config{AppName: AppName})
	if err != nil {
		log.Printf("[App] Warning: gdata unavailable: %v (progress will not be saved)", err)
		gdataManager = nil
	}

	resourceManager := game.NewResourceManager(cfg.AssetsDir)
	imagesConfig := filepath.Join(cfg.AssetsDir, "config", "images.yaml")
	if err := resourceManager.LoadResourceConfig(imagesConfig); err != nil {
		log.Printf("[App] Warning: %v (using images/<name>.png)", err)
	}

	settingsManager := game.NewSettingsManager(gdataManager)
	if settingsManager.GetSettings().Fullscreen {
		ebiten.SetFullscreen(true)
	}

	profile := game.NewGameProfile(gdataManager)

	sceneManager := game.NewSceneManager()
	nextScene := func(width, height float64) scenes.Scene {
		return scenes.NewFarmScene(resourceManager, profile, width, height)
	}
	sceneManager.SwitchTo(scenes.NewMurderScene(resourceManager, sceneManager, profile, cutsceneConfig, nextScene))

	log.Printf("[App] 初始化完成 (assets=%s)", cfg.AssetsDir)

	return &App{
		sceneManager:    sceneManager,
		settingsManager: settingsManager,
	}, nil
}

// loadCutsceneConfig 加载时间参数，失败时回退到默认值
func loadCutsceneConfig(path string) *config.CutsceneConfig {
	if path == "" {
		return config.DefaultCutsceneConfig()
	}
	cfg, err := config.LoadCutsceneConfig(path)
	if err != nil {
		log.Printf("[Config] Warning: %v (using defaults)", err)
		return config.DefaultCutsceneConfig()
	}
	log.Printf("[Config] 加载过场动画配置: %s", path)
	return cfg
}

// Update 更新游戏逻辑
// 每个 tick 调用一次（通常每秒 60 次）
func (a *App) Update() error {
	// F11 切换全屏并记住设置
	if inpututil.IsKeyJustPressed(ebiten.KeyF11) {
		fullscreen := !ebiten.IsFullscreen()
		ebiten.SetFullscreen(fullscreen)
		a.settingsManager.SetFullscreen(fullscreen)
		if err := a.settingsManager.Save(); err != nil {
			log.Printf("[App] Warning: Failed to save settings: %v", err)
		}
	}

	deltaTime := 1.0 / 60.0
	a.sceneManager.Update(deltaTime)
	return nil
}

// Draw 绘制游戏画面
func (a *App) Draw(screen *ebiten.Image) {
	a.sceneManager.Draw(screen)
}

// DrawFinalScreen 实现 FinalScreenDrawer 接口
// 全屏时两侧留黑边，像素画使用最近邻缩放
func (a *App) DrawFinalScreen(screen ebiten.FinalScreen, offscreen *ebiten.Image, geoM ebiten.GeoM) {
	screen.Fill(color.Black)
	op := &ebiten.DrawImageOptions{}
	op.GeoM = geoM
	op.Filter = ebiten.FilterNearest
	screen.DrawImage(offscreen, op)
}

// Layout 返回游戏的逻辑屏幕尺寸
// 此尺寸独立于实际窗口大小，Ebitengine 会自动处理缩放
func (a *App) Layout(outsideWidth, outsideHeight int) (int, int) {
	return config.GameWindowWidth, config.GameWindowHeight
}
