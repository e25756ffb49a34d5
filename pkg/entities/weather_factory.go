package entities

import (
	"math/rand/v2"

	"github.com/decker502/redsun/pkg/actions"
	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/ecs"
)

// NewRainLayer 创建雨层
//
// 雨层位于视口上方，每隔 RainInterval 在随机水平位置生成一滴雨，
// 雨滴带恒定的重力和横向加速度，由 PhysicsSystem 推动下落，
// 落出视口或超过存活时间后由 LifetimeSystem 清理。
// 生成循环挂在雨层上，雨层被删除时循环停止。
//
// 参数:
//   - parent: 所属时刻的根节点
//   - width, height: 视口尺寸
//   - rng: 随机源（测试时可注入固定种子）
func NewRainLayer(em *ecs.EntityManager, runner ActionRunner, parent ecs.EntityID,
	cfg config.AmbientConfig, width, height float64, rng *rand.Rand) ecs.EntityID {

	layer := NewContainer(em, parent, width/2, -height*0.1)
	SetZIndex(em, layer, config.ZBackground)

	spawn := actions.Run(func(ctx *actions.Context) {
		spawnRainDrop(ctx.EM, ctx.Entity, cfg, width, height, rng)
	})
	runner.Run(layer, actions.RepeatForever(actions.Sequence(
		actions.Wait(cfg.RainInterval),
		spawn,
	)), nil)

	return layer
}

// spawnRainDrop 在雨层中生成一滴雨
// 水平位置在 [0, width) 内均匀分布，再整体左移，保证倾斜下落后仍覆盖整个视口
func spawnRainDrop(em *ecs.EntityManager, layer ecs.EntityID, cfg config.AmbientConfig,
	width, height float64, rng *rand.Rand) ecs.EntityID {

	x := -config.RainSpawnShiftX
	if width >= 1 {
		x += float64(rng.IntN(int(width)))
	}

	drop := NewSprite(em, layer, "Raindrop", x, 0)
	SetScale(em, drop, config.RainDropScale)
	if sprite, ok := ecs.GetComponent[*components.SpriteComponent](em, drop); ok {
		sprite.Rotation = config.RainDropRotation
	}

	ecs.AddComponent(em, drop, &components.VelocityComponent{})
	ecs.AddComponent(em, drop, &components.AccelerationComponent{
		AX: cfg.RainLateralForce,
		AY: cfg.RainGravity,
	})
	ecs.AddComponent(em, drop, &components.LifetimeComponent{
		MaxLifetime: cfg.RainDropLifetime,
		CullBelowY:  height + defaultSpriteSize,
	})
	return drop
}

// NewLightningFlicker 创建闪电：一个光源和一张全屏高亮背景同步闪烁
//
// 两者初始都不可见（光源关闭、背景透明），第一帧不会闪光。
// 每轮: 等待, 闪, 短等待, 闪, 等待, 闪, 长等待, 闪，无限循环。
// 光源和背景各自运行一条时间线，时长相同因此保持同步。
//
// 参数:
//   - parent: 光源的父节点（所属时刻的根节点）
//   - backing: 已创建的高亮背景精灵
//   - x, y: 光源位置
//
// 返回光源实体
func NewLightningFlicker(em *ecs.EntityManager, runner ActionRunner, parent, backing ecs.EntityID,
	x, y float64, cfg config.AmbientConfig) ecs.EntityID {

	light := NewLight(em, parent, x, y, config.LightningFalloff, false)
	SetAlpha(em, backing, 0)

	flash := func() actions.Action {
		return actions.Pulse(actions.SetLightEnabled(true), actions.SetLightEnabled(false), cfg.FlickerPulse)
	}
	show := func() actions.Action {
		return actions.Pulse(actions.SetAlpha(1), actions.SetAlpha(0), cfg.FlickerPulse)
	}

	runner.Run(light, actions.RepeatForever(flickerCycle(cfg, flash)), nil)
	runner.Run(backing, actions.RepeatForever(flickerCycle(cfg, show)), nil)

	return light
}

// flickerCycle 一轮闪电节奏，bang 每次调用返回一个新的闪光动作
func flickerCycle(cfg config.AmbientConfig, bang func() actions.Action) actions.Action {
	return actions.Sequence(
		actions.Wait(cfg.FlickerWait),
		bang(),
		actions.Wait(cfg.FlickerShortWait),
		bang(),
		actions.Wait(cfg.FlickerWait),
		bang(),
		actions.Wait(cfg.FlickerLongWait),
		bang(),
	)
}
