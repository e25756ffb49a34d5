package actions

import (
	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/utils"
)

// SetAlpha 立即设置不透明度
func SetAlpha(alpha float64) Action {
	return Run(func(ctx *Context) {
		opacityOf(ctx.EM, ctx.Entity).Alpha = alpha
	})
}

// SetLightEnabled 立即开关光源
func SetLightEnabled(enabled bool) Action {
	return Run(func(ctx *Context) {
		if light, ok := ecs.GetComponent[*components.LightComponent](ctx.EM, ctx.Entity); ok {
			light.Enabled = enabled
		}
	})
}

// RemoveFromParent 把节点及其子树从树上摘下并删除
func RemoveFromParent() Action {
	return Run(func(ctx *Context) {
		utils.RemoveFromParent(ctx.EM, ctx.Entity)
	})
}
