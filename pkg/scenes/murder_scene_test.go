package scenes

import (
	"errors"
	"math"
	"math/rand/v2"
	"testing"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/redsun/pkg/components"
	"github.com/decker502/redsun/pkg/config"
	"github.com/decker502/redsun/pkg/ecs"
	"github.com/decker502/redsun/pkg/entities"
	"github.com/decker502/redsun/pkg/game"
	"github.com/decker502/redsun/pkg/types"
	"github.com/decker502/redsun/pkg/utils"
)

const (
	testWidth     = 1024.0
	testHeight    = 768.0
	testDeltaTime = 1.0 / 60.0
)

// fakeProfile 记录结局写入
type fakeProfile struct {
	committedMurder bool
	saveCalls       int
	saveErr         error
}

func (p *fakeProfile) SetCommittedMurder(committed bool) { p.committedMurder = committed }

func (p *fakeProfile) Save() error {
	p.saveCalls++
	return p.saveErr
}

// fakeSwitcher 记录场景切换请求
type fakeSwitcher struct {
	calls    int
	scene    game.Scene
	duration float64
}

func (s *fakeSwitcher) TransitionTo(scene game.Scene, duration float64) {
	s.calls++
	s.scene = scene
	s.duration = duration
}

type stubScene struct{}

func (stubScene) Update(float64)     {}
func (stubScene) Draw(*ebiten.Image) {}

type murderFixture struct {
	scene    *MurderScene
	profile  *fakeProfile
	switcher *fakeSwitcher
	// nextSizes 记录创建下一个场景时传入的视口尺寸
	nextSizes [][2]float64
}

func newMurderFixture(t *testing.T) *murderFixture {
	t.Helper()
	f := &murderFixture{
		profile:  &fakeProfile{},
		switcher: &fakeSwitcher{},
	}
	next := func(w, h float64) Scene {
		f.nextSizes = append(f.nextSizes, [2]float64{w, h})
		return stubScene{}
	}
	f.scene = newMurderScene(nil, f.switcher, f.profile, config.DefaultCutsceneConfig(), next,
		testWidth, testHeight, rand.New(rand.NewPCG(1, 1)))
	return f
}

// step 以固定帧长推进场景 seconds 秒
func (f *murderFixture) step(seconds float64) {
	frames := int(math.Round(seconds / testDeltaTime))
	for i := 0; i < frames; i++ {
		f.scene.advance(testDeltaTime)
	}
}

// settle 等待当前转场结束
func (f *murderFixture) settle(t *testing.T) {
	t.Helper()
	f.step(config.DefaultCutsceneConfig().Transition.CrossfadeDuration + 0.1)
	if f.scene.TransitionLocked() {
		t.Fatal("transition should have finished")
	}
}

// nodePoint 当前时刻命名节点的世界坐标中心
func (f *murderFixture) nodePoint(t *testing.T, name string) utils.Point {
	t.Helper()
	x, y, err := utils.WorldPosition(f.scene.entityManager, f.scene.currentVisual.MustNode(name))
	if err != nil {
		t.Fatalf("WorldPosition(%s) error = %v", name, err)
	}
	return utils.Point{X: x, Y: y}
}

func (f *murderFixture) tap(p utils.Point) {
	f.scene.HandleTaps([]utils.Point{p})
}

// jumpTo 直接转场到指定时刻并等待转场结束
func (f *murderFixture) jumpTo(t *testing.T, m types.Moment) {
	t.Helper()
	f.scene.RequestTransition(m)
	f.settle(t)
}

func (f *murderFixture) alpha(id ecs.EntityID) float64 {
	op, _ := ecs.GetComponent[*components.OpacityComponent](f.scene.entityManager, id)
	return op.Alpha
}

var nowhere = utils.Point{X: 1, Y: 1}

func TestMurderSceneInitialState(t *testing.T) {
	f := newMurderFixture(t)
	s := f.scene

	if s.CurrentMoment() != types.MomentHouseDistant {
		t.Errorf("Initial moment = %s, want house_distant", s.CurrentMoment())
	}
	if s.TransitionLocked() {
		t.Error("Scene should start unlocked")
	}
	if s.StabCount() != 0 {
		t.Errorf("Initial stab count = %d, want 0", s.StabCount())
	}
	if !utils.IsAttached(s.entityManager, s.world, s.currentVisual.Root) {
		t.Error("Initial visual should be attached to the scene")
	}
	if utils.WorldAlpha(s.entityManager, s.currentVisual.Root) != 1 {
		t.Error("Initial visual should be fully visible without a fade")
	}
}

func TestMurderSceneNarrativePath(t *testing.T) {
	f := newMurderFixture(t)
	s := f.scene

	visited := []types.Moment{s.CurrentMoment()}
	record := func() { visited = append(visited, s.CurrentMoment()) }

	f.tap(f.nodePoint(t, entities.NodeHouse))
	record()
	f.settle(t)

	f.tap(f.nodePoint(t, entities.NodeHouse))
	record()
	f.settle(t)

	f.tap(nowhere) // Window: 任意位置
	record()
	f.settle(t)

	f.tap(f.nodePoint(t, entities.NodeTool))
	f.step(2.0) // 抓草叉动画结束后自动转场
	record()
	f.settle(t)

	f.tap(nowhere)
	record()
	f.settle(t)

	f.tap(nowhere)
	record()

	want := types.AllMoments
	if len(visited) != len(want) {
		t.Fatalf("visited %v, want %v", visited, want)
	}
	for i := range want {
		if visited[i] != want[i] {
			t.Fatalf("visited %v, want %v", visited, want)
		}
	}
}

func TestMurderSceneMissedTapsAreNoops(t *testing.T) {
	for _, m := range []types.Moment{types.MomentHouseDistant, types.MomentHouseClose, types.MomentToolGrab} {
		t.Run(m.String(), func(t *testing.T) {
			f := newMurderFixture(t)
			if m != types.MomentHouseDistant {
				f.jumpTo(t, m)
			}
			s := f.scene
			root := s.currentVisual.Root
			actionsBefore := s.actionSystem.Count()

			f.tap(nowhere)

			if s.CurrentMoment() != m {
				t.Errorf("moment changed to %s", s.CurrentMoment())
			}
			if s.TransitionLocked() || s.currentVisual.Root != root {
				t.Error("a missed tap must not start a transition")
			}
			if s.StabCount() != 0 || s.grabbing {
				t.Error("a missed tap must not change the scene state")
			}
			if s.actionSystem.Count() != actionsBefore {
				t.Errorf("a missed tap started animations (%d -> %d)", actionsBefore, s.actionSystem.Count())
			}
		})
	}
}

func TestMurderSceneTransitionLock(t *testing.T) {
	f := newMurderFixture(t)
	s := f.scene
	oldRoot := s.currentVisual.Root

	s.RequestTransition(types.MomentHouseClose)
	if !s.TransitionLocked() {
		t.Fatal("transition should lock immediately")
	}
	if s.CurrentMoment() != types.MomentHouseClose {
		t.Fatal("current moment should update at request time")
	}
	newRoot := s.currentVisual.Root
	if f.alpha(newRoot) != 0 {
		t.Errorf("incoming visual should start transparent, alpha=%f", f.alpha(newRoot))
	}

	// 加锁期间的请求没有任何效果
	s.RequestTransition(types.MomentWindow)
	if s.CurrentMoment() != types.MomentHouseClose || s.currentVisual.Root != newRoot {
		t.Error("request while locked must be dropped")
	}

	f.step(0.5)
	if !s.TransitionLocked() {
		t.Error("lock must hold for the whole crossfade")
	}
	if !utils.IsAttached(s.entityManager, s.world, oldRoot) {
		t.Error("outgoing visual should still be fading out")
	}

	f.step(0.6)
	if s.TransitionLocked() {
		t.Error("lock should be released after the fade-out completes")
	}
	if s.entityManager.IsAlive(oldRoot) {
		t.Error("outgoing visual should be removed")
	}
	if f.alpha(newRoot) != 1 {
		t.Errorf("incoming visual should be opaque, alpha=%f", f.alpha(newRoot))
	}
}

func TestMurderSceneSameMomentCrossfades(t *testing.T) {
	f := newMurderFixture(t)
	s := f.scene
	oldRoot := s.currentVisual.Root

	s.RequestTransition(types.MomentHouseDistant)

	if !s.TransitionLocked() {
		t.Error("same-moment request should still crossfade")
	}
	if s.currentVisual.Root == oldRoot {
		t.Error("same-moment request should rebuild the visual")
	}

	newRoot := s.currentVisual.Root
	if got := f.alpha(newRoot); got != 0 {
		t.Errorf("incoming visual should start transparent, alpha=%f", got)
	}
	f.step(config.DefaultCutsceneConfig().Transition.CrossfadeDuration / 2)
	if got := f.alpha(newRoot); math.Abs(got-0.5) > 0.02 {
		t.Errorf("incoming visual alpha halfway through crossfade = %f, want ~0.5", got)
	}

	f.settle(t)
	if s.entityManager.IsAlive(oldRoot) {
		t.Error("old visual should be removed")
	}
	if got := f.alpha(newRoot); got != 1 {
		t.Errorf("incoming visual should end opaque, alpha=%f", got)
	}
}

func TestMurderSceneToolTapDuringCrossfade(t *testing.T) {
	f := newMurderFixture(t)
	s := f.scene
	housePoint := f.nodePoint(t, entities.NodeHouse)

	f.tap(housePoint)
	f.settle(t)
	f.tap(f.nodePoint(t, entities.NodeHouse))
	if s.CurrentMoment() != types.MomentWindow {
		t.Fatalf("expected window, got %s", s.CurrentMoment())
	}
	f.settle(t)

	f.tap(nowhere)
	if s.CurrentMoment() != types.MomentToolGrab {
		t.Fatalf("expected tool_grab, got %s", s.CurrentMoment())
	}

	// 窗户仍在淡出时点击草叉：只查询新时刻的节点
	if !s.TransitionLocked() {
		t.Fatal("expected the crossfade to be in progress")
	}
	f.tap(f.nodePoint(t, entities.NodeTool))
	if !s.grabbing {
		t.Error("tap on the incoming visual's tool should start the grab")
	}
}

func TestMurderSceneGrabSequenceTiming(t *testing.T) {
	f := newMurderFixture(t)
	f.jumpTo(t, types.MomentToolGrab)
	s := f.scene

	tool := s.currentVisual.MustNode(entities.NodeTool)
	arm := s.currentVisual.MustNode(entities.NodeArm)
	armX, armY := s.localPosition(arm)
	toolPoint := f.nodePoint(t, entities.NodeTool)

	f.tap(toolPoint)
	if !s.grabbing {
		t.Fatal("tap on the tool should start the grab")
	}

	// 动画中再次点击不会重复触发
	before := s.actionSystem.Count()
	f.tap(toolPoint)
	if s.actionSystem.Count() != before {
		t.Error("second tap during the grab should be ignored")
	}

	f.step(1.5)
	if s.CurrentMoment() != types.MomentToolGrab {
		t.Fatalf("transition requested before both moves finished (at %s)", s.CurrentMoment())
	}
	x, y := s.localPosition(tool)
	if x == toolPoint.X && y == toolPoint.Y {
		t.Error("tool should be moving back with the arm")
	}

	f.step(0.4)
	if s.CurrentMoment() != types.MomentDoorClosed {
		t.Fatalf("expected door_closed after the grab, got %s", s.CurrentMoment())
	}
	x, y = s.localPosition(tool)
	if x != armX || y != armY {
		t.Errorf("tool should end at the arm's origin (%f, %f), got (%f, %f)", armX, armY, x, y)
	}
}

func TestMurderSceneStabCountMonotonic(t *testing.T) {
	f := newMurderFixture(t)
	f.jumpTo(t, types.MomentStabbing)
	s := f.scene

	for i := 1; i <= 5; i++ {
		f.tap(nowhere)
		if s.StabCount() != i {
			t.Fatalf("after %d stabs count = %d", i, s.StabCount())
		}
		f.step(0.2)
	}
}

func TestMurderSceneMultipleTapsInOnePass(t *testing.T) {
	f := newMurderFixture(t)
	f.jumpTo(t, types.MomentStabbing)

	f.scene.HandleTaps([]utils.Point{nowhere, {X: 500, Y: 500}, {X: 900, Y: 100}})

	if f.scene.StabCount() != 3 {
		t.Errorf("expected 3 stabs from 3 simultaneous taps, got %d", f.scene.StabCount())
	}
}

func TestMurderSceneProgressOverlay(t *testing.T) {
	f := newMurderFixture(t)
	f.jumpTo(t, types.MomentStabbing)
	s := f.scene

	if s.overlay != ecs.InvalidEntity {
		t.Fatal("overlay must not exist before the first stab")
	}

	f.tap(nowhere)
	overlay := s.overlay
	if overlay == ecs.InvalidEntity {
		t.Fatal("first stab should create the overlay")
	}
	if f.alpha(overlay) != 0 {
		t.Errorf("overlay should start transparent, alpha=%f", f.alpha(overlay))
	}
	if utils.ParentOf(s.entityManager, overlay) != s.world {
		t.Error("overlay should live on the scene root, not the moment visual")
	}

	f.tap(nowhere)
	if s.overlay != overlay {
		t.Error("second stab must reuse the overlay")
	}
	f.step(0.6)
	if got := f.alpha(overlay); math.Abs(got-0.2) > 1e-9 {
		t.Errorf("overlay alpha after second stab = %f, want 0.2", got)
	}

	shapes := 0
	for _, child := range utils.SortedChildren(s.entityManager, s.world) {
		if ecs.HasComponent[*components.ShapeComponent](s.entityManager, child) {
			shapes++
		}
	}
	if shapes != 1 {
		t.Errorf("expected exactly one overlay node, found %d", shapes)
	}
}

func TestMurderSceneRapidStabsDeepenOverlay(t *testing.T) {
	f := newMurderFixture(t)
	f.jumpTo(t, types.MomentStabbing)
	s := f.scene

	// 前一次加深还没结束就再次刺击，每次都应完整叠加 0.2
	for i := 0; i < 4; i++ {
		f.tap(nowhere)
		f.step(0.1)
	}
	f.step(1.0)

	if got := f.alpha(s.overlay); math.Abs(got-0.6) > 1e-9 {
		t.Errorf("overlay alpha after 4 rapid stabs = %f, want 0.6", got)
	}

	// 同一帧内的多次刺击同样累加
	s.HandleTaps([]utils.Point{nowhere, nowhere})
	f.step(1.0)
	if got := f.alpha(s.overlay); math.Abs(got-1.0) > 1e-9 {
		t.Errorf("overlay alpha after 6 stabs = %f, want 1.0", got)
	}
}

func TestMurderSceneStabAnimation(t *testing.T) {
	f := newMurderFixture(t)
	f.jumpTo(t, types.MomentStabbing)
	s := f.scene

	weapon := s.currentVisual.MustNode(entities.NodeWeapon)
	wound := s.currentVisual.MustNode(entities.NodeWound)
	fear := s.currentVisual.MustNode(entities.NodeFear)
	_, startY := s.localPosition(weapon)

	f.tap(nowhere)
	f.step(0.45)
	if got := f.alpha(weapon); got != 1 {
		t.Errorf("weapon should be visible after fading in, alpha=%f", got)
	}
	if f.alpha(wound) != 0 {
		t.Error("wound must wait for the stab-in to finish")
	}

	f.step(3.0)
	if f.alpha(wound) != 1 {
		t.Errorf("wound alpha = %f, want 1", f.alpha(wound))
	}
	if f.alpha(fear) != 0 {
		t.Errorf("fear alpha = %f, want 0", f.alpha(fear))
	}
	scale, _ := ecs.GetComponent[*components.ScaleComponent](s.entityManager, weapon)
	if scale.ScaleX != config.WeaponScale {
		t.Errorf("weapon scale = %f, want %f after stab-out", scale.ScaleX, config.WeaponScale)
	}
	_, y := s.localPosition(weapon)
	if math.Abs(y-(startY-config.DefaultCutsceneConfig().Stab.StrokeShift)) > 1e-9 {
		t.Errorf("weapon y = %f, want %f", y, startY-config.DefaultCutsceneConfig().Stab.StrokeShift)
	}
}

func TestMurderSceneExitGate(t *testing.T) {
	f := newMurderFixture(t)
	f.jumpTo(t, types.MomentStabbing)
	s := f.scene

	for i := 0; i < 6; i++ {
		f.tap(nowhere)
	}
	if f.profile.committedMurder || f.profile.saveCalls != 0 || f.switcher.calls != 0 {
		t.Fatalf("exit gate fired early: %+v %+v", f.profile, f.switcher)
	}
	if s.Exited() {
		t.Fatal("scene should not have exited after 6 stabs")
	}

	f.tap(nowhere)
	if !f.profile.committedMurder {
		t.Error("profile flag should be set on the 7th stab")
	}
	if f.profile.saveCalls != 1 {
		t.Errorf("Save() calls = %d, want 1", f.profile.saveCalls)
	}
	if f.switcher.calls != 1 {
		t.Errorf("scene swaps = %d, want 1", f.switcher.calls)
	}
	if f.switcher.duration != config.DefaultCutsceneConfig().Transition.ExitDuration {
		t.Errorf("exit crossfade = %f, want %f", f.switcher.duration, config.DefaultCutsceneConfig().Transition.ExitDuration)
	}
	if len(f.nextSizes) != 1 || f.nextSizes[0] != [2]float64{testWidth, testHeight} {
		t.Errorf("next scene should be built once with the viewport size, got %v", f.nextSizes)
	}

	// 结局之后的点击全部忽略
	f.scene.HandleTaps([]utils.Point{nowhere, nowhere})
	if s.StabCount() != 7 {
		t.Errorf("stab count after exit = %d, want 7", s.StabCount())
	}
	if f.profile.saveCalls != 1 || f.switcher.calls != 1 {
		t.Error("exit gate must fire exactly once")
	}
}

func TestMurderSceneExitSurvivesSaveError(t *testing.T) {
	f := newMurderFixture(t)
	f.profile.saveErr = errors.New("disk full")
	f.jumpTo(t, types.MomentStabbing)

	for i := 0; i < 7; i++ {
		f.tap(nowhere)
	}
	if f.switcher.calls != 1 {
		t.Error("scene swap should still happen when saving fails")
	}
}

func TestMurderSceneMismatchedVisualPanics(t *testing.T) {
	f := newMurderFixture(t)
	// 人为制造状态与视觉不一致
	f.scene.currentMoment = types.MomentToolGrab

	defer func() {
		if recover() == nil {
			t.Error("dispatching against a visual without the tool should panic")
		}
	}()
	f.tap(nowhere)
}

func TestMurderSceneAmbientLoopsStopWithTheirMoment(t *testing.T) {
	f := newMurderFixture(t)
	f.step(1.0)
	if f.scene.actionSystem.Count() == 0 {
		t.Fatal("house moment should run ambient animations")
	}

	f.jumpTo(t, types.MomentDoorClosed)
	f.step(0.1)
	if n := f.scene.actionSystem.Count(); n != 0 {
		t.Errorf("door moment has no ambient effects, but %d animations are still running", n)
	}
}
