package scenes

import (
	"log"

	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/types"
	"github.com/hajimehoshi/ebiten/v2"
)

// Mode 顶层模式
type Mode int

const (
	// ModeSlideshow 浏览幻灯片
	ModeSlideshow Mode = iota
	// ModePlaying 正在玩小游戏
	ModePlaying
)

// String 返回模式名称（用于日志）
func (m Mode) String() string {
	switch m {
	case ModeSlideshow:
		return "slideshow"
	case ModePlaying:
		return "playing"
	default:
		return "unknown"
	}
}

// 按键绑定
const (
	// KeyActivate 在说明页启动小游戏；游戏中每次按下扣血一次
	KeyActivate = ebiten.KeySpace
	// KeyQuit 任意状态下退出程序
	KeyQuit = ebiten.KeyEscape
)

// AppState 顶层状态：Mode 为 ModePlaying 时 Session 非 nil，否则为 nil
type AppState struct {
	Mode    Mode
	Session *GameSession
}

// Router 模式/输入路由
//
// 状态机：
//
//	Slideshow --(说明页上按激活键)--> Playing
//	Playing   --(生命值归零)--------> Slideshow（跳到该游戏的 boom 页）
//
// 任意状态下按退出键请求退出
type Router struct {
	state     AppState
	slideshow *SlideshowScene
	triggers  *config.SlideshowConfig
	games     map[types.Variant]*MiniGameScene
	active    *MiniGameScene
}

// NewRouter 创建路由，初始为幻灯片模式
func NewRouter(slideshow *SlideshowScene, triggers *config.SlideshowConfig, games []*MiniGameScene) *Router {
	byVariant := make(map[types.Variant]*MiniGameScene, len(games))
	for _, g := range games {
		byVariant[g.Variant()] = g
	}
	return &Router{
		state:     AppState{Mode: ModeSlideshow},
		slideshow: slideshow,
		triggers:  triggers,
		games:     byVariant,
	}
}

// State 返回当前顶层状态
func (r *Router) State() AppState {
	return r.state
}

// Mode 返回当前模式
func (r *Router) Mode() Mode {
	return r.state.Mode
}

// Session 返回当前小游戏会话，幻灯片模式下为 nil
func (r *Router) Session() *GameSession {
	return r.state.Session
}

// Slideshow 返回幻灯片场景
func (r *Router) Slideshow() *SlideshowScene {
	return r.slideshow
}

// HandleKey 处理一次按键按下事件
//
// 返回：
//   - bool: 是否请求退出
func (r *Router) HandleKey(key ebiten.Key) bool {
	if key == KeyQuit {
		log.Printf("[Router] Quit requested")
		return true
	}
	if key != KeyActivate {
		return false
	}

	switch r.state.Mode {
	case ModeSlideshow:
		r.tryStartGame()
	case ModePlaying:
		r.active.Tap(r.state.Session)
	}
	return false
}

// HandleClick 处理一次点击，只在幻灯片模式下生效
func (r *Router) HandleClick(x, y float64) {
	if r.state.Mode != ModeSlideshow {
		return
	}
	r.slideshow.HandleClick(x, y)
}

// Update 推进一帧逻辑
// 小游戏结束时回到幻灯片模式并跳到对应的 boom 页；找不到触发配置时停在当前页
func (r *Router) Update() {
	if r.state.Mode != ModePlaying {
		return
	}
	if !r.active.Update(r.state.Session) {
		return
	}

	variant := r.active.Variant()
	r.state = AppState{Mode: ModeSlideshow}
	r.active = nil

	trigger, ok := r.triggerFor(variant)
	if !ok {
		log.Printf("[Router] Warning: %s finished but has no trigger config, staying on slide %d",
			variant, r.slideshow.CurrentSlide())
		return
	}
	if err := r.slideshow.GotoSlide(trigger.BoomSlide); err != nil {
		log.Printf("[Router] Warning: %s finished but boom slide is invalid: %v", variant, err)
	}
}

// Draw 绘制当前模式的画面
func (r *Router) Draw(screen *ebiten.Image) {
	if r.state.Mode == ModePlaying {
		r.active.Draw(screen, r.state.Session)
		return
	}
	r.slideshow.Draw(screen)
}

// tryStartGame 当前页是某个小游戏的说明页时启动该游戏
func (r *Router) tryStartGame() {
	slide := r.slideshow.CurrentSlide()
	trigger, ok := r.triggers.TriggerForSlide(slide)
	if !ok {
		return
	}

	game, exists := r.games[trigger.Variant]
	if !exists {
		log.Printf("[Router] Warning: no mini-game configured for %s", trigger.Variant)
		return
	}

	r.active = game
	r.state = AppState{Mode: ModePlaying, Session: game.Start()}
	log.Printf("[Router] Slide %d -> %s", slide, trigger.Variant)
}

// triggerFor 查找小游戏的触发配置
func (r *Router) triggerFor(v types.Variant) (config.GameTrigger, bool) {
	for _, g := range r.triggers.Games {
		if g.Variant == v {
			return g, true
		}
	}
	return config.GameTrigger{}, false
}
