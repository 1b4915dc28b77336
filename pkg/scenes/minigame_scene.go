package scenes

import (
	"fmt"
	"log"
	"math/rand"

	"github.com/decker502/lightsout/pkg/components"
	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/ecs"
	"github.com/decker502/lightsout/pkg/systems"
	"github.com/decker502/lightsout/pkg/types"
	"github.com/decker502/lightsout/pkg/utils"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
)

// GameSession 一局小游戏的运行时状态
// 从 Start() 创建，到生命值归零结束；结束后不可重玩，需要重新 Start()
//
// 本局的数据都挂在实体上：
//   - Meter: 细菌/酶，HealthComponent + SpriteComponent
//   - TapButton: "TAP!" 按钮，FlashEffectComponent
//   - particles: 盐粒，ParticleComponent（只有渗透压皮肤有）
//
// 本局结束时这些实体全部销毁，之后 Health()/Flash() 返回 nil
type GameSession struct {
	Variant   types.Variant
	Meter     ecs.EntityID
	TapButton ecs.EntityID

	entityManager *ecs.EntityManager
	particles     []ecs.EntityID
	finished      bool
}

// IsFinished 本局是否已经结束
func (s *GameSession) IsFinished() bool {
	return s.finished
}

// Health 返回本局的生命值组件，本局结束后为 nil
func (s *GameSession) Health() *components.HealthComponent {
	health, ok := ecs.GetComponent[*components.HealthComponent](s.entityManager, s.Meter)
	if !ok {
		return nil
	}
	return health
}

// Flash 返回 "TAP!" 按钮的闪光计时器，本局结束后为 nil
func (s *GameSession) Flash() *components.FlashEffectComponent {
	flash, ok := ecs.GetComponent[*components.FlashEffectComponent](s.entityManager, s.TapButton)
	if !ok {
		return nil
	}
	return flash
}

// Particles 返回仍然存在的盐粒，按显示顺序
func (s *GameSession) Particles() []*components.ParticleComponent {
	particles := make([]*components.ParticleComponent, 0, len(s.particles))
	for _, id := range s.particles {
		if p, ok := ecs.GetComponent[*components.ParticleComponent](s.entityManager, id); ok {
			particles = append(particles, p)
		}
	}
	return particles
}

// destroy 销毁本局的全部实体
func (s *GameSession) destroy() {
	s.finished = true
	s.entityManager.DestroyEntity(s.Meter)
	s.entityManager.DestroyEntity(s.TapButton)
	for _, id := range s.particles {
		s.entityManager.DestroyEntity(id)
	}
	s.entityManager.RemoveMarkedEntities()
}

// miniGameAssets 小游戏用到的图片和字体
// 任一字段为 nil 时对应部件不绘制
type miniGameAssets struct {
	background *ebiten.Image
	overlay    *ebiten.Image
	sprites    []*ebiten.Image
	tilt       *ebiten.Image
	slider     *ebiten.Image
	particle   *ebiten.Image
	font       *text.GoTextFace

	// particleLoaded 盐粒是否加载到真实图片；占位图保持自身尺寸，不缩放到配置的 Size
	particleLoaded bool
}

// MiniGameScene 生命值小游戏引擎
//
// 三个小游戏（氧化应激、渗透压冲击、酶抑制）共用这一份代码，
// 差异全部来自 config.MiniGameSkin：背景、精灵、抖动曲线、倾斜/滑动部件、盐粒和血条。
//
// 每帧流程：
//   - Tap(): 扣血、触发闪光、播放按键音效
//   - Update(): 回血、采样抖动、移动粒子、更新环境音量、检测归零，归零时销毁本局实体
//   - Draw(): 按皮肤绘制全部部件
type MiniGameScene struct {
	skin   *config.MiniGameSkin
	sounds config.MiniGameSounds
	audio  AudioService
	rng    *rand.Rand

	entityManager  *ecs.EntityManager
	rumbleSystem   *systems.RumbleSystem
	flashSystem    *systems.FlashEffectSystem
	particleSystem *systems.ParticleSystem // 没有盐粒的皮肤为 nil

	session *GameSession // 最近一次 Start() 的会话
	assets  miniGameAssets
}

// NewMiniGameScene 根据皮肤创建小游戏
//
// 参数：
//   - skin: 皮肤配置（已通过校验）
//   - sounds: 共用的音效ID
//   - audio: 音频服务
//   - rng: 随机数源（抖动、粒子初始位置）
func NewMiniGameScene(skin *config.MiniGameSkin, sounds config.MiniGameSounds, audio AudioService, rng *rand.Rand) *MiniGameScene {
	em := ecs.NewEntityManager()
	rumble := utils.RumbleParams{
		Gate:      skin.Rumble.Gate,
		Base:      skin.Rumble.Base,
		Exponent:  skin.Rumble.Exponent,
		Scale:     skin.Rumble.Scale,
		MaxOffset: config.MaxRumbleOffset,
		DeadZone:  config.RumbleDeadZone,
	}

	s := &MiniGameScene{
		skin:          skin,
		sounds:        sounds,
		audio:         audio,
		rng:           rng,
		entityManager: em,
		rumbleSystem:  systems.NewRumbleSystem(em, rumble, rng),
		flashSystem:   systems.NewFlashEffectSystem(em, *skin.FlashRect, config.FlashColor),
	}
	if skin.Particles != nil {
		s.particleSystem = systems.NewParticleSystem(em, skin.Particles, config.ScreenHeight)
	}
	return s
}

// Variant 返回小游戏类型
func (s *MiniGameScene) Variant() types.Variant {
	return s.skin.Variant
}

// LoadAssets 加载皮肤引用的图片和字体
// 缺失的图片由 loader 替换为占位图，不会失败
func (s *MiniGameScene) LoadAssets(loader AssetLoader) error {
	skin := s.skin

	if skin.Background.Mode == config.BackgroundImage {
		s.assets.background, _ = loader.LoadImageOrPlaceholder(skin.Background.Image)
	}
	if skin.Overlay != nil {
		s.assets.overlay, _ = loader.LoadImageOrPlaceholder(*skin.Overlay)
	}

	s.assets.sprites = make([]*ebiten.Image, len(skin.Sprite.Images))
	for i, ref := range skin.Sprite.Images {
		s.assets.sprites[i], _ = loader.LoadImageOrPlaceholder(ref)
	}

	if skin.Tilt != nil {
		s.assets.tilt, _ = loader.LoadImageOrPlaceholder(skin.Tilt.Image)
	}
	if skin.Slider != nil {
		s.assets.slider, _ = loader.LoadImageOrPlaceholder(skin.Slider.Image)
	}
	if skin.Particles != nil {
		s.assets.particle, s.assets.particleLoaded = loader.LoadImageOrPlaceholder(skin.Particles.Image)
	}

	if skin.HealthBar != nil {
		font, err := loader.LoadDefaultFont(skin.HealthBar.FontSize)
		if err != nil {
			return fmt.Errorf("failed to load health font for %s: %w", skin.Variant, err)
		}
		s.assets.font = font
	}

	log.Printf("[MiniGame] Loaded assets for %s", skin.Variant)
	return nil
}

// particleSize 盐粒的绘制边长
// 加载到真实图片时缩放到配置的 Size，占位图保持自身高度
func (s *MiniGameScene) particleSize() float64 {
	if s.assets.particle != nil && !s.assets.particleLoaded {
		return float64(s.assets.particle.Bounds().Dy())
	}
	return s.skin.Particles.Size
}

// Start 开始新的一局
// 创建本局的实体：满血的细菌、闪光计时器、盐粒；上一局未结束的实体先销毁
// 环境音以音量 0 开始（已在播放则不重启）
func (s *MiniGameScene) Start() *GameSession {
	if s.session != nil && !s.session.finished {
		s.session.destroy()
	}

	em := s.entityManager
	session := &GameSession{
		Variant:       s.skin.Variant,
		Meter:         em.CreateEntity(),
		TapButton:     em.CreateEntity(),
		entityManager: em,
	}
	ecs.AddComponent(em, session.Meter, components.NewHealthComponent(config.HealthMax))
	ecs.AddComponent(em, session.Meter, &components.SpriteComponent{})
	ecs.AddComponent(em, session.TapButton, components.NewFlashEffectComponent(config.FlashDurationFrames))
	if s.particleSystem != nil {
		session.particles = s.particleSystem.Spawn(s.rng, config.ScreenWidth, s.particleSize())
	}
	s.session = session

	s.audio.StartLoop(s.sounds.Ambient, 0)

	log.Printf("[MiniGame] Started %s (%d entities)", s.skin.Variant, em.EntityCount())
	return session
}

// Tap 处理一次按键：扣血、闪光、播放按键音效
// 本局结束后忽略
func (s *MiniGameScene) Tap(session *GameSession) {
	if session == nil || session.finished {
		return
	}
	health, flash := session.Health(), session.Flash()
	if health == nil || flash == nil {
		return
	}
	health.ApplyDamage(config.DamagePerTap)
	flash.Trigger()
	s.audio.PlaySound(s.sounds.Tap)
}

// Update 推进一帧逻辑
// 返回 true 表示本帧生命值归零、本局结束（每局只返回一次 true）
func (s *MiniGameScene) Update(session *GameSession) bool {
	if session == nil || session.finished {
		return false
	}
	health := session.Health()
	if health == nil {
		return false
	}

	health.ApplyRegen(config.RegenRate)
	s.rumbleSystem.Update()
	if s.particleSystem != nil {
		s.particleSystem.Update()
	}
	s.audio.SetLoopVolume(s.sounds.Ambient, utils.AmbientVolume(health.Ratio()))

	if !health.IsDepleted() {
		return false
	}

	session.destroy()
	s.audio.StopLoop(s.sounds.Ambient)
	s.audio.PlaySound(s.sounds.Finish)
	log.Printf("[MiniGame] %s finished", s.skin.Variant)
	return true
}
