package config

import (
	"fmt"

	"github.com/decker502/lightsout/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultMiniGameConfigPath 小游戏皮肤配置文件的默认路径（嵌入资源）
const DefaultMiniGameConfigPath = "data/minigames.yaml"

// 背景模式
const (
	// BackgroundImage 绘制一张全屏背景图
	BackgroundImage = "image"
	// BackgroundHue 背景为随生命值变化的纯色（红 -> 紫 -> 青）
	BackgroundHue = "hue"
)

// 主精灵模式
const (
	// SpriteBucketed 按生命值阈值选择离散图片
	SpriteBucketed = "bucketed"
	// SpriteScaled 单张图片，按生命值缩放
	SpriteScaled = "scaled"
)

// 精灵锚点
const (
	// AnchorCenter Position 为图片中心
	AnchorCenter = "center"
	// AnchorTopLeft Position 为图片左上角
	AnchorTopLeft = "topleft"
)

// MiniGameConfig 小游戏配置根节点
type MiniGameConfig struct {
	Sounds MiniGameSounds `yaml:"sounds"`
	Skins  []MiniGameSkin `yaml:"skins"`
}

// MiniGameSounds 三个小游戏共用的音频资源ID
type MiniGameSounds struct {
	Ambient string `yaml:"ambient"` // 随生命值下降而变响的循环音
	Tap     string `yaml:"tap"`     // 每次按键
	Finish  string `yaml:"finish"`  // 生命值归零
}

// MiniGameSkin 小游戏皮肤描述符
// 同一个引擎读取不同的皮肤即可得到三种游戏，可选部件为 nil 时不绘制
type MiniGameSkin struct {
	Variant    types.Variant    `yaml:"variant"`
	Background BackgroundConfig `yaml:"background"`
	Overlay    *ImageRef        `yaml:"overlay,omitempty"`
	Sprite     SpriteConfig     `yaml:"sprite"`
	Rumble     RumbleConfig     `yaml:"rumble"`
	Tilt       *TiltConfig      `yaml:"tilt,omitempty"`
	Slider     *SliderConfig    `yaml:"slider,omitempty"`
	Particles  *ParticleConfig  `yaml:"particles,omitempty"`
	HealthBar  *HealthBarConfig `yaml:"health_bar,omitempty"`
	FlashRect  *Rect            `yaml:"flash_rect,omitempty"`
}

// BackgroundConfig 背景配置
type BackgroundConfig struct {
	Mode  string   `yaml:"mode"`
	Image ImageRef `yaml:"image"`
}

// SpriteConfig 主精灵（细菌/酶）配置
type SpriteConfig struct {
	Mode       string     `yaml:"mode"`
	Images     []ImageRef `yaml:"images"`
	Thresholds []float64  `yaml:"thresholds"` // bucketed: 生命值 > Thresholds[i] 时使用 Images[i]
	Anchor     string     `yaml:"anchor"`
	Position   Point      `yaml:"position"`
	MinScale   float64    `yaml:"min_scale"`  // scaled: 生命值为 0 时的缩放比例
	FitScreen  bool       `yaml:"fit_screen"` // 图片先拉伸到全屏尺寸
}

// RumbleConfig 抖动参数
//
// 生命值在 (HealthMin, Gate) 区间内才抖动：
//
//	intensity = (Base - health) / Base
//	magnitude = MaxRumbleOffset * Scale * intensity^Exponent
type RumbleConfig struct {
	Gate     float64 `yaml:"gate"`
	Base     float64 `yaml:"base"`
	Exponent float64 `yaml:"exponent"`
	Scale    float64 `yaml:"scale"`
}

// TiltConfig 随生命值倾斜的图片（天平）
type TiltConfig struct {
	Image      ImageRef `yaml:"image"`
	Position   Point    `yaml:"position"` // 旋转中心
	MaxDegrees float64  `yaml:"max_degrees"`
}

// SliderConfig 随生命值水平移动的图片（抑制剂）
// 生命值 100 时位于 StartX，0 时位于 EndX
type SliderConfig struct {
	Image  ImageRef `yaml:"image"`
	StartX float64  `yaml:"start_x"`
	EndX   float64  `yaml:"end_x"`
	Y      float64  `yaml:"y"`
}

// ParticleConfig 盐粒粒子池配置
type ParticleConfig struct {
	Image        ImageRef  `yaml:"image"`
	Count        int       `yaml:"count"`
	Speed        float64   `yaml:"speed"`         // 每帧垂直速度（方向随机）
	Size         float64   `yaml:"size"`          // 绘制尺寸（正方形边长）
	XFractions   []float64 `yaml:"x_fractions"`   // 每个粒子固定的 X 位置（屏幕宽度比例）
	RevealFactor float64   `yaml:"reveal_factor"` // 显示数量放大系数
}

// HealthBarConfig 血条配置
type HealthBarConfig struct {
	Rect     Rect    `yaml:"rect"`
	FontSize float64 `yaml:"font_size"`
}

// LoadMiniGameConfig 从 YAML 文件加载小游戏皮肤配置
func LoadMiniGameConfig(path string) (*MiniGameConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseMiniGameConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid mini-game config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseMiniGameConfig 解析 YAML 数据，填充默认值并校验
func ParseMiniGameConfig(data []byte) (*MiniGameConfig, error) {
	var cfg MiniGameConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse mini-game YAML: %w", err)
	}

	applyMiniGameDefaults(&cfg)

	if err := validateMiniGameConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Skin 返回指定变体的皮肤
func (c *MiniGameConfig) Skin(v types.Variant) (*MiniGameSkin, bool) {
	for i := range c.Skins {
		if c.Skins[i].Variant == v {
			return &c.Skins[i], true
		}
	}
	return nil, false
}

// applyMiniGameDefaults 为缺失的可选字段设置默认值
func applyMiniGameDefaults(cfg *MiniGameConfig) {
	if cfg.Sounds.Ambient == "" {
		cfg.Sounds.Ambient = SoundRumbleLoop
	}
	if cfg.Sounds.Tap == "" {
		cfg.Sounds.Tap = SoundSpaceTap
	}
	if cfg.Sounds.Finish == "" {
		cfg.Sounds.Finish = SoundGameFinish
	}

	for i := range cfg.Skins {
		skin := &cfg.Skins[i]

		if skin.Background.Mode == "" {
			skin.Background.Mode = BackgroundImage
		}
		if skin.Sprite.Mode == "" {
			skin.Sprite.Mode = SpriteBucketed
		}
		if skin.Sprite.Anchor == "" {
			skin.Sprite.Anchor = AnchorCenter
		}

		// 未配置的抖动参数等价于氧化应激的曲线
		if skin.Rumble.Gate == 0 {
			skin.Rumble.Gate = HealthMax
		}
		if skin.Rumble.Base == 0 {
			skin.Rumble.Base = HealthMax
		}
		if skin.Rumble.Exponent == 0 {
			skin.Rumble.Exponent = 2.0
		}
		if skin.Rumble.Scale == 0 {
			skin.Rumble.Scale = 1.0
		}

		if skin.Particles != nil && skin.Particles.RevealFactor == 0 {
			skin.Particles.RevealFactor = ParticleRevealFactor
		}
		if skin.HealthBar != nil && skin.HealthBar.FontSize == 0 {
			skin.HealthBar.FontSize = HealthFontSize
		}
		if skin.FlashRect == nil {
			r := TapButtonRect
			skin.FlashRect = &r
		}
	}
}

// validateMiniGameConfig 校验皮肤配置
func validateMiniGameConfig(cfg *MiniGameConfig) error {
	if len(cfg.Skins) == 0 {
		return fmt.Errorf("at least one skin is required")
	}

	seen := make(map[types.Variant]bool)
	for i := range cfg.Skins {
		skin := &cfg.Skins[i]
		if skin.Variant == types.VariantNone {
			return fmt.Errorf("skin %d: variant is required", i)
		}
		if seen[skin.Variant] {
			return fmt.Errorf("skin %d: duplicate variant %s", i, skin.Variant)
		}
		seen[skin.Variant] = true

		if err := validateSkin(skin); err != nil {
			return fmt.Errorf("skin %s: %w", skin.Variant, err)
		}
	}
	return nil
}

func validateSkin(skin *MiniGameSkin) error {
	switch skin.Background.Mode {
	case BackgroundImage:
		if skin.Background.Image.ID == "" {
			return fmt.Errorf("background image id is required in %q mode", BackgroundImage)
		}
	case BackgroundHue:
	default:
		return fmt.Errorf("unknown background mode %q", skin.Background.Mode)
	}

	sprite := skin.Sprite
	switch sprite.Mode {
	case SpriteBucketed:
		if len(sprite.Images) != len(sprite.Thresholds)+1 {
			return fmt.Errorf("bucketed sprite needs len(images) == len(thresholds)+1, got %d images and %d thresholds",
				len(sprite.Images), len(sprite.Thresholds))
		}
		for i := 1; i < len(sprite.Thresholds); i++ {
			if sprite.Thresholds[i] >= sprite.Thresholds[i-1] {
				return fmt.Errorf("sprite thresholds must be strictly descending")
			}
		}
	case SpriteScaled:
		if len(sprite.Images) != 1 {
			return fmt.Errorf("scaled sprite needs exactly one image, got %d", len(sprite.Images))
		}
		if sprite.MinScale <= 0 || sprite.MinScale > 1 {
			return fmt.Errorf("scaled sprite min_scale must be in (0, 1], got %v", sprite.MinScale)
		}
	default:
		return fmt.Errorf("unknown sprite mode %q", sprite.Mode)
	}
	if sprite.Anchor != AnchorCenter && sprite.Anchor != AnchorTopLeft {
		return fmt.Errorf("unknown sprite anchor %q", sprite.Anchor)
	}

	if skin.Rumble.Base <= 0 {
		return fmt.Errorf("rumble base must be positive")
	}
	if skin.Rumble.Gate > HealthMax {
		return fmt.Errorf("rumble gate %v exceeds max health %v", skin.Rumble.Gate, HealthMax)
	}

	if p := skin.Particles; p != nil {
		if p.Count <= 0 {
			return fmt.Errorf("particle count must be positive")
		}
		if len(p.XFractions) != p.Count {
			return fmt.Errorf("particles need one x_fraction per particle, got %d for %d", len(p.XFractions), p.Count)
		}
		if p.Size <= 0 {
			return fmt.Errorf("particle size must be positive")
		}
	}

	if hb := skin.HealthBar; hb != nil && hb.Rect.IsEmpty() {
		return fmt.Errorf("health bar rect must have positive width and height")
	}
	return nil
}
