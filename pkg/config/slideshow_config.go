package config

import (
	"fmt"
	"log"

	"github.com/decker502/lightsout/pkg/types"
	"gopkg.in/yaml.v3"
)

// DefaultSlideshowConfigPath 幻灯片配置文件的默认路径（嵌入资源）
const DefaultSlideshowConfigPath = "data/slideshow.yaml"

// SlideshowConfig 幻灯片放映配置
//
// 结构：
//
//	slides: [IMAGE_SLIDE_01, ...]   # 按顺序排列的幻灯片资源ID
//	buttons: [...]                  # 导航按钮（点击区域 + 目标幻灯片）
//	games: [...]                    # 小游戏触发表（说明页 -> 变体 -> 爆炸页）
type SlideshowConfig struct {
	Slides  []string       `yaml:"slides"`
	Buttons []ButtonConfig `yaml:"buttons"`
	Games   []GameTrigger  `yaml:"games"`
}

// ButtonConfig 导航按钮的静态配置，运行时不修改
type ButtonConfig struct {
	ID              string `yaml:"id"`
	Rect            Rect   `yaml:"rect"`
	TargetSlide     int    `yaml:"target_slide"`
	VisibleOnSlides []int  `yaml:"visible_on_slides"`
}

// GameTrigger 描述一个小游戏与幻灯片之间的映射
// 在 InfoSlides 任一页按下激活键启动游戏，结束后跳转到 BoomSlide
type GameTrigger struct {
	Variant    types.Variant `yaml:"variant"`
	InfoSlides []int         `yaml:"info_slides"`
	BoomSlide  int           `yaml:"boom_slide"`
}

// LoadSlideshowConfig 从 YAML 文件加载幻灯片配置
//
// 参数：
//   - path: 配置文件路径（"data/" 前缀优先从嵌入资源读取）
//
// 返回：
//   - *SlideshowConfig: 解析并校验后的配置
//   - error: 读取、解析或校验失败
func LoadSlideshowConfig(path string) (*SlideshowConfig, error) {
	data, err := readConfigFile(path)
	if err != nil {
		return nil, err
	}

	cfg, err := ParseSlideshowConfig(data)
	if err != nil {
		return nil, fmt.Errorf("invalid slideshow config in %s: %w", path, err)
	}
	return cfg, nil
}

// ParseSlideshowConfig 解析 YAML 数据并校验
func ParseSlideshowConfig(data []byte) (*SlideshowConfig, error) {
	var cfg SlideshowConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse slideshow YAML: %w", err)
	}

	if err := validateSlideshowConfig(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// TriggerForSlide 返回在指定幻灯片上可以启动的小游戏
func (c *SlideshowConfig) TriggerForSlide(slide int) (GameTrigger, bool) {
	for _, g := range c.Games {
		for _, s := range g.InfoSlides {
			if s == slide {
				return g, true
			}
		}
	}
	return GameTrigger{}, false
}

// validateSlideshowConfig 校验配置的完整性
//
// 按钮目标越界不视为配置错误：运行时导航会拒绝并记录警告。
// 小游戏触发表必须指向有效幻灯片，否则游戏无法开始或结束后无处可去。
func validateSlideshowConfig(cfg *SlideshowConfig) error {
	if len(cfg.Slides) == 0 {
		return fmt.Errorf("at least one slide is required")
	}
	for i, id := range cfg.Slides {
		if id == "" {
			return fmt.Errorf("slide %d: resource ID is required", i)
		}
	}

	seen := make(map[string]bool, len(cfg.Buttons))
	for i, b := range cfg.Buttons {
		if b.ID == "" {
			return fmt.Errorf("button %d: id is required", i)
		}
		if seen[b.ID] {
			return fmt.Errorf("button %d: duplicate id %q", i, b.ID)
		}
		seen[b.ID] = true
		if b.Rect.IsEmpty() {
			return fmt.Errorf("button %q: rect must have positive width and height", b.ID)
		}
		if b.TargetSlide < 0 || b.TargetSlide >= len(cfg.Slides) {
			log.Printf("[Config] Warning: button %q targets slide %d outside [0, %d)", b.ID, b.TargetSlide, len(cfg.Slides))
		}
	}

	infoOwner := make(map[int]types.Variant)
	variants := make(map[types.Variant]bool)
	for i, g := range cfg.Games {
		if g.Variant == types.VariantNone {
			return fmt.Errorf("game %d: variant is required", i)
		}
		if variants[g.Variant] {
			return fmt.Errorf("game %d: duplicate variant %s", i, g.Variant)
		}
		variants[g.Variant] = true

		if len(g.InfoSlides) == 0 {
			return fmt.Errorf("game %s: at least one info slide is required", g.Variant)
		}
		for _, s := range g.InfoSlides {
			if s < 0 || s >= len(cfg.Slides) {
				return fmt.Errorf("game %s: info slide %d out of range [0, %d)", g.Variant, s, len(cfg.Slides))
			}
			if owner, taken := infoOwner[s]; taken {
				return fmt.Errorf("game %s: info slide %d already starts %s", g.Variant, s, owner)
			}
			infoOwner[s] = g.Variant
		}
		if g.BoomSlide < 0 || g.BoomSlide >= len(cfg.Slides) {
			return fmt.Errorf("game %s: boom slide %d out of range [0, %d)", g.Variant, g.BoomSlide, len(cfg.Slides))
		}
	}

	return nil
}
