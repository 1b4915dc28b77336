// check_assets 检查课件素材是否齐全
//
// 用法（在项目根目录运行）：
//
//	go run ./cmd/check_assets --assets /path/to/assets
//
// 读取 data/ 下的三个配置文件，确认幻灯片和小游戏引用的每个资源ID都在
// resources.yaml 中注册，并且对应文件存在。幻灯片缺失会导致程序无法启动，
// 其余缺失只会显示占位图或静音。
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/game"
)

// reference 一个被配置引用的资源
type reference struct {
	id       string
	owner    string // 引用方，用于输出
	required bool
}

func main() {
	assetsDir := flag.String("assets", "", "素材目录（默认使用 resources.yaml 中的 base_path）")
	flag.Parse()

	rm := game.NewResourceManager(nil)
	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
		fmt.Printf("❌ resources.yaml: %v\n", err)
		os.Exit(1)
	}
	if *assetsDir != "" {
		rm.SetBasePath(*assetsDir)
	}
	fmt.Printf("✅ resources.yaml 格式正确，素材目录: %s\n", rm.BasePath())

	slideshow, err := config.LoadSlideshowConfig(config.DefaultSlideshowConfigPath)
	if err != nil {
		fmt.Printf("❌ slideshow.yaml: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ slideshow.yaml: %d 页幻灯片, %d 个按钮\n", len(slideshow.Slides), len(slideshow.Buttons))

	minigames, err := config.LoadMiniGameConfig(config.DefaultMiniGameConfigPath)
	if err != nil {
		fmt.Printf("❌ minigames.yaml: %v\n", err)
		os.Exit(1)
	}
	fmt.Printf("✅ minigames.yaml: %d 个小游戏\n", len(minigames.Skins))

	refs := collectReferences(slideshow, minigames)

	fatal, warnings := 0, 0
	for _, ref := range refs {
		path, ok := rm.ResolvePath(ref.id)
		problem := ""
		if !ok {
			problem = "未在 resources.yaml 中注册"
		} else if _, err := os.Stat(path); err != nil {
			problem = fmt.Sprintf("文件不存在: %s", path)
		}
		if problem == "" {
			continue
		}

		if ref.required {
			fmt.Printf("❌ %s (%s): %s\n", ref.id, ref.owner, problem)
			fatal++
		} else {
			fmt.Printf("⚠️  %s (%s): %s\n", ref.id, ref.owner, problem)
			warnings++
		}
	}

	fmt.Printf("\n共检查 %d 个引用: %d 个必需素材缺失, %d 个可选素材缺失\n", len(refs), fatal, warnings)
	if fatal > 0 {
		os.Exit(1)
	}
}

// collectReferences 列出配置中引用的全部资源（去重，保留第一次出现的位置）
func collectReferences(slideshow *config.SlideshowConfig, minigames *config.MiniGameConfig) []reference {
	var refs []reference
	seen := make(map[string]bool)
	add := func(id, owner string, required bool) {
		if id == "" || seen[id] {
			return
		}
		seen[id] = true
		refs = append(refs, reference{id: id, owner: owner, required: required})
	}

	for i, id := range slideshow.Slides {
		add(id, fmt.Sprintf("slide %d", i), true)
	}

	add(config.SoundButtonClick, "button click", false)
	add(config.MusicBackground, "background music", false)
	add(minigames.Sounds.Ambient, "ambient", false)
	add(minigames.Sounds.Tap, "tap", false)
	add(minigames.Sounds.Finish, "finish", false)

	for i := range minigames.Skins {
		skin := &minigames.Skins[i]
		owner := skin.Variant.String()
		if skin.Background.Mode == config.BackgroundImage {
			add(skin.Background.Image.ID, owner+" background", false)
		}
		if skin.Overlay != nil {
			add(skin.Overlay.ID, owner+" overlay", false)
		}
		for _, img := range skin.Sprite.Images {
			add(img.ID, owner+" sprite", false)
		}
		if skin.Tilt != nil {
			add(skin.Tilt.Image.ID, owner+" tilt", false)
		}
		if skin.Slider != nil {
			add(skin.Slider.Image.ID, owner+" slider", false)
		}
		if skin.Particles != nil {
			add(skin.Particles.Image.ID, owner+" particles", false)
		}
	}
	return refs
}
