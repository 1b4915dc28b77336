package main

import (
	"errors"
	"flag"
	"log"
	"os"

	"github.com/decker502/lightsout/pkg/app"
	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
)

func main() {
	verbose := flag.Bool("verbose", false, "启用详细日志输出")
	assetsDir := flag.String("assets", "", "图片和音频所在目录（默认 assets/）")
	debugButtons := flag.Bool("debug-buttons", false, "描边显示按钮点击区域")
	fullscreen := flag.Bool("fullscreen", false, "以全屏启动")
	flag.Parse()

	// 初始化嵌入配置，必须在任何配置加载之前
	embedded.Init(dataFS)

	game, err := app.NewApp(app.Config{
		Verbose:      *verbose,
		AssetsDir:    *assetsDir,
		DebugButtons: *debugButtons,
		Fullscreen:   *fullscreen,
	})
	if err != nil {
		// NewApp 可能已经把日志重定向到 io.Discard
		log.SetOutput(os.Stderr)
		log.Printf("[Main] Failed to start: %v", err)
		os.Exit(1)
	}

	ebiten.SetWindowSize(config.GameWindowWidth, config.GameWindowHeight)
	ebiten.SetWindowTitle(config.WindowTitle)
	ebiten.SetWindowResizingMode(ebiten.WindowResizingModeEnabled)
	ebiten.SetTPS(config.TicksPerSecond)

	if err := ebiten.RunGame(game); err != nil && !errors.Is(err, ebiten.Termination) {
		log.SetOutput(os.Stderr)
		log.Printf("[Main] %v", err)
		os.Exit(1)
	}
}
