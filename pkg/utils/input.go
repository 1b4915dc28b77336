package utils

import (
	"image"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
)

// AppendJustPressedPointers 追加本帧刚按下的指针位置（逻辑屏幕坐标）
// 每个新触摸点一个位置，鼠标左键按下再追加一个；用法同 inpututil.AppendJustPressedKeys
func AppendJustPressedPointers(points []image.Point) []image.Point {
	for _, id := range inpututil.AppendJustPressedTouchIDs(nil) {
		x, y := ebiten.TouchPosition(id)
		points = append(points, image.Pt(x, y))
	}
	if inpututil.IsMouseButtonJustPressed(ebiten.MouseButtonLeft) {
		points = append(points, image.Pt(ebiten.CursorPosition()))
	}
	return points
}
