package config

import (
	"fmt"
	"image/color"

	"gopkg.in/yaml.v3"
)

// Point 二维坐标点（逻辑屏幕坐标）
type Point struct {
	X float64 `yaml:"x"`
	Y float64 `yaml:"y"`
}

// Rect 轴对齐矩形（左上角 + 尺寸）
type Rect struct {
	X      float64 `yaml:"x"`
	Y      float64 `yaml:"y"`
	Width  float64 `yaml:"width"`
	Height float64 `yaml:"height"`
}

// Contains 判断点是否在矩形内
// 半开矩形：左、上边界包含，右、下边界不包含
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x < r.X+r.Width &&
		y >= r.Y && y < r.Y+r.Height
}

// IsEmpty 宽或高不为正时返回 true
func (r Rect) IsEmpty() bool {
	return r.Width <= 0 || r.Height <= 0
}

// RGBA 配置文件中的颜色，写作 [r, g, b] 或 [r, g, b, a]
type RGBA color.NRGBA

// UnmarshalYAML 解析 [r, g, b(, a)] 形式的颜色，缺省 alpha 为 255
func (c *RGBA) UnmarshalYAML(node *yaml.Node) error {
	var parts []int
	if err := node.Decode(&parts); err != nil {
		return fmt.Errorf("color must be a list of 3 or 4 integers: %w", err)
	}
	if len(parts) != 3 && len(parts) != 4 {
		return fmt.Errorf("color must have 3 or 4 components, got %d", len(parts))
	}
	for _, p := range parts {
		if p < 0 || p > 255 {
			return fmt.Errorf("color component %d out of range [0, 255]", p)
		}
	}

	*c = RGBA{R: uint8(parts[0]), G: uint8(parts[1]), B: uint8(parts[2]), A: 255}
	if len(parts) == 4 {
		c.A = uint8(parts[3])
	}
	return nil
}

// Color 转换为 image/color 类型
func (c RGBA) Color() color.Color {
	return color.NRGBA(c)
}

// Placeholder 可选图片加载失败时使用的纯色占位图
type Placeholder struct {
	Width  int  `yaml:"width"`
	Height int  `yaml:"height"`
	Color  RGBA `yaml:"color"`
}

// ImageRef 引用 resources.yaml 中的图片资源ID，并附带占位图描述
type ImageRef struct {
	ID          string      `yaml:"id"`
	Placeholder Placeholder `yaml:"placeholder"`
}
