package utils

import (
	"image/color"
	"math"
	"math/rand"

	"github.com/lucasb-eyer/go-colorful"
)

// Procedural Effects (程序化效果)
//
// 小游戏的所有视觉反馈都由生命值比例 ratio ∈ [0, 1] 驱动：
// 抖动、血条颜色、背景色相、倾斜角度、缩放、精灵档位、环境音量、粒子数量。
// 这里都是纯函数，方便单独测试。

// RumbleParams 抖动曲线参数
type RumbleParams struct {
	Gate      float64 // 生命值低于 Gate 才开始抖动
	Base      float64 // 强度基准：intensity = (Base - health) / Base
	Exponent  float64 // 强度指数
	Scale     float64 // 幅度倍数
	MaxOffset float64 // 最大像素偏移
	DeadZone  float64 // 幅度不超过此值视为 0
}

// RumbleMagnitude 计算当前生命值对应的抖动幅度（像素）
// 只在 0 < health < Gate 时抖动
func RumbleMagnitude(health float64, p RumbleParams) float64 {
	if health <= 0 || health >= p.Gate || p.Base <= 0 {
		return 0
	}
	intensity := (p.Base - health) / p.Base
	if intensity <= 0 {
		return 0
	}
	magnitude := p.MaxOffset * p.Scale * math.Pow(intensity, p.Exponent)
	if magnitude <= p.DeadZone {
		return 0
	}
	return magnitude
}

// RumbleOffset 在 [-int(m), int(m)] 内为每个轴取一个随机整数偏移
// 每帧重新采样
func RumbleOffset(rng *rand.Rand, magnitude float64) (dx, dy float64) {
	m := int(magnitude)
	if m <= 0 {
		return 0, 0
	}
	dx = float64(rng.Intn(2*m+1) - m)
	dy = float64(rng.Intn(2*m+1) - m)
	return dx, dy
}

// HealthBarColor 血条颜色：满血绿色，一半黄色，归零红色
// 以 0.5 为界分两段线性变化
func HealthBarColor(ratio float64) color.RGBA {
	ratio = Clamp01(ratio)
	if ratio > 0.5 {
		r := uint8(255 * (1 - (ratio-0.5)*2))
		return color.RGBA{R: r, G: 255, B: 0, A: 255}
	}
	g := uint8(255 * ratio * 2)
	return color.RGBA{R: 255, G: g, B: 0, A: 255}
}

// BackgroundHue 渗透压背景色相（度）
// 归零 0°（红），一半 270°（紫），满血 180°（青）
func BackgroundHue(ratio float64) float64 {
	ratio = Clamp01(ratio)
	if ratio > 0.5 {
		return 270 - 90*(ratio-0.5)*2
	}
	return 270 * ratio * 2
}

// BackgroundColor 把 BackgroundHue 按 HSL(hue, 100%, 50%) 转成 RGB
func BackgroundColor(ratio float64) color.RGBA {
	r, g, b := colorful.Hsl(BackgroundHue(ratio), 1, 0.5).RGB255()
	return color.RGBA{R: r, G: g, B: b, A: 255}
}

// LinearMap 把 ratio 从 [0, 1] 线性映射到 [from, to]
// 例如倾斜角度 (-30, 30)、缩放 (MinScale, 1)、抑制剂位置 (EndX, StartX)
func LinearMap(ratio, from, to float64) float64 {
	return Lerp(from, to, ratio)
}

// BucketIndex 返回第一个满足 health > thresholds[i] 的 i
// 都不满足时返回 len(thresholds)，即最后一张图
func BucketIndex(health float64, thresholds []float64) int {
	for i, th := range thresholds {
		if health > th {
			return i
		}
	}
	return len(thresholds)
}

// AmbientVolume 环境音量 (1 - ratio)²，生命值越低越响
func AmbientVolume(ratio float64) float64 {
	v := 1 - ratio
	return Clamp01(v * v)
}

// VisibleParticleCount 根据生命值计算需要显示的粒子数
// min(int((1-ratio)*pool*factor), pool)
func VisibleParticleCount(ratio float64, pool int, factor float64) int {
	n := int((1 - Clamp01(ratio)) * float64(pool) * factor)
	if n > pool {
		return pool
	}
	if n < 0 {
		return 0
	}
	return n
}

// Clamp01 把 v 限制在 [0, 1]
func Clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}

// Lerp 线性插值：t=0 返回 a，t=1 返回 b
func Lerp(a, b, t float64) float64 {
	return a + (b-a)*t
}
