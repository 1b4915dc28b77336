// Package types 定义共享的基础类型
// 这个包不依赖任何其他业务包，用于解决循环引用问题
package types

import (
	"fmt"

	"gopkg.in/yaml.v3"
)

// Variant 定义小游戏的类型（三种皮肤共用同一个引擎）
type Variant int

const (
	// VariantNone 没有正在进行的小游戏
	VariantNone Variant = iota
	// VariantOxidativeStress 氧化应激：细菌逐级变色，天平倾斜
	VariantOxidativeStress
	// VariantOsmoticShock 渗透压冲击：细菌缩小，盐粒增多，背景变色
	VariantOsmoticShock
	// VariantEnzymeInhibition 酶抑制：酶状态切换，抑制剂滑入
	VariantEnzymeInhibition
)

// String 返回配置文件中使用的名称
func (v Variant) String() string {
	switch v {
	case VariantOxidativeStress:
		return "oxidative_stress"
	case VariantOsmoticShock:
		return "osmotic_shock"
	case VariantEnzymeInhibition:
		return "enzyme_inhibition"
	default:
		return "none"
	}
}

// ParseVariant 将配置名称解析为 Variant
func ParseVariant(name string) (Variant, error) {
	switch name {
	case "oxidative_stress":
		return VariantOxidativeStress, nil
	case "osmotic_shock":
		return VariantOsmoticShock, nil
	case "enzyme_inhibition":
		return VariantEnzymeInhibition, nil
	default:
		return VariantNone, fmt.Errorf("unknown mini-game variant %q", name)
	}
}

// UnmarshalYAML 允许在 YAML 中直接写变体名称
func (v *Variant) UnmarshalYAML(node *yaml.Node) error {
	var name string
	if err := node.Decode(&name); err != nil {
		return err
	}
	parsed, err := ParseVariant(name)
	if err != nil {
		return err
	}
	*v = parsed
	return nil
}

// MarshalYAML 输出变体名称
func (v Variant) MarshalYAML() (interface{}, error) {
	return v.String(), nil
}
