// embed.go - 配置嵌入声明
// 必须放在项目根目录（与 data/ 同级）
// 因为 //go:embed 指令只能嵌入当前包目录及其子目录的文件
//
// 图片和音频不嵌入：课件素材由讲师单独分发，通过 --assets 指定目录
package main

import "embed"

//go:embed data/resources.yaml data/slideshow.yaml data/minigames.yaml
var dataFS embed.FS
