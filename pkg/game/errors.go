package game

import "errors"

// ErrRequiredAssetMissing 必需的素材（幻灯片图片）无法加载，程序无法继续运行
var ErrRequiredAssetMissing = errors.New("required asset missing")
