package config

import (
	"fmt"
	"os"

	"github.com/decker502/lightsout/pkg/embedded"
)

// readConfigFile 读取配置文件
// 优先从嵌入资源读取（路径以 "data/" 开头），找不到时回退到文件系统，
// 便于测试和本地覆盖配置
func readConfigFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		data, err := embedded.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read embedded config %s: %w", path, err)
		}
		return data, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}
	return data, nil
}
