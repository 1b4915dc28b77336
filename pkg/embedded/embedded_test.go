package embedded

import (
	"testing"
	"testing/fstest"
)

// testFS 模拟根目录 embed.go 中声明的 dataFS
var testFS = fstest.MapFS{
	"data/slideshow.yaml": &fstest.MapFile{Data: []byte("slides: [IMAGE_SLIDE_01]\n")},
}

// TestIsInitialized 测试初始化状态检测
func TestIsInitialized(t *testing.T) {
	initialized = false

	if IsInitialized() {
		t.Error("Expected IsInitialized() to return false before Init()")
	}

	Init(testFS)
	defer func() { initialized = false }()

	if !IsInitialized() {
		t.Error("Expected IsInitialized() to return true after Init()")
	}
}

// TestNotInitialized 测试未初始化时的各个接口
func TestNotInitialized(t *testing.T) {
	initialized = false

	if _, err := Open("data/slideshow.yaml"); err == nil || err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("Open() before Init(): unexpected error %v", err)
	}
	if _, err := ReadFile("data/slideshow.yaml"); err == nil || err.Error() != "embedded package not initialized, call Init() first" {
		t.Errorf("ReadFile() before Init(): unexpected error %v", err)
	}
	if Exists("data/slideshow.yaml") {
		t.Error("Expected Exists() to return false before Init()")
	}
}

// TestReadFile 测试读取嵌入文件
func TestReadFile(t *testing.T) {
	Init(testFS)
	defer func() { initialized = false }()

	tests := []struct {
		name    string
		path    string
		wantErr bool
	}{
		{name: "plain path", path: "data/slideshow.yaml"},
		{name: "dot slash prefix", path: "./data/slideshow.yaml"},
		{name: "missing file", path: "data/missing.yaml", wantErr: true},
		{name: "invalid prefix", path: "assets/slides/1.png", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data, err := ReadFile(tt.path)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ReadFile(%q) error = %v, wantErr %v", tt.path, err, tt.wantErr)
			}
			if !tt.wantErr && string(data) != "slides: [IMAGE_SLIDE_01]\n" {
				t.Errorf("ReadFile(%q) returned unexpected content %q", tt.path, data)
			}
		})
	}
}

// TestOpenInvalidPrefix 测试无效路径前缀的错误信息
func TestOpenInvalidPrefix(t *testing.T) {
	Init(testFS)
	defer func() { initialized = false }()

	_, err := Open("invalid/path/test.png")
	if err == nil {
		t.Fatal("Expected error for invalid path prefix")
	}
	if err.Error() != "unknown resource path prefix: invalid/path/test.png (must start with 'data/')" {
		t.Errorf("Unexpected error message: %v", err)
	}
}

// TestExists 测试文件存在检查
func TestExists(t *testing.T) {
	Init(testFS)
	defer func() { initialized = false }()

	if !Exists("data/slideshow.yaml") {
		t.Error("Expected data/slideshow.yaml to exist")
	}
	if Exists("data/minigames.yaml") {
		t.Error("Expected data/minigames.yaml to be missing")
	}
}
