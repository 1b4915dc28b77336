package game

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	_ "image/jpeg" // Register JPEG decoder
	_ "image/png"  // Register PNG decoder
	"io"
	"log"
	"os"
	"path/filepath"
	"strings"

	"github.com/decker502/lightsout/pkg/config"
	"github.com/decker502/lightsout/pkg/embedded"
	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/audio"
	"github.com/hajimehoshi/ebiten/v2/audio/mp3"
	"github.com/hajimehoshi/ebiten/v2/audio/vorbis"
	"github.com/hajimehoshi/ebiten/v2/audio/wav"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
	"gopkg.in/yaml.v3"
)

// ResourceManager is responsible for centralized management of slideshow assets.
// It loads images and sounds by resource ID (see data/resources.yaml) and caches
// them so every asset is decoded only once.
//
// Key features:
//   - Image loading and caching (PNG/JPEG)
//   - Sound decoding to raw PCM (WAV/MP3/OGG/AU) so cues can be replayed as
//     independent overlapping players
//   - Solid-colour placeholders for optional images that are missing on disk
//   - A built-in default font (Go Regular) for the health percentage text
//
// Thread Safety Note:
// This implementation is NOT thread-safe. All loading happens on the game
// goroutine before and during the ebiten loop.
//
// Usage:
//
//	audioContext := audio.NewContext(48000)
//	rm := NewResourceManager(audioContext)
//	if err := rm.LoadResourceConfig("data/resources.yaml"); err != nil {
//	    return err
//	}
//	img, err := rm.LoadImageByID("IMAGE_SLIDE_01")
type ResourceManager struct {
	imageCache    map[string]*ebiten.Image    // Cache for loaded images: path -> Image
	soundCache    map[string][]byte           // Cache for decoded PCM data: path -> bytes
	fontFaceCache map[string]*text.GoTextFace // Cache for text faces: key -> face
	fontSource    *text.GoTextFaceSource      // Default font source, created lazily
	audioContext  *audio.Context              // Global audio context (sample rate for decoding)

	// YAML resource configuration
	config      *ResourceConfig          // Parsed YAML configuration
	resourceMap map[string]string        // Resource ID -> file path mapping for quick lookup
	soundInfo   map[string]SoundResource // Sound ID -> definition (volume, cap, loop)
	basePath    string                   // Asset directory; overrides config.BasePath when set
}

// NewResourceManager creates and initializes a new ResourceManager instance.
// audioContext may be nil when no sounds are loaded (e.g. in tests).
func NewResourceManager(audioContext *audio.Context) *ResourceManager {
	return &ResourceManager{
		imageCache:    make(map[string]*ebiten.Image),
		soundCache:    make(map[string][]byte),
		fontFaceCache: make(map[string]*text.GoTextFace),
		audioContext:  audioContext,
		resourceMap:   make(map[string]string),
		soundInfo:     make(map[string]SoundResource),
	}
}

// SetBasePath overrides the asset directory from the resource config.
// It must be called before LoadResourceConfig, or the resource map is rebuilt.
func (rm *ResourceManager) SetBasePath(path string) {
	rm.basePath = path
	rm.buildResourceMap()
}

// BasePath returns the effective asset directory.
func (rm *ResourceManager) BasePath() string {
	if rm.basePath != "" {
		return rm.basePath
	}
	if rm.config != nil {
		return rm.config.BasePath
	}
	return ""
}

// LoadImage loads an image file from the specified path and caches it for future use.
// If the image has already been loaded, it returns the cached version.
func (rm *ResourceManager) LoadImage(path string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[path]; exists {
		return cachedImage, nil
	}

	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image file %s: %w", path, err)
	}
	defer file.Close()

	img, _, err := image.Decode(file)
	if err != nil {
		return nil, fmt.Errorf("failed to decode image %s: %w", path, err)
	}

	ebitenImg := ebiten.NewImageFromImage(img)
	rm.imageCache[path] = ebitenImg
	return ebitenImg, nil
}

// LoadResourceConfig loads the resource configuration from a YAML file.
// The file is read from the embedded data when available, otherwise from disk.
//
// Parameters:
//   - configPath: Path to the YAML configuration file (e.g., "data/resources.yaml")
//
// Returns:
//   - An error if the file cannot be read, parsed or validated
func (rm *ResourceManager) LoadResourceConfig(configPath string) error {
	data, err := readDataFile(configPath)
	if err != nil {
		return fmt.Errorf("failed to read resource config %s: %w", configPath, err)
	}

	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse resource config %s: %w", configPath, err)
	}
	if err := cfg.validate(); err != nil {
		return fmt.Errorf("invalid resource config %s: %w", configPath, err)
	}

	rm.config = &cfg
	rm.buildResourceMap()

	log.Printf("[ResourceManager] Loaded resource config %s: %d resources, base path %q",
		configPath, len(rm.resourceMap), rm.BasePath())
	return nil
}

// buildResourceMap constructs a mapping from resource IDs to full file paths.
//
// For example:
//
//	IMAGE_SLIDE_01 -> assets/slides/1.png
//	SOUND_SPACE_TAP -> assets/sounds/space_tap.wav
func (rm *ResourceManager) buildResourceMap() {
	if rm.config == nil {
		return
	}

	rm.resourceMap = make(map[string]string)
	rm.soundInfo = make(map[string]SoundResource)
	base := rm.BasePath()

	for _, group := range rm.config.Groups {
		for _, img := range group.Images {
			fullPath := buildFullPath(base, img.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".png"
			}
			rm.resourceMap[img.ID] = fullPath
		}

		for _, sound := range group.Sounds {
			fullPath := buildFullPath(base, sound.Path)
			if filepath.Ext(fullPath) == "" {
				fullPath += ".wav"
			}
			rm.resourceMap[sound.ID] = fullPath
			rm.soundInfo[sound.ID] = sound
		}

		for _, font := range group.Fonts {
			rm.resourceMap[font.ID] = buildFullPath(base, font.Path)
		}
	}
}

// ResolvePath returns the file path registered for a resource ID.
func (rm *ResourceManager) ResolvePath(resourceID string) (string, bool) {
	path, exists := rm.resourceMap[resourceID]
	return path, exists
}

// LoadImageByID loads an image resource using its resource ID.
//
// Returns:
//   - A pointer to the loaded ebiten.Image
//   - An error if the config is not loaded, the ID is unknown or the image cannot be loaded
func (rm *ResourceManager) LoadImageByID(resourceID string) (*ebiten.Image, error) {
	if rm.config == nil {
		return nil, fmt.Errorf("resource config not loaded - call LoadResourceConfig first")
	}

	filePath, exists := rm.resourceMap[resourceID]
	if !exists {
		return nil, fmt.Errorf("resource ID not found: %s", resourceID)
	}

	return rm.LoadImage(filePath)
}

// LoadRequiredImage loads an image that the program cannot run without (a slide).
// Any failure is wrapped with ErrRequiredAssetMissing.
func (rm *ResourceManager) LoadRequiredImage(resourceID string) (*ebiten.Image, error) {
	img, err := rm.LoadImageByID(resourceID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrRequiredAssetMissing, resourceID, err)
	}
	return img, nil
}

// LoadImageOrPlaceholder loads an optional image.
// When the file is missing or broken it logs a warning and returns a
// solid-colour placeholder described by ref.Placeholder instead.
// The bool result reports whether the real asset was loaded; callers that
// scale assets to a configured size keep placeholders at their own size.
func (rm *ResourceManager) LoadImageOrPlaceholder(ref config.ImageRef) (*ebiten.Image, bool) {
	if ref.ID != "" {
		img, err := rm.LoadImageByID(ref.ID)
		if err == nil {
			return img, true
		}
		log.Printf("[ResourceManager] Warning: %v (using placeholder)", err)
	}

	// 占位图按 ID 缓存，避免每次缺图都新建纹理
	cacheKey := "placeholder:" + ref.ID
	if img, exists := rm.imageCache[cacheKey]; exists {
		return img, false
	}
	p := ref.Placeholder
	img := NewPlaceholderImage(p.Width, p.Height, p.Color.Color())
	rm.imageCache[cacheKey] = img
	return img, false
}

// NewPlaceholderImage creates a solid-colour image used in place of a missing asset.
// Non-positive sizes fall back to 1x1.
func NewPlaceholderImage(width, height int, c color.Color) *ebiten.Image {
	if width <= 0 {
		width = 1
	}
	if height <= 0 {
		height = 1
	}
	img := ebiten.NewImage(width, height)
	img.Fill(c)
	return img
}

// LoadSound loads and decodes an audio file to raw PCM at the audio context's
// sample rate. The PCM data is cached; callers create their own players from it.
// Supported formats: WAV (.wav), MP3 (.mp3) and OGG Vorbis (.ogg).
func (rm *ResourceManager) LoadSound(path string) ([]byte, error) {
	if pcm, exists := rm.soundCache[path]; exists {
		return pcm, nil
	}
	if rm.audioContext == nil {
		return nil, fmt.Errorf("no audio context to decode %s", path)
	}

	audioData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read audio file %s: %w", path, err)
	}
	reader := bytes.NewReader(audioData)
	sampleRate := rm.audioContext.SampleRate()

	var stream io.Reader
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".wav":
		s, err := wav.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode WAV audio %s: %w", path, err)
		}
		stream = s
	case ".mp3":
		s, err := mp3.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode MP3 audio %s: %w", path, err)
		}
		stream = s
	case ".ogg":
		s, err := vorbis.DecodeWithSampleRate(sampleRate, reader)
		if err != nil {
			return nil, fmt.Errorf("failed to decode OGG audio %s: %w", path, err)
		}
		stream = s
	default:
		return nil, fmt.Errorf("unsupported audio format: %s (supported: .wav, .mp3, .ogg)", ext)
	}

	pcm, err := io.ReadAll(stream)
	if err != nil {
		return nil, fmt.Errorf("failed to decode audio %s: %w", path, err)
	}

	rm.soundCache[path] = pcm
	return pcm, nil
}

// LoadSoundByID loads a sound by resource ID and returns its PCM data and definition.
func (rm *ResourceManager) LoadSoundByID(soundID string) ([]byte, SoundResource, error) {
	info, exists := rm.soundInfo[soundID]
	if !exists {
		return nil, SoundResource{}, fmt.Errorf("sound resource ID not found: %s", soundID)
	}
	pcm, err := rm.LoadSound(rm.resourceMap[soundID])
	if err != nil {
		return nil, info, err
	}
	return pcm, info, nil
}

// SoundInfo returns the definition of a sound resource.
func (rm *ResourceManager) SoundInfo(soundID string) (SoundResource, bool) {
	info, exists := rm.soundInfo[soundID]
	return info, exists
}

// LoadFont loads a TrueType/OpenType font from the specified path and creates a text face with the given size.
// The font face is cached for future use with a cache key combining path and size.
func (rm *ResourceManager) LoadFont(path string, size float64) (*text.GoTextFace, error) {
	cacheKey := fmt.Sprintf("%s:%.1f", path, size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	fontData, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read font file %s: %w", path, err)
	}

	source, err := text.NewGoTextFaceSource(bytes.NewReader(fontData))
	if err != nil {
		return nil, fmt.Errorf("failed to create font source for %s: %w", path, err)
	}

	face := &text.GoTextFace{
		Source:    source,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// LoadDefaultFont returns the UI font at the given size.
// A font registered as config.FontUI in resources.yaml wins; when it is not
// registered or fails to load, the built-in Go Regular font is used.
func (rm *ResourceManager) LoadDefaultFont(size float64) (*text.GoTextFace, error) {
	if path, exists := rm.resourceMap[config.FontUI]; exists {
		face, err := rm.LoadFont(path, size)
		if err == nil {
			return face, nil
		}
		log.Printf("[ResourceManager] Warning: %v (using built-in font)", err)
	}

	cacheKey := fmt.Sprintf("goregular:%.1f", size)
	if cachedFace, exists := rm.fontFaceCache[cacheKey]; exists {
		return cachedFace, nil
	}

	if rm.fontSource == nil {
		source, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
		if err != nil {
			return nil, fmt.Errorf("failed to create default font source: %w", err)
		}
		rm.fontSource = source
	}

	face := &text.GoTextFace{
		Source:    rm.fontSource,
		Size:      size,
		Direction: text.DirectionLeftToRight,
	}
	rm.fontFaceCache[cacheKey] = face
	return face, nil
}

// readDataFile reads a configuration file from the embedded data when it is
// available there, otherwise from disk.
func readDataFile(path string) ([]byte, error) {
	if embedded.IsInitialized() && embedded.Exists(path) {
		return embedded.ReadFile(path)
	}
	return os.ReadFile(path)
}
