package game

import (
	"fmt"
	"path/filepath"
)

// ResourceConfig represents the top-level resource configuration loaded from YAML.
// It maps resource IDs to asset files; see data/resources.yaml.
//
// Structure:
//
//	version: "1.0"
//	base_path: assets
//	groups:
//	  group_name:
//	    images: [...]
//	    sounds: [...]
//	    fonts: [...]
type ResourceConfig struct {
	Version  string                   `yaml:"version"`   // Configuration file version
	BasePath string                   `yaml:"base_path"` // Base directory for all assets, overridable with --assets
	Groups   map[string]ResourceGroup `yaml:"groups"`    // Resource groups keyed by group name
}

// ResourceGroup is a collection of related resources, e.g. all slides or
// everything one mini-game needs.
type ResourceGroup struct {
	Images []ImageResource `yaml:"images"` // Image resources in this group
	Sounds []SoundResource `yaml:"sounds"` // Sound resources in this group
	Fonts  []FontResource  `yaml:"fonts"`  // Font resources in this group
}

// ImageResource is a single image definition.
//
// Example:
//
//	- id: IMAGE_SLIDE_01
//	  path: slides/1.png
type ImageResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// SoundResource is a single sound definition.
//
// Fields:
//   - Volume: base volume of the cue before the player's sound/music setting is applied.
//     Zero means full volume.
//   - MaxInstances: how many copies of the cue may play at once. Zero uses the default cap.
//   - Loop: the sound is a looping track (ambient rumble, background music).
//
// Example:
//
//	- id: SOUND_SPACE_TAP
//	  path: sounds/space_tap.wav
//	  volume: 0.16
//	  max_instances: 8
type SoundResource struct {
	ID           string  `yaml:"id"`                      // Resource ID (unique identifier)
	Path         string  `yaml:"path"`                    // Relative file path from base_path
	Volume       float64 `yaml:"volume,omitempty"`        // Base volume 0.0 ~ 1.0
	MaxInstances int     `yaml:"max_instances,omitempty"` // Concurrent playback cap
	Loop         bool    `yaml:"loop,omitempty"`          // Looping track
}

// FontResource is a single TrueType/OpenType font definition.
type FontResource struct {
	ID   string `yaml:"id"`   // Resource ID (unique identifier)
	Path string `yaml:"path"` // Relative file path from base_path
}

// validate checks that resource IDs are unique across all groups and every
// resource has a path.
func (c *ResourceConfig) validate() error {
	seen := make(map[string]string)
	check := func(group, id, path string) error {
		if id == "" {
			return fmt.Errorf("group %s: resource with empty id", group)
		}
		if path == "" {
			return fmt.Errorf("group %s: resource %s has no path", group, id)
		}
		if other, exists := seen[id]; exists {
			return fmt.Errorf("duplicate resource id %s in groups %s and %s", id, other, group)
		}
		seen[id] = group
		return nil
	}

	for name, group := range c.Groups {
		for _, img := range group.Images {
			if err := check(name, img.ID, img.Path); err != nil {
				return err
			}
		}
		for _, snd := range group.Sounds {
			if err := check(name, snd.ID, snd.Path); err != nil {
				return err
			}
			if snd.Volume < 0 || snd.Volume > 1 {
				return fmt.Errorf("sound %s: volume %v out of range [0, 1]", snd.ID, snd.Volume)
			}
			if snd.MaxInstances < 0 {
				return fmt.Errorf("sound %s: max_instances must not be negative", snd.ID)
			}
		}
		for _, font := range group.Fonts {
			if err := check(name, font.ID, font.Path); err != nil {
				return err
			}
		}
	}
	return nil
}

// buildFullPath constructs the full file path for a resource.
// It combines the base path with the resource's relative path.
//
// Parameters:
//   - basePath: The asset directory (e.g., "assets")
//   - relativePath: The resource's relative path (e.g., "slides/1.png")
//
// Returns:
//   - The full file path (e.g., "assets/slides/1.png")
func buildFullPath(basePath, relativePath string) string {
	if basePath == "" || filepath.IsAbs(relativePath) {
		return relativePath
	}
	return filepath.Join(basePath, relativePath)
}
