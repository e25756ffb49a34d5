package game

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// ResourceConfig represents the optional image manifest loaded from YAML.
// It maps the logical sprite names used by the scenes to image files.
//
// Structure (assets/config/images.yaml):
//
//	version: "1.0"
//	base_path: images
//	images:
//	  - id: House
//	    path: house.png
//	  - id: BackgroundNight
//	    path: night/background.png
//
// Sprites that are not listed fall back to <assetsDir>/images/<name>.png.
type ResourceConfig struct {
	Version  string          `yaml:"version"`   // Configuration file version
	BasePath string          `yaml:"base_path"` // Base path relative to the assets directory
	Images   []ImageResource `yaml:"images"`    // Image definitions
}

// ImageResource represents a single image resource definition.
//
// Fields:
//   - ID: Logical sprite name (e.g., "House", "Raindrop")
//   - Path: Relative path from base_path to the image file
type ImageResource struct {
	ID   string `yaml:"id"`   // Logical sprite name
	Path string `yaml:"path"` // Relative file path from base_path
}

// LoadResourceConfig reads and parses an image manifest.
//
// Returns an error if the file cannot be read, is not valid YAML,
// or contains an entry without id or path.
func LoadResourceConfig(path string) (*ResourceConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read resource config %s: %w", path, err)
	}

	var cfg ResourceConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse resource config %s: %w", path, err)
	}

	for i, img := range cfg.Images {
		if img.ID == "" || img.Path == "" {
			return nil, fmt.Errorf("resource config %s: image #%d needs both id and path", path, i)
		}
	}

	return &cfg, nil
}

// buildFullPath constructs the full file path for a resource.
// It combines the assets directory, the manifest base path and the resource's relative path.
func buildFullPath(assetsDir, basePath, relativePath string) string {
	return filepath.Join(assetsDir, basePath, relativePath)
}
