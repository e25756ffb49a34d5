package game

import (
	"fmt"
	"hash/fnv"
	"image"
	"image/color"
	_ "image/png" // Register PNG decoder
	"log"
	"os"
	"path/filepath"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/decker502/redsun/pkg/config"
)

// ResourceManager is responsible for centralized management of image resources.
// Scenes refer to sprites by logical name ("House", "Raindrop"); the manager
// resolves the name to a file, decodes it once and caches the result.
//
// Missing images are not fatal: Image returns a flat placeholder of a stable
// per-name colour so the cutscene stays playable without its art.
//
// Thread Safety Note:
// This implementation is NOT thread-safe. It is only used from the game loop.
type ResourceManager struct {
	assetsDir  string
	imageCache map[string]*ebiten.Image // Cache for loaded images: name -> Image
	paths      map[string]string        // Logical name -> file path, from the manifest
	missing    map[string]bool          // Names already reported as missing
}

// NewResourceManager creates a ResourceManager rooted at assetsDir.
//
// Example:
//
//	rm := NewResourceManager("assets")
//	img := rm.Image("House") // assets/images/House.png or a placeholder
func NewResourceManager(assetsDir string) *ResourceManager {
	return &ResourceManager{
		assetsDir:  assetsDir,
		imageCache: make(map[string]*ebiten.Image),
		paths:      make(map[string]string),
		missing:    make(map[string]bool),
	}
}

// LoadResourceConfig registers the entries of an image manifest.
// Entries override the default <assetsDir>/images/<name>.png location.
func (rm *ResourceManager) LoadResourceConfig(path string) error {
	cfg, err := LoadResourceConfig(path)
	if err != nil {
		return err
	}
	for _, img := range cfg.Images {
		rm.paths[img.ID] = buildFullPath(rm.assetsDir, cfg.BasePath, img.Path)
	}
	log.Printf("[ResourceManager] 已加载图片清单 %s (%d 项)", path, len(cfg.Images))
	return nil
}

// ImagePath returns the file path an image name resolves to.
func (rm *ResourceManager) ImagePath(name string) string {
	if p, ok := rm.paths[name]; ok {
		return p
	}
	return filepath.Join(rm.assetsDir, "images", name+".png")
}

// LoadImage loads the image for a logical name and caches it for future use.
//
// Returns an error if the file does not exist or cannot be decoded.
// Does not panic - all errors are returned to the caller for handling.
func (rm *ResourceManager) LoadImage(name string) (*ebiten.Image, error) {
	if cachedImage, exists := rm.imageCache[name]; exists {
		return cachedImage, nil
	}

	path := rm.ImagePath(name)
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
	rm.imageCache[name] = ebitenImg
	return ebitenImg, nil
}

// Image returns the image for a logical name, never nil.
// When loading fails a placeholder is generated, cached and logged once.
func (rm *ResourceManager) Image(name string) *ebiten.Image {
	img, err := rm.LoadImage(name)
	if err == nil {
		return img
	}

	if !rm.missing[name] {
		rm.missing[name] = true
		log.Printf("[ResourceManager] 警告: %v，使用占位图", err)
	}

	w, h := 16, 16
	if size, ok := config.GetSpriteSize(name); ok {
		w, h = int(size.Width), int(size.Height)
	}
	placeholder := ebiten.NewImage(w, h)
	placeholder.Fill(PlaceholderColor(name))
	rm.imageCache[name] = placeholder
	return placeholder
}

// placeholderColors fixed colours for the cutscene's own sprites
var placeholderColors = map[string]color.RGBA{
	"BackgroundNight":          {R: 16, G: 20, B: 48, A: 255},
	"BackgroundNightLightning": {R: 120, G: 130, B: 170, A: 255},
	"GroundNight":              {R: 24, G: 36, B: 20, A: 255},
	"Ground":                   {R: 96, G: 64, B: 32, A: 255},
	"House":                    {R: 90, G: 50, B: 40, A: 255},
	"Raindrop":                 {R: 150, G: 170, B: 220, A: 255},
	"WindowView":               {R: 30, G: 30, B: 40, A: 255},
	"Bed":                      {R: 140, G: 120, B: 100, A: 255},
	"Pitchfork":                {R: 170, G: 170, B: 160, A: 255},
	"Reachingarm":              {R: 200, G: 160, B: 130, A: 255},
	"DoorClosed":               {R: 60, G: 40, B: 30, A: 255},
	"DoorOpen":                 {R: 20, G: 15, B: 10, A: 255},
	"Fear":                     {R: 80, G: 70, B: 90, A: 255},
	"Stabbing":                 {R: 140, G: 10, B: 10, A: 255},
	"PitchforkForward":         {R: 190, G: 190, B: 180, A: 255},
}

// PlaceholderColor returns the colour used when an image cannot be loaded.
// Unknown names get a stable colour derived from the name.
func PlaceholderColor(name string) color.RGBA {
	if c, ok := placeholderColors[name]; ok {
		return c
	}
	h := fnv.New32a()
	h.Write([]byte(name))
	sum := h.Sum32()
	return color.RGBA{R: uint8(sum), G: uint8(sum >> 8), B: uint8(sum >> 16), A: 255}
}
