// pkg/render/engo/assets.go
package engo

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"sync"

	"github.com/EngoEngine/engo"
	"github.com/EngoEngine/engo/common"
	"golang.org/x/image/font/gofont/goregular"

	"github.com/opd-ai/go-spaceman/pkg/render"
)

// FontURL is the virtual file the bundled Go font is registered under.
const FontURL = "fonts/goregular.ttf"

// UploadFunc converts a decoded image into something engo can draw.
type UploadFunc func(img image.Image) common.Drawable

// AssetManager caches engo drawables per texture and fonts per size and
// colour.
type AssetManager struct {
	upload   UploadFunc
	textures map[*render.Texture]common.Drawable

	newFont FontFunc
	fonts   map[fontKey]*common.Font
}

// FontFunc builds a font of the given pixel size and colour.
type FontFunc func(size float64, c color.Color) (*common.Font, error)

type fontKey struct {
	size int
	rgba color.RGBA
}

// NewAssetManager creates an asset manager. A nil upload uses
// UploadTexture. A nil font builder disables text.
func NewAssetManager(upload UploadFunc, newFont FontFunc) *AssetManager {
	if upload == nil {
		upload = UploadTexture
	}
	return &AssetManager{
		upload:   upload,
		textures: make(map[*render.Texture]common.Drawable),
		newFont:  newFont,
		fonts:    make(map[fontKey]*common.Font),
	}
}

// Drawable returns the drawable for t, uploading it on first use.
func (am *AssetManager) Drawable(t *render.Texture) common.Drawable {
	if t == nil || t.Image == nil {
		return nil
	}
	if d, ok := am.textures[t]; ok {
		return d
	}
	d := am.upload(t.Image)
	am.textures[t] = d
	return d
}

// Font returns a cached font, or nil when text is disabled.
func (am *AssetManager) Font(size float64, c color.Color) (*common.Font, error) {
	if am.newFont == nil {
		return nil, nil
	}
	key := fontKey{size: int(size + 0.5), rgba: toRGBA(c)}
	if f, ok := am.fonts[key]; ok {
		return f, nil
	}
	f, err := am.newFont(float64(key.size), key.rgba)
	if err != nil {
		return nil, err
	}
	am.fonts[key] = f
	return f, nil
}

// Textures returns how many textures have been uploaded.
func (am *AssetManager) Textures() int { return len(am.textures) }

// Forget drops every cached drawable, for example after a prototype reload.
func (am *AssetManager) Forget() {
	clear(am.textures)
}

// UploadTexture converts img to NRGBA and creates a GL texture. It needs a
// live GL context.
func UploadTexture(img image.Image) common.Drawable {
	return common.NewTextureSingle(common.NewImageObject(toNRGBA(img)))
}

func toNRGBA(img image.Image) *image.NRGBA {
	if n, ok := img.(*image.NRGBA); ok {
		return n
	}
	bounds := img.Bounds()
	out := image.NewNRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(out, out.Bounds(), img, bounds.Min, draw.Src)
	return out
}

func toRGBA(c color.Color) color.RGBA {
	if c == nil {
		return color.RGBA{255, 255, 255, 255}
	}
	r, g, b, a := c.RGBA()
	return color.RGBA{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8), uint8(a >> 8)}
}

var registerFont sync.Once

// LoadFont registers the bundled Go font with engo.Files.
func LoadFont() error {
	var err error
	registerFont.Do(func() {
		err = engo.Files.LoadReaderData(FontURL, bytes.NewReader(goregular.TTF))
	})
	if err != nil {
		return fmt.Errorf("engo: load font: %w", err)
	}
	return nil
}

// GoFont builds fonts from the bundled Go font. LoadFont must have run.
func GoFont(size float64, c color.Color) (*common.Font, error) {
	f := &common.Font{
		URL:  FontURL,
		FG:   c,
		BG:   color.Transparent,
		Size: size,
	}
	if err := f.CreatePreloaded(); err != nil {
		return nil, fmt.Errorf("engo: create font: %w", err)
	}
	return f, nil
}
