// Package assets loads sprite textures from a file system and groups them
// into named sprite states.
package assets

import (
	"context"
	"fmt"
	"image"
	"image/color"
	_ "image/png"
	"io/fs"
	"path"
	"regexp"
	"slices"
	"strconv"
	"strings"

	"github.com/opd-ai/go-spaceman/pkg/config"
	"github.com/opd-ai/go-spaceman/pkg/logging"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

// animFrame matches "name_NN.png" animation frames.
var animFrame = regexp.MustCompile(`^(?P<name>.+)_(?P<frame>\d+)\.png$`)

// Library decodes and caches textures from fsys. Every texture is scaled
// by the configured global scale.
type Library struct {
	fsys         fs.FS
	scale        float64
	changeFrames int
	cache        map[string]*render.Texture
	logger       *logging.Logger
}

// NewLibrary creates a texture library over fsys.
func NewLibrary(fsys fs.FS, settings *config.Settings, logger *logging.Logger) *Library {
	if logger == nil {
		logger = logging.Discard()
	}
	return &Library{
		fsys:         fsys,
		scale:        settings.Float(config.KeyGlobalScale, 1.0),
		changeFrames: settings.Int(config.KeyFramesBetweenChange, render.DefaultFramesBetweenChange),
		cache:        make(map[string]*render.Texture),
		logger:       logger.Component("assets"),
	}
}

// Scale returns the global scale applied to loaded textures.
func (l *Library) Scale() float64 { return l.scale }

// Texture decodes the PNG at name, caching the result.
func (l *Library) Texture(name string) (*render.Texture, error) {
	if t, ok := l.cache[name]; ok {
		return t, nil
	}
	f, err := l.fsys.Open(name)
	if err != nil {
		return nil, fmt.Errorf("assets: open %s: %w", name, err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("assets: decode %s: %w", name, err)
	}
	t := render.NewTexture(name, img, l.scale)
	l.cache[name] = t
	return t, nil
}

// States builds the sprite states under dir. Every sub-folder contributes
// one state per image, named "folder-image". Images matching name_NN.png
// are collected, in frame order, into a single animated state "folder-name".
func (l *Library) States(dir string) (map[string][]*render.Texture, error) {
	entries, err := fs.ReadDir(l.fsys, dir)
	if err != nil {
		return nil, fmt.Errorf("assets: read %s: %w", dir, err)
	}

	states := make(map[string][]*render.Texture)
	for _, folder := range entries {
		if !folder.IsDir() {
			continue
		}
		folderPath := path.Join(dir, folder.Name())
		files, err := fs.ReadDir(l.fsys, folderPath)
		if err != nil {
			return nil, fmt.Errorf("assets: read %s: %w", folderPath, err)
		}

		frames := make(map[string][]frame)
		for _, file := range files {
			if file.IsDir() || !strings.HasSuffix(file.Name(), ".png") {
				continue
			}
			name := strings.TrimSuffix(file.Name(), ".png")
			index := 0
			if m := animFrame.FindStringSubmatch(file.Name()); m != nil {
				name = m[1]
				index, _ = strconv.Atoi(m[2])
			}
			frames[name] = append(frames[name], frame{index: index, file: path.Join(folderPath, file.Name())})
		}

		for name, fr := range frames {
			textures, err := l.loadFrames(fr)
			if err != nil {
				return nil, err
			}
			states[folder.Name()+"-"+name] = textures
		}
	}
	return states, nil
}

type frame struct {
	index int
	file  string
}

func (l *Library) loadFrames(frames []frame) ([]*render.Texture, error) {
	slices.SortFunc(frames, func(a, b frame) int { return a.index - b.index })
	textures := make([]*render.Texture, 0, len(frames))
	for _, f := range frames {
		t, err := l.Texture(f.file)
		if err != nil {
			return nil, err
		}
		textures = append(textures, t)
	}
	return textures, nil
}

// Sprite builds an animated sprite from the states under dir.
func (l *Library) Sprite(dir string) (*render.Sprite, error) {
	states, err := l.States(dir)
	if err != nil {
		return nil, err
	}
	if _, ok := states[render.BaseState]; !ok {
		return nil, fmt.Errorf("assets: %s has no %s state", dir, render.BaseState)
	}
	return render.NewSprite(states, l.changeFrames), nil
}

// Basic builds a single-state sprite from dir/name.png, or from the
// dir/name/name_NN.png frames when no single image exists.
func (l *Library) Basic(dir, name string) (*render.Sprite, error) {
	single := path.Join(dir, name+".png")
	if t, err := l.Texture(single); err == nil {
		return render.NewSprite(map[string][]*render.Texture{render.BaseState: {t}}, l.changeFrames), nil
	}

	folder := path.Join(dir, name)
	entries, err := fs.ReadDir(l.fsys, folder)
	if err != nil {
		return nil, fmt.Errorf("assets: no image for %s", path.Join(dir, name))
	}
	var frames []frame
	for _, e := range entries {
		m := animFrame.FindStringSubmatch(e.Name())
		if m == nil || m[1] != name {
			continue
		}
		index, _ := strconv.Atoi(m[2])
		frames = append(frames, frame{index: index, file: path.Join(folder, e.Name())})
	}
	if len(frames) == 0 {
		return nil, fmt.Errorf("assets: no frames for %s", folder)
	}
	textures, err := l.loadFrames(frames)
	if err != nil {
		return nil, err
	}
	return render.NewSprite(map[string][]*render.Texture{render.BaseState: textures}, l.changeFrames), nil
}

// MustSprite returns a sprite from load, or a magenta placeholder when load
// fails. Used by lazily built sprites, which cannot return errors.
func (l *Library) MustSprite(load func() (*render.Sprite, error), name string) *render.Sprite {
	s, err := load()
	if err == nil {
		return s
	}
	l.logger.Warn(context.Background(), "using placeholder sprite", "name", name, "error", err.Error())
	return render.SingleFrame(l.Placeholder(name, 16, 16, color.RGBA{R: 255, B: 255, A: 255}))
}

// Placeholder returns a solid texture of the given size.
func (l *Library) Placeholder(name string, w, h int, c color.Color) *render.Texture {
	key := fmt.Sprintf("placeholder:%s:%dx%d", name, w, h)
	if t, ok := l.cache[key]; ok {
		return t
	}
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	t := render.NewTexture(key, img, l.scale)
	l.cache[key] = t
	return t
}
