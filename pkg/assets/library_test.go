package assets

import (
	"bytes"
	"image"
	"image/png"
	"sort"
	"testing"
	"testing/fstest"

	"github.com/opd-ai/go-spaceman/pkg/config"
	"github.com/opd-ai/go-spaceman/pkg/render"
)

func pngBytes(t *testing.T, w, h int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewNRGBA(image.Rect(0, 0, w, h))); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func testLibrary(t *testing.T, files map[string]int) *Library {
	fsys := fstest.MapFS{}
	for name, size := range files {
		fsys[name] = &fstest.MapFile{Data: pngBytes(t, size, size)}
	}
	settings := config.DefaultConfig()
	settings.GlobalScale = 2
	return NewLibrary(fsys, settings, nil)
}

func TestLibrary_States(t *testing.T) {
	lib := testLibrary(t, map[string]int{
		"ships/skalk/life/static.png":  8,
		"ships/skalk/life/burn_02.png": 8,
		"ships/skalk/life/burn_01.png": 8,
		"ships/skalk/life/notes.txt":   1,
		"ships/skalk/damage/hit.png":   8,
	})

	states, err := lib.States("ships/skalk")
	if err != nil {
		t.Fatalf("States() error = %v", err)
	}

	var names []string
	for name := range states {
		names = append(names, name)
	}
	sort.Strings(names)
	want := []string{"damage-hit", "life-burn", "life-static"}
	if len(names) != len(want) {
		t.Fatalf("states = %v, want %v", names, want)
	}
	for i := range want {
		if names[i] != want[i] {
			t.Fatalf("states = %v, want %v", names, want)
		}
	}

	burn := states["life-burn"]
	if len(burn) != 2 || burn[0].Name != "ships/skalk/life/burn_01.png" {
		t.Errorf("life-burn frames out of order: %v", burn)
	}
	if w, _ := states[render.BaseState][0].Size(); w != 16 {
		t.Errorf("scaled width = %v, want 16", w)
	}
}

func TestLibrary_Sprite_RequiresBaseState(t *testing.T) {
	lib := testLibrary(t, map[string]int{"ships/ghost/damage/hit.png": 4})
	if _, err := lib.Sprite("ships/ghost"); err == nil {
		t.Error("Sprite() without life/static.png succeeded")
	}
}

func TestLibrary_Basic(t *testing.T) {
	lib := testLibrary(t, map[string]int{
		"components/engines/thruster.png":               4,
		"components/engines/plume/plume_00.png":         4,
		"components/engines/plume/plume_01.png":         4,
		"components/engines/plume/unrelated_01.png":     4,
	})

	single, err := lib.Basic("components/engines", "thruster")
	if err != nil || single.Animated() {
		t.Errorf("Basic(thruster) = %v, %v, want static sprite", single, err)
	}
	anim, err := lib.Basic("components/engines", "plume")
	if err != nil || !anim.Animated() {
		t.Errorf("Basic(plume) = %v, %v, want animated sprite", anim, err)
	}
	if _, err := lib.Basic("components/engines", "missing"); err == nil {
		t.Error("Basic(missing) succeeded")
	}
}

func TestLibrary_TextureCached(t *testing.T) {
	lib := testLibrary(t, map[string]int{"a.png": 2})
	first, err := lib.Texture("a.png")
	if err != nil {
		t.Fatal(err)
	}
	second, _ := lib.Texture("a.png")
	if first != second {
		t.Error("Texture() did not cache")
	}
}

func TestLibrary_MustSprite_Placeholder(t *testing.T) {
	lib := testLibrary(t, nil)
	s := lib.MustSprite(func() (*render.Sprite, error) { return lib.Sprite("nowhere") }, "ghost")
	if s == nil || s.Texture() == nil {
		t.Fatal("MustSprite() returned no placeholder")
	}
	if w, h := s.Texture().Size(); w != 32 || h != 32 {
		t.Errorf("placeholder size = %v, %v, want 32, 32", w, h)
	}
}
