package prefabs

import (
	"image/color"
	"testing"

	"gopkg.in/yaml.v3"
)

func TestLoadSandboxSpecFromEmbedded(t *testing.T) {
	spec, err := LoadSpec[SandboxSpec]("sandbox.yaml")
	if err != nil {
		t.Fatalf("LoadSpec failed: %v", err)
	}

	if spec.Scene.Width != 1280 || spec.Scene.Height != 720 {
		t.Errorf("scene size = %vx%v, want 1280x720", spec.Scene.Width, spec.Scene.Height)
	}
	if len(spec.Scene.Platforms) == 0 {
		t.Errorf("expected at least one platform")
	}
	if spec.Blob.Radius <= 0 || spec.Blob.Segments < 3 {
		t.Errorf("blob spec incomplete: radius=%v segments=%d", spec.Blob.Radius, spec.Blob.Segments)
	}
	if spec.Blob.Fill.Color == nil {
		t.Errorf("blob fill color missing")
	}
	if len(spec.Polygons) < 2 {
		t.Fatalf("expected at least 2 polygon prefabs, got %d", len(spec.Polygons))
	}
	for _, p := range spec.Polygons {
		if len(p.Points) < 3 {
			t.Errorf("polygon %q has %d points, want >= 3", p.Name, len(p.Points))
		}
		if p.Bounce < 0 || p.Bounce > 1 || p.Friction < 0 || p.Friction > 1 {
			t.Errorf("polygon %q has out-of-range coefficients: bounce=%v friction=%v", p.Name, p.Bounce, p.Friction)
		}
	}
}

func TestLoadSpecMissingFile(t *testing.T) {
	if _, err := LoadSpec[SandboxSpec]("does-not-exist.yaml"); err == nil {
		t.Fatalf("expected an error for a missing prefab")
	}
}

func TestYAMLColor(t *testing.T) {
	cases := []struct {
		name    string
		input   string
		want    color.NRGBA
		wantErr bool
	}{
		{"rgb", `"#ff7f50"`, color.NRGBA{R: 0xff, G: 0x7f, B: 0x50, A: 0xff}, false},
		{"rgba", `"#87ceebcc"`, color.NRGBA{R: 0x87, G: 0xce, B: 0xeb, A: 0xcc}, false},
		{"no_hash", `"3cb371"`, color.NRGBA{R: 0x3c, G: 0xb3, B: 0x71, A: 0xff}, false},
		{"too_short", `"#fff"`, color.NRGBA{}, true},
		{"not_hex", `"#zzzzzz"`, color.NRGBA{}, true},
		{"not_scalar", `[1, 2, 3]`, color.NRGBA{}, true},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			var got YAMLColor
			err := yaml.Unmarshal([]byte(c.input), &got)
			if c.wantErr {
				if err == nil {
					t.Fatalf("expected error for %s", c.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("unmarshal %s: %v", c.input, err)
			}
			if got.Color != c.want {
				t.Errorf("color = %v, want %v", got.Color, c.want)
			}
		})
	}
}
