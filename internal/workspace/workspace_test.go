package workspace

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/tidwall/gjson"
)

const sampleTemplate = `{
    "class": "export-png",
    "project": "old.spine",
    "output": "old-out",
    "packAtlas": {
        "maxWidth": 2048,
        "maxHeight": 2048,
        "scale": [ 1 ],
        "premultiplyAlpha": true
    },
    "extension": ".png"
}`

func TestRender_RewritesFieldsAndKeepsTheRest(t *testing.T) {
	out, err := Render([]byte(sampleTemplate), "art/hero.spine", "out/hero", 74)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	if got := gjson.GetBytes(out, FieldProject).String(); got != "art/hero.spine" {
		t.Errorf("project = %q", got)
	}
	if got := gjson.GetBytes(out, FieldOutput).String(); got != "out/hero" {
		t.Errorf("output = %q", got)
	}
	scale := gjson.GetBytes(out, FieldScale).Array()
	if len(scale) != 1 || scale[0].Float() != 0.74 {
		t.Errorf("scale = %v, want [0.74]", scale)
	}
	if got := gjson.GetBytes(out, "packAtlas.maxWidth").Int(); got != 2048 {
		t.Errorf("maxWidth = %d, want passthrough 2048", got)
	}
	if got := gjson.GetBytes(out, "class").String(); got != "export-png" {
		t.Errorf("class = %q", got)
	}
	if !gjson.GetBytes(out, "packAtlas.premultiplyAlpha").Bool() {
		t.Error("premultiplyAlpha lost")
	}
}

func TestRender_CreatesMissingScaleObject(t *testing.T) {
	out, err := Render([]byte(`{"class":"export-png"}`), "a.spine", "o", 100)
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	scale := gjson.GetBytes(out, FieldScale).Array()
	if len(scale) != 1 || scale[0].Float() != 1 {
		t.Errorf("scale = %v, want [1]", scale)
	}
}

func TestRender_DoesNotMutateTemplate(t *testing.T) {
	tmpl := []byte(sampleTemplate)
	if _, err := Render(tmpl, "a.spine", "o", 50); err != nil {
		t.Fatal(err)
	}
	if string(tmpl) != sampleTemplate {
		t.Error("template bytes were modified")
	}
}

func TestLoadTemplate(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "export.json")
	bad := filepath.Join(dir, "broken.json")
	os.WriteFile(good, []byte(sampleTemplate), 0o644)
	os.WriteFile(bad, []byte(`{"project": `), 0o644)

	if _, err := LoadTemplate(good); err != nil {
		t.Errorf("LoadTemplate(good): %v", err)
	}
	if _, err := LoadTemplate(bad); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("LoadTemplate(bad) = %v, want ErrInvalidTemplate", err)
	}
	if _, err := LoadTemplate(filepath.Join(dir, "missing.json")); !os.IsNotExist(err) {
		t.Errorf("LoadTemplate(missing) = %v, want not-exist", err)
	}
}

func TestWorkspace_Lifecycle(t *testing.T) {
	parent := t.TempDir()
	ws, err := New(parent, []byte(sampleTemplate))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if filepath.Dir(ws.Dir()) != parent {
		t.Errorf("workspace %q not under %q", ws.Dir(), parent)
	}

	p1, err := ws.WriteConfig("hero.spine", "out", 100)
	if err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	p2, err := ws.WriteConfig("hero.spine", "out", 42)
	if err != nil {
		t.Fatalf("WriteConfig: %v", err)
	}
	if filepath.Base(p1) != "export-s100.json" || filepath.Base(p2) != "export-s042.json" {
		t.Errorf("config names = %q, %q", filepath.Base(p1), filepath.Base(p2))
	}
	data, _ := os.ReadFile(p2)
	if got := gjson.GetBytes(data, "packAtlas.scale.0").Float(); got != 0.42 {
		t.Errorf("written scale = %v, want 0.42", got)
	}

	if err := ws.Remove(); err != nil {
		t.Fatalf("Remove: %v", err)
	}
	if _, err := os.Stat(ws.Dir()); !os.IsNotExist(err) {
		t.Errorf("workspace still exists: %v", err)
	}
	if err := ws.Remove(); err != nil {
		t.Errorf("second Remove: %v", err)
	}
}

func TestNew_RejectsInvalidTemplate(t *testing.T) {
	if _, err := New(t.TempDir(), []byte("not json")); !errors.Is(err, ErrInvalidTemplate) {
		t.Errorf("New = %v, want ErrInvalidTemplate", err)
	}
}

func TestWorkspace_ResetStaging(t *testing.T) {
	ws, err := New(t.TempDir(), []byte(sampleTemplate))
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer ws.Remove()

	dir, err := ws.ResetStaging()
	if err != nil {
		t.Fatalf("ResetStaging: %v", err)
	}
	if filepath.Dir(dir) != ws.Dir() {
		t.Errorf("staging %q not inside workspace %q", dir, ws.Dir())
	}
	os.WriteFile(filepath.Join(dir, "old.png"), nil, 0o644)

	if _, err := ws.ResetStaging(); err != nil {
		t.Fatalf("second ResetStaging: %v", err)
	}
	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("%d files survived reset", len(entries))
	}
}
