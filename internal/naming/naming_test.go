package naming

import (
	"path/filepath"
	"sync"
	"testing"
)

func TestOutputDir(t *testing.T) {
	tests := []struct {
		name    string
		project string
		root    string
		batch   bool
		want    string
	}{
		{"single, no output", "art/hero.spine", "", false, "art/hero_export"},
		{"batch, no output", "art/chars/hero.spine", "", true, "art/chars/hero_export"},
		{"single, output", "art/hero.spine", "out", false, "out"},
		{"batch, output", "art/chars/hero.spine", "out", true, filepath.Join("out", "hero")},
		{"dotted stem", "art/hero.v2.spine", "out", true, filepath.Join("out", "hero.v2")},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := OutputDir(filepath.FromSlash(tt.project), filepath.FromSlash(tt.root), tt.batch)
			if got != filepath.FromSlash(tt.want) {
				t.Errorf("OutputDir() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestDisplayName(t *testing.T) {
	tests := []struct {
		name    string
		project string
		root    string
		want    string
	}{
		{"no root", "art/chars/hero.spine", "", "hero.spine"},
		{"relative to root", "art/chars/hero.spine", "art", filepath.Join("chars", "hero.spine")},
		{"outside root", "other/hero.spine", "art", "hero.spine"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := DisplayName(filepath.FromSlash(tt.project), filepath.FromSlash(tt.root))
			if got != tt.want {
				t.Errorf("DisplayName() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCollisionResolver(t *testing.T) {
	cr := NewCollisionResolver()

	if got := cr.Resolve("a/hero.spine", "out/hero"); got != "out/hero" {
		t.Errorf("first claim = %q", got)
	}
	if got := cr.Resolve("a/hero.spine", "out/hero"); got != "out/hero" {
		t.Errorf("same owner again = %q", got)
	}
	if got := cr.Resolve("b/hero.spine", "out/hero"); got != "out/hero_dup1" {
		t.Errorf("second project = %q, want out/hero_dup1", got)
	}
	if got := cr.Resolve("c/hero.spine", "out/hero"); got != "out/hero_dup2" {
		t.Errorf("third project = %q, want out/hero_dup2", got)
	}
}

func TestCollisionResolver_Concurrent(t *testing.T) {
	cr := NewCollisionResolver()
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		seen = map[string]bool{}
	)
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			got := cr.Resolve(filepath.Join("p", string(rune('a'+i)), "hero.spine"), "out/hero")
			mu.Lock()
			seen[got] = true
			mu.Unlock()
		}(i)
	}
	wg.Wait()
	if len(seen) != 20 {
		t.Errorf("got %d distinct folders, want 20", len(seen))
	}
}
