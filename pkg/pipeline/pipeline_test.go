package pipeline

import (
	"context"
	"testing"

	"github.com/gridrack/gridrack/pkg/cache"
	"github.com/gridrack/gridrack/pkg/errors"
	"github.com/gridrack/gridrack/pkg/grid"
	"github.com/gridrack/gridrack/pkg/grid/responsive"
	"github.com/gridrack/gridrack/pkg/store"
)

func TestOptionsValidation(t *testing.T) {
	t.Run("missing source", func(t *testing.T) {
		opts := Options{}
		if err := opts.ValidateAndSetDefaults(); errors.GetCode(err) != errors.ErrCodeInvalidInput {
			t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidInput)
		}
	})

	t.Run("invalid format", func(t *testing.T) {
		opts := Options{Layout: grid.Layout{grid.NewItem("a", 0, 0, 1, 1)}, Formats: []string{"svg"}}
		if err := opts.ValidateAndSetDefaults(); err == nil {
			t.Error("accepted unsupported format")
		}
	})

	t.Run("invalid compact type", func(t *testing.T) {
		opts := Options{Layout: grid.Layout{grid.NewItem("a", 0, 0, 1, 1)}, CompactType: "diagonal"}
		if err := opts.ValidateAndSetDefaults(); errors.GetCode(err) != errors.ErrCodeInvalidCompactType {
			t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidCompactType)
		}
	})

	t.Run("defaults applied", func(t *testing.T) {
		opts := Options{Layout: grid.Layout{grid.NewItem("a", 0, 0, 1, 1)}}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatalf("ValidateAndSetDefaults: %v", err)
		}
		if opts.Cols != DefaultCols {
			t.Errorf("Cols = %d, want %d", opts.Cols, DefaultCols)
		}
		if opts.CompactType != DefaultCompactType {
			t.Errorf("CompactType = %s, want %s", opts.CompactType, DefaultCompactType)
		}
		if len(opts.Formats) != 1 || opts.Formats[0] != FormatJSON {
			t.Errorf("Formats = %v, want [json]", opts.Formats)
		}
	})

	t.Run("idempotent", func(t *testing.T) {
		opts := Options{Layout: grid.Layout{grid.NewItem("a", 0, 0, 1, 1)}, Cols: 6}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if err := opts.ValidateAndSetDefaults(); err != nil {
			t.Fatal(err)
		}
		if opts.Cols != 6 {
			t.Errorf("Cols changed to %d", opts.Cols)
		}
	})
}

func TestKeyOptsReflectOptions(t *testing.T) {
	opts := Options{Cols: 6, CompactType: grid.CompactHorizontal, AllowOverlap: true}

	nk := opts.NormalizeKeyOpts()
	if nk.Cols != 6 || nk.CompactType != "horizontal" || !nk.AllowOverlap {
		t.Errorf("NormalizeKeyOpts = %+v", nk)
	}

	dk := opts.DeriveKeyOpts(12, 6)
	if dk.FromCols != 12 || dk.ToCols != 6 {
		t.Errorf("DeriveKeyOpts = %+v", dk)
	}

	opts.ContainerWidth = 640
	ak := opts.ArtifactKeyOpts(FormatPNG, 6)
	if ak.Format != "png" || ak.Cols != 6 || ak.ContainerWidth != 640 {
		t.Errorf("ArtifactKeyOpts = %+v", ak)
	}
}

func TestExecuteInlineLayout(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{
		Layout: grid.Layout{
			grid.NewItem("a", 0, 5, 2, 2),
			grid.NewItem("b", 0, 9, 2, 2),
		},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	a, _ := result.Layout.Item("a")
	b, _ := result.Layout.Item("b")
	if a.Y != 0 || b.Y != 2 {
		t.Errorf("not compacted: a.Y=%d b.Y=%d", a.Y, b.Y)
	}
	if result.LayoutHash == "" {
		t.Error("LayoutHash not set")
	}
	if result.Stats.ItemCount != 2 {
		t.Errorf("ItemCount = %d, want 2", result.Stats.ItemCount)
	}
	if _, ok := result.Artifacts[FormatJSON]; !ok {
		t.Error("default json artifact missing")
	}
}

func storedSet(t *testing.T) (*store.MemoryStore, *store.LayoutSet) {
	t.Helper()
	st := store.NewMemoryStore()
	set := store.NewLayoutSet("dashboard",
		responsive.Breakpoints{"lg": 1200, "md": 996, "sm": 768},
		responsive.Cols{"lg": 12, "md": 10, "sm": 6},
	)
	set.Layouts["lg"] = grid.Layout{
		grid.NewItem("a", 0, 0, 6, 2),
		grid.NewItem("b", 6, 0, 6, 2),
	}
	if err := st.Save(context.Background(), set); err != nil {
		t.Fatalf("seed store: %v", err)
	}
	return st, set
}

func TestExecuteDerivesForViewportWidth(t *testing.T) {
	ctx := context.Background()
	st, _ := storedSet(t)
	runner := NewRunner(nil, nil, st, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{Name: "dashboard", Width: 800})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	if result.Breakpoint != "sm" {
		t.Errorf("Breakpoint = %s, want sm", result.Breakpoint)
	}
	if result.Cols != 6 {
		t.Errorf("Cols = %d, want 6", result.Cols)
	}
	if grid.HasOverlaps(result.Layout) {
		t.Error("derived layout has overlaps")
	}
	for _, it := range result.Layout {
		if it.Right() > 6 {
			t.Errorf("%s exceeds 6 columns: x=%d w=%d", it.ID, it.X, it.W)
		}
	}
}

func TestExecuteExplicitBreakpoint(t *testing.T) {
	ctx := context.Background()
	st, _ := storedSet(t)
	runner := NewRunner(nil, nil, st, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{Name: "dashboard", Breakpoint: "md"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Breakpoint != "md" || result.Cols != 10 {
		t.Errorf("got %s/%d, want md/10", result.Breakpoint, result.Cols)
	}

	_, err = runner.Execute(ctx, Options{Name: "dashboard", Breakpoint: "xl"})
	if errors.GetCode(err) != errors.ErrCodeInvalidBreakpoints {
		t.Errorf("unknown breakpoint code = %s, want %s", errors.GetCode(err), errors.ErrCodeInvalidBreakpoints)
	}
}

func TestExecuteDefaultsToWidestBreakpoint(t *testing.T) {
	ctx := context.Background()
	st, set := storedSet(t)
	runner := NewRunner(nil, nil, st, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{Name: "dashboard"})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if result.Breakpoint != "lg" {
		t.Errorf("Breakpoint = %s, want lg", result.Breakpoint)
	}
	if !result.Layout.Equal(set.Layouts["lg"]) {
		t.Errorf("stored lg layout changed:\n got %+v\nwant %+v", result.Layout, set.Layouts["lg"])
	}
}

func TestExecuteUnknownSet(t *testing.T) {
	runner := NewRunner(nil, nil, store.NewMemoryStore(), nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{Name: "missing"})
	if errors.GetCode(err) != errors.ErrCodeLayoutNotFound {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeLayoutNotFound)
	}
}

func TestExecuteNamedWithoutStore(t *testing.T) {
	runner := NewRunner(nil, nil, nil, nil)
	defer runner.Close()

	_, err := runner.Execute(context.Background(), Options{Name: "dashboard"})
	if errors.GetCode(err) != errors.ErrCodeUnsupported {
		t.Errorf("code = %s, want %s", errors.GetCode(err), errors.ErrCodeUnsupported)
	}
}

func TestExecuteUsesCacheOnSecondRun(t *testing.T) {
	ctx := context.Background()
	fileCache, err := cache.NewFileCache(t.TempDir())
	if err != nil {
		t.Fatalf("NewFileCache: %v", err)
	}
	runner := NewRunner(fileCache, nil, nil, nil)
	defer runner.Close()

	opts := Options{Layout: grid.Layout{grid.NewItem("a", 0, 5, 2, 2)}}

	first, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("first Execute: %v", err)
	}
	if first.CacheInfo.NormalizeHit || first.CacheInfo.RenderHit {
		t.Error("first run should not hit the cache")
	}

	second, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("second Execute: %v", err)
	}
	if !second.CacheInfo.NormalizeHit {
		t.Error("second run should hit the normalize cache")
	}
	if !second.CacheInfo.RenderHit {
		t.Error("second run should hit the artifact cache")
	}
	if !second.Layout.Equal(first.Layout) {
		t.Error("cached layout differs from computed layout")
	}

	// Refresh bypasses the cache.
	opts.Refresh = true
	third, err := runner.Execute(ctx, opts)
	if err != nil {
		t.Fatalf("third Execute: %v", err)
	}
	if third.CacheInfo.NormalizeHit || third.CacheInfo.RenderHit {
		t.Error("refresh run should not hit the cache")
	}
}

func TestRenderFormats(t *testing.T) {
	ctx := context.Background()
	runner := NewRunner(nil, nil, nil, nil)
	defer runner.Close()

	result, err := runner.Execute(ctx, Options{
		Layout:  grid.Layout{grid.NewItem("a", 0, 0, 4, 2)},
		Formats: []string{FormatJSON, FormatPNG},
	})
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}

	jsonData, ok := result.Artifacts[FormatJSON]
	if !ok || len(jsonData) == 0 {
		t.Error("json artifact missing or empty")
	}
	back, err := grid.Unmarshal(jsonData)
	if err != nil {
		t.Fatalf("json artifact invalid: %v", err)
	}
	if !back.Equal(result.Layout) {
		t.Error("json artifact does not round-trip the layout")
	}

	pngData, ok := result.Artifacts[FormatPNG]
	if !ok || len(pngData) == 0 {
		t.Error("png artifact missing or empty")
	}
}
