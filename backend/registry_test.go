package backend_test

import (
	"bytes"
	"errors"
	"log/slog"
	"slices"
	"strings"
	"testing"

	"github.com/gogpu/canvas"
	"github.com/gogpu/canvas/backend"
	"github.com/gogpu/canvas/backend/void"
)

func TestRegisterAndNew(t *testing.T) {
	backend.Register("test-ok", func() (canvas.Renderer, error) { return void.New(), nil })
	t.Cleanup(func() { backend.Unregister("test-ok") })

	if !backend.IsRegistered("test-ok") {
		t.Fatal("IsRegistered(test-ok) = false")
	}
	r, err := backend.New("test-ok")
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	if _, ok := r.(*void.Renderer); !ok {
		t.Errorf("New returned %T", r)
	}
}

func TestNewUnknown(t *testing.T) {
	_, err := backend.New("no-such-backend")
	if err == nil {
		t.Fatal("New(unknown) succeeded")
	}
	if !strings.Contains(err.Error(), "forgotten import") {
		t.Errorf("error %q does not hint at a forgotten import", err)
	}
}

func TestNewFactoryError(t *testing.T) {
	boom := errors.New("boom")
	backend.Register("test-fail", func() (canvas.Renderer, error) { return nil, boom })
	t.Cleanup(func() { backend.Unregister("test-fail") })

	if _, err := backend.New("test-fail"); !errors.Is(err, boom) {
		t.Errorf("New error = %v, want wrapped boom", err)
	}
}

func TestAvailableSorted(t *testing.T) {
	backend.Register("zz-test", func() (canvas.Renderer, error) { return void.New(), nil })
	backend.Register("aa-test", func() (canvas.Renderer, error) { return void.New(), nil })
	t.Cleanup(func() {
		backend.Unregister("zz-test")
		backend.Unregister("aa-test")
	})

	names := backend.Available()
	if !slices.IsSorted(names) {
		t.Errorf("Available() = %v, not sorted", names)
	}
	for _, want := range []string{"aa-test", "zz-test", backend.NameVoid} {
		if !slices.Contains(names, want) {
			t.Errorf("Available() = %v, missing %q", names, want)
		}
	}
}

func TestDefaultFallsBack(t *testing.T) {
	backend.Register(backend.NameWGPU, func() (canvas.Renderer, error) {
		return nil, errors.New("no adapter")
	})
	t.Cleanup(func() { backend.Unregister(backend.NameWGPU) })

	var logs bytes.Buffer
	orig := canvas.Logger()
	t.Cleanup(func() { canvas.SetLogger(orig) })
	canvas.SetLogger(slog.New(slog.NewTextHandler(&logs, nil)))

	r, name, err := backend.Default()
	if err != nil {
		t.Fatalf("Default: %v", err)
	}
	if name != backend.NameVoid {
		t.Errorf("Default picked %q, want %q", name, backend.NameVoid)
	}
	if r == nil {
		t.Error("Default returned nil renderer")
	}
	out := logs.String()
	if !strings.Contains(out, "level=WARN") || !strings.Contains(out, "backend=wgpu") || !strings.Contains(out, "no adapter") {
		t.Errorf("fallback not logged at Warn:\n%s", out)
	}
	if !strings.Contains(out, "backend selected") {
		t.Errorf("selection not logged:\n%s", out)
	}
}

func TestRegisterNilPanics(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Error("Register(nil) did not panic")
		}
	}()
	backend.Register("nil", nil)
}
