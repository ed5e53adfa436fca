package canvas

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"testing"
)

func TestErrorIsMatchesKind(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target error
		want   bool
	}{
		{"sentinel itself", ErrImageIDNotFound, ErrImageIDNotFound, true},
		{"detailed same kind", NewError(KindImageUpdateOutOfBounds, "12x12 at 5,5"), ErrImageUpdateOutOfBounds, true},
		{"different kind", ErrImageUpdateOutOfBounds, ErrImageUpdateWithDifferentFormat, false},
		{"shader log", ShaderCompileError("0:12: syntax error"), ErrShaderCompile, true},
		{"link log", ShaderLinkError("layout mismatch"), ErrShaderCompile, false},
		{"wrapped with context", fmt.Errorf("alloc image: %w", ErrUnsupportedImageFormat), ErrUnsupportedImageFormat, true},
		{"io wraps platform error", IOError(fs.ErrNotExist), fs.ErrNotExist, true},
		{"io kind", IOError(fs.ErrNotExist), ErrIO, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := errors.Is(tt.err, tt.target); got != tt.want {
				t.Errorf("errors.Is(%v, %v) = %v, want %v", tt.err, tt.target, got, tt.want)
			}
		})
	}
}

func TestErrorMessage(t *testing.T) {
	err := RenderTargetError("image 5 is not a render target")
	want := "canvas: render target error: image 5 is not a render target"
	if err.Error() != want {
		t.Errorf("Error() = %q, want %q", err.Error(), want)
	}

	wrapped := ImageError(errors.New("unexpected EOF"))
	if !strings.HasSuffix(wrapped.Error(), "unexpected EOF") {
		t.Errorf("Error() = %q, want wrapped message suffix", wrapped.Error())
	}
}

func TestWrapErrorNil(t *testing.T) {
	if err := WrapError(KindIO, nil); err != nil {
		t.Errorf("WrapError(nil) = %v, want nil", err)
	}
}

func TestKindOf(t *testing.T) {
	if got := KindOf(fmt.Errorf("frame: %w", ErrVertexRangeOutOfBounds)); got != KindVertexRangeOutOfBounds {
		t.Errorf("KindOf = %v, want %v", got, KindVertexRangeOutOfBounds)
	}
	if got := KindOf(errors.New("plain")); got != KindUnknown {
		t.Errorf("KindOf(plain) = %v, want %v", got, KindUnknown)
	}
}

func TestErrorKindString(t *testing.T) {
	for k := KindUnknown; k <= KindVertexRangeOutOfBounds; k++ {
		if k.String() == "" {
			t.Errorf("ErrorKind(%d).String() is empty", k)
		}
	}
	if got := ErrorKind(200).String(); got != "unknown error" {
		t.Errorf("out of range kind = %q", got)
	}
}
