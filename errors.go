package canvas

import (
	"errors"
)

// ErrorKind classifies every failure produced by canvas and its backends.
// The set is open for extension; new kinds are appended, never renumbered.
type ErrorKind uint8

const (
	KindUnknown                        ErrorKind = iota // Unknown error
	KindGeneral                                         // General error with an opaque message
	KindIO                                              // I/O error from the platform
	KindImage                                           // Image decoding error
	KindFontParse                                       // Font data could not be parsed
	KindNoFontFound                                     // No font matched the request
	KindFontInfoExtraction                              // Font metrics could not be read
	KindFontSizeTooLargeForAtlas                        // Glyph does not fit into an atlas page
	KindShaderCompile                                   // Shader compilation failed
	KindShaderLink                                      // Pipeline (program) creation failed
	KindRenderTarget                                    // Render target could not be bound or created
	KindImageIDNotFound                                 // ImageID has no live entry in the store
	KindImageUpdateOutOfBounds                          // Update region exceeds the image bounds
	KindImageUpdateWithDifferentFormat                  // Update data format differs from the image
	KindUnsupportedImageFormat                          // Pixel format not supported by the backend
	KindVertexRangeOutOfBounds                          // Vertex range exceeds the frame's vertex buffer
)

var errorKindNames = [...]string{
	KindUnknown:                        "unknown error",
	KindGeneral:                        "general error",
	KindIO:                             "i/o error",
	KindImage:                          "image error",
	KindFontParse:                      "font parse error",
	KindNoFontFound:                    "no font found",
	KindFontInfoExtraction:             "font info extraction error",
	KindFontSizeTooLargeForAtlas:       "font size too large for atlas",
	KindShaderCompile:                  "shader compile error",
	KindShaderLink:                     "shader link error",
	KindRenderTarget:                   "render target error",
	KindImageIDNotFound:                "image id not found",
	KindImageUpdateOutOfBounds:         "image update out of bounds",
	KindImageUpdateWithDifferentFormat: "image update with different format",
	KindUnsupportedImageFormat:         "unsupported image format",
	KindVertexRangeOutOfBounds:         "vertex range out of bounds",
}

// String returns a human readable description of the kind.
func (k ErrorKind) String() string {
	if int(k) < len(errorKindNames) {
		return errorKindNames[k]
	}
	return "unknown error"
}

// Error is the error type returned by every fallible canvas operation.
//
// Msg carries diagnostic text (shader logs, render target details) and Err
// the underlying platform error, if any. Errors compare equal under
// errors.Is when their kinds match and the target carries no detail, so
//
//	errors.Is(err, canvas.ErrImageUpdateOutOfBounds)
//
// holds for every out-of-bounds error regardless of its message.
type Error struct {
	Kind ErrorKind
	Msg  string
	Err  error
}

// Error implements the error interface.
func (e *Error) Error() string {
	s := "canvas: " + e.Kind.String()
	if e.Msg != "" {
		s += ": " + e.Msg
	}
	if e.Err != nil {
		s += ": " + e.Err.Error()
	}
	return s
}

// Unwrap returns the wrapped platform error.
func (e *Error) Unwrap() error { return e.Err }

// Is reports whether target is a detail-free *Error of the same kind.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind && t.Msg == "" && t.Err == nil
}

// Sentinel errors, one per kind. Match with errors.Is.
var (
	ErrUnknown                        = &Error{Kind: KindUnknown}
	ErrGeneral                        = &Error{Kind: KindGeneral}
	ErrIO                             = &Error{Kind: KindIO}
	ErrImage                          = &Error{Kind: KindImage}
	ErrFontParse                      = &Error{Kind: KindFontParse}
	ErrNoFontFound                    = &Error{Kind: KindNoFontFound}
	ErrFontInfoExtraction             = &Error{Kind: KindFontInfoExtraction}
	ErrFontSizeTooLargeForAtlas       = &Error{Kind: KindFontSizeTooLargeForAtlas}
	ErrShaderCompile                  = &Error{Kind: KindShaderCompile}
	ErrShaderLink                     = &Error{Kind: KindShaderLink}
	ErrRenderTarget                   = &Error{Kind: KindRenderTarget}
	ErrImageIDNotFound                = &Error{Kind: KindImageIDNotFound}
	ErrImageUpdateOutOfBounds         = &Error{Kind: KindImageUpdateOutOfBounds}
	ErrImageUpdateWithDifferentFormat = &Error{Kind: KindImageUpdateWithDifferentFormat}
	ErrUnsupportedImageFormat         = &Error{Kind: KindUnsupportedImageFormat}
	ErrVertexRangeOutOfBounds         = &Error{Kind: KindVertexRangeOutOfBounds}
)

// NewError returns an error of the given kind with a diagnostic message.
func NewError(kind ErrorKind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// WrapError returns an error of the given kind wrapping err.
// A nil err yields nil.
func WrapError(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &Error{Kind: kind, Err: err}
}

// GeneralError returns a KindGeneral error with the given message.
func GeneralError(msg string) error { return NewError(KindGeneral, msg) }

// IOError wraps a platform I/O error.
func IOError(err error) error { return WrapError(KindIO, err) }

// ImageError wraps an image decoding error.
func ImageError(err error) error { return WrapError(KindImage, err) }

// ShaderCompileError reports a shader compilation failure with its log.
func ShaderCompileError(log string) error { return NewError(KindShaderCompile, log) }

// ShaderLinkError reports a pipeline creation failure with its log.
func ShaderLinkError(log string) error { return NewError(KindShaderLink, log) }

// RenderTargetError reports a render target failure.
func RenderTargetError(msg string) error { return NewError(KindRenderTarget, msg) }

// KindOf returns the kind of err, or KindUnknown if err is not an *Error.
func KindOf(err error) ErrorKind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
