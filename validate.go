package canvas

import "fmt"

// FrameError reports the command that made a frame fail.
type FrameError struct {
	Index int
	Err   error
}

func (e *FrameError) Error() string {
	return fmt.Sprintf("canvas: command %d: %v", e.Index, e.Err)
}

func (e *FrameError) Unwrap() error { return e.Err }

// ValidateFrame checks that every vertex range in cmds lies within verts and
// that every referenced image id is live in images. It returns a
// *FrameError for the first offending command.
func ValidateFrame(images *ImageStore, verts []Vertex, cmds []Command) error {
	n := len(verts)
	for i := range cmds {
		if err := validateCommand(images, n, &cmds[i]); err != nil {
			return &FrameError{Index: i, Err: err}
		}
	}
	return nil
}

func validateCommand(images *ImageStore, n int, cmd *Command) error {
	if cmd.Kind == nil {
		return GeneralError("command has no kind")
	}
	for j, dr := range cmd.Drawables {
		if !dr.Fill.In(n) {
			return rangeError("drawable", j, "fill", dr.Fill, n)
		}
		if !dr.Stroke.In(n) {
			return rangeError("drawable", j, "stroke", dr.Stroke, n)
		}
	}
	if !cmd.TriangleVerts.In(n) {
		return rangeError("triangles", 0, "verts", cmd.TriangleVerts, n)
	}

	if err := checkImage(images, cmd.Image); err != nil {
		return err
	}
	if !cmd.GlyphTexture.IsNone() {
		if err := checkImage(images, cmd.GlyphTexture.Image); err != nil {
			return err
		}
	}
	switch k := cmd.Kind.(type) {
	case ConcaveFill:
		// The cover quad is the pass that zeroes the stencil again.
		if cmd.TriangleVerts.Empty() && len(fillRanges(cmd)) > 0 {
			return &Error{Kind: KindVertexRangeOutOfBounds, Msg: "concave fill has fill geometry but no cover quad"}
		}
	case SetRenderTarget:
		if err := checkImage(images, k.Target.Image); err != nil {
			return fmt.Errorf("render target: %w", err)
		}
	case RenderFilteredImage:
		if cmd.Image == 0 || k.TargetImage == 0 {
			return &Error{Kind: KindImageIDNotFound, Msg: "filter needs a source and a target image"}
		}
		if err := checkImage(images, k.TargetImage); err != nil {
			return fmt.Errorf("filter target: %w", err)
		}
	}
	return nil
}

func checkImage(images *ImageStore, id ImageID) error {
	if id == 0 {
		return nil
	}
	if images == nil || !images.Contains(id) {
		return &Error{Kind: KindImageIDNotFound, Msg: id.String()}
	}
	return nil
}

func rangeError(what string, idx int, part string, r VertexRange, n int) error {
	return &Error{Kind: KindVertexRangeOutOfBounds, Msg: fmt.Sprintf(
		"%s %d %s [%d, %d) exceeds %d vertices", what, idx, part, r.Offset, r.End(), n)}
}
