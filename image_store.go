package canvas

import (
	"fmt"
	"slices"
)

type storeEntry struct {
	img  Image
	info ImageInfo
}

// ImageStore maps ImageIDs to backend image resources.
//
// The store is the only place ids are issued; renderers never synthesize
// them. Ids are never reused within a store and the zero id is never issued.
// An ImageStore is not safe for concurrent use.
type ImageStore struct {
	entries map[ImageID]storeEntry
	last    ImageID
}

// NewImageStore returns an empty store. The zero value is also ready to use.
func NewImageStore() *ImageStore {
	return &ImageStore{entries: make(map[ImageID]storeEntry)}
}

// Alloc creates an image through r and returns its new id.
func (s *ImageStore) Alloc(r ImageAllocator, info ImageInfo) (ImageID, error) {
	if err := info.Validate(); err != nil {
		return 0, err
	}
	img, err := r.AllocImage(info)
	if err != nil {
		return 0, fmt.Errorf("alloc image %dx%d %v: %w", info.Width, info.Height, info.Format, err)
	}
	if s.entries == nil {
		s.entries = make(map[ImageID]storeEntry)
	}
	s.last++
	s.entries[s.last] = storeEntry{img: img, info: info}
	return s.last, nil
}

// Add allocates an image sized to src and uploads src at the origin.
// If the upload fails the new image is released and no id is returned.
func (s *ImageStore) Add(r ImageAllocator, src ImageSource, flags ImageFlags) (ImageID, error) {
	id, err := s.Alloc(r, NewImageInfo(flags, src.Width, src.Height, src.Format))
	if err != nil {
		return 0, err
	}
	if err := s.Update(r, id, src, 0, 0); err != nil {
		s.Remove(r, id)
		return 0, err
	}
	return id, nil
}

// Update uploads src into image id at (x, y). The request is validated
// before reaching the renderer, so a failed update uploads nothing.
func (s *ImageStore) Update(r ImageAllocator, id ImageID, src ImageSource, x, y int) error {
	e, ok := s.entries[id]
	if !ok {
		return &Error{Kind: KindImageIDNotFound, Msg: id.String()}
	}
	if err := ValidateUpdate(e.info, src, x, y); err != nil {
		return err
	}
	return r.UpdateImage(e.img, src, x, y)
}

// Realloc replaces the resource behind id with a new one described by info.
// The id stays valid; the old contents are lost.
func (s *ImageStore) Realloc(r ImageAllocator, id ImageID, info ImageInfo) error {
	e, ok := s.entries[id]
	if !ok {
		return &Error{Kind: KindImageIDNotFound, Msg: id.String()}
	}
	if err := info.Validate(); err != nil {
		return err
	}
	img, err := r.AllocImage(info)
	if err != nil {
		return fmt.Errorf("realloc %v: %w", id, err)
	}
	r.DeleteImage(e.img, id)
	s.entries[id] = storeEntry{img: img, info: info}
	return nil
}

// Remove releases image id. Unknown ids are ignored.
func (s *ImageStore) Remove(r ImageAllocator, id ImageID) {
	e, ok := s.entries[id]
	if !ok {
		return
	}
	r.DeleteImage(e.img, id)
	delete(s.entries, id)
}

// Get returns the backend resource for id.
func (s *ImageStore) Get(id ImageID) (Image, bool) {
	e, ok := s.entries[id]
	return e.img, ok
}

// Info returns the allocation info of id.
func (s *ImageStore) Info(id ImageID) (ImageInfo, error) {
	e, ok := s.entries[id]
	if !ok {
		return ImageInfo{}, &Error{Kind: KindImageIDNotFound, Msg: id.String()}
	}
	return e.info, nil
}

// Contains reports whether id is live.
func (s *ImageStore) Contains(id ImageID) bool {
	_, ok := s.entries[id]
	return ok
}

// Len returns the number of live images.
func (s *ImageStore) Len() int { return len(s.entries) }

// IDs returns the live ids in ascending order.
func (s *ImageStore) IDs() []ImageID {
	ids := make([]ImageID, 0, len(s.entries))
	for id := range s.entries {
		ids = append(ids, id)
	}
	slices.Sort(ids)
	return ids
}

// Clear releases every image.
func (s *ImageStore) Clear(r ImageAllocator) {
	for _, id := range s.IDs() {
		s.Remove(r, id)
	}
}

// ValidateUpdate checks that src can be uploaded into an image described by
// info at (x, y). Backends call it from UpdateImage before touching memory.
func ValidateUpdate(info ImageInfo, src ImageSource, x, y int) error {
	if err := src.Validate(); err != nil {
		return err
	}
	if x < 0 || y < 0 || x > info.Width-src.Width || y > info.Height-src.Height {
		return &Error{Kind: KindImageUpdateOutOfBounds, Msg: fmt.Sprintf(
			"%dx%d at (%d,%d) into %dx%d", src.Width, src.Height, x, y, info.Width, info.Height)}
	}
	if src.Format != info.Format {
		return &Error{Kind: KindImageUpdateWithDifferentFormat, Msg: fmt.Sprintf(
			"%v into %v", src.Format, info.Format)}
	}
	return nil
}
