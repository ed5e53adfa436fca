package canvas

import (
	"errors"
	"image"
	"math"
	"slices"
	"testing"
)

type fakeImage struct{ info ImageInfo }

func (f *fakeImage) Info() ImageInfo { return f.info }

// fakeAllocator counts resource operations so tests can assert that failed
// requests never reach the backend.
type fakeAllocator struct {
	allocs, updates, deletes int
	failAlloc                error
	failUpdate               error
	deleted                  []ImageID
}

func (a *fakeAllocator) AllocImage(info ImageInfo) (Image, error) {
	if a.failAlloc != nil {
		return nil, a.failAlloc
	}
	a.allocs++
	return &fakeImage{info: info}, nil
}

func (a *fakeAllocator) UpdateImage(img Image, src ImageSource, x, y int) error {
	if a.failUpdate != nil {
		return a.failUpdate
	}
	a.updates++
	return nil
}

func (a *fakeAllocator) DeleteImage(img Image, id ImageID) {
	a.deletes++
	a.deleted = append(a.deleted, id)
}

func TestImageStoreAllocIssuesFreshIDs(t *testing.T) {
	s := NewImageStore()
	a := &fakeAllocator{}
	info := NewImageInfo(0, 8, 8, PixelFormatRGBA8)

	id1, err := s.Alloc(a, info)
	if err != nil {
		t.Fatal(err)
	}
	id2, _ := s.Alloc(a, info)
	if id1 == 0 || id1 == id2 {
		t.Fatalf("ids = %v, %v", id1, id2)
	}

	s.Remove(a, id2)
	id3, _ := s.Alloc(a, info)
	if id3 == id2 {
		t.Errorf("removed id %v was reissued", id2)
	}
	if got := s.IDs(); !slices.Equal(got, []ImageID{id1, id3}) {
		t.Errorf("IDs() = %v", got)
	}
}

func TestImageStoreAllocThenDelete(t *testing.T) {
	s := NewImageStore()
	a := &fakeAllocator{}
	id, err := s.Alloc(a, NewImageInfo(0, 4, 4, PixelFormatGray8))
	if err != nil {
		t.Fatal(err)
	}
	s.Remove(a, id)

	if _, err := s.Info(id); !errors.Is(err, ErrImageIDNotFound) {
		t.Errorf("Info after Remove: got %v, want ErrImageIDNotFound", err)
	}
	if s.Contains(id) || s.Len() != 0 {
		t.Error("store still holds removed image")
	}
	if a.deletes != 1 {
		t.Errorf("deletes = %d, want 1", a.deletes)
	}

	s.Remove(a, id)
	if a.deletes != 1 {
		t.Error("second Remove reached the backend")
	}
}

func TestImageStoreUpdateValidation(t *testing.T) {
	s := NewImageStore()
	a := &fakeAllocator{}
	id, _ := s.Alloc(a, NewImageInfo(0, 10, 10, PixelFormatRGBA8))
	rgba := func(w, h int) ImageSource { return NewImageSourceRGBA(image.NewRGBA(image.Rect(0, 0, w, h))) }

	tests := []struct {
		name string
		id   ImageID
		src  ImageSource
		x, y int
		want error
	}{
		{"fits", id, rgba(10, 10), 0, 0, nil},
		{"fits at offset", id, rgba(5, 5), 5, 5, nil},
		{"exceeds width", id, rgba(6, 1), 5, 0, ErrImageUpdateOutOfBounds},
		{"negative origin", id, rgba(1, 1), -1, 0, ErrImageUpdateOutOfBounds},
		{"x overflows", id, rgba(1, 1), math.MaxInt, 0, ErrImageUpdateOutOfBounds},
		{"y overflows", id, rgba(1, 1), 0, math.MaxInt, ErrImageUpdateOutOfBounds},
		{"wrong format", id, NewImageSourceGray(image.NewGray(image.Rect(0, 0, 2, 2))), 0, 0, ErrImageUpdateWithDifferentFormat},
		{"unknown id", id + 100, rgba(1, 1), 0, 0, ErrImageIDNotFound},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := a.updates
			err := s.Update(a, tt.id, tt.src, tt.x, tt.y)
			if tt.want == nil {
				if err != nil {
					t.Fatalf("Update: %v", err)
				}
				if a.updates != before+1 {
					t.Error("update did not reach the backend")
				}
				return
			}
			if !errors.Is(err, tt.want) {
				t.Fatalf("Update error = %v, want %v", err, tt.want)
			}
			if a.updates != before {
				t.Error("failed update reached the backend")
			}
		})
	}
}

func TestImageStoreAddReleasesOnFailure(t *testing.T) {
	s := NewImageStore()
	a := &fakeAllocator{failUpdate: errors.New("device lost")}
	src := NewImageSourceRGBA(image.NewRGBA(image.Rect(0, 0, 2, 2)))

	if _, err := s.Add(a, src, 0); err == nil {
		t.Fatal("Add succeeded despite failing upload")
	}
	if s.Len() != 0 || a.deletes != 1 {
		t.Errorf("Len = %d, deletes = %d; want 0, 1", s.Len(), a.deletes)
	}
}

func TestImageStoreAllocError(t *testing.T) {
	s := NewImageStore()
	a := &fakeAllocator{failAlloc: ErrUnsupportedImageFormat}
	if _, err := s.Alloc(a, NewImageInfo(0, 1, 1, PixelFormatRGB8)); !errors.Is(err, ErrUnsupportedImageFormat) {
		t.Errorf("Alloc error = %v", err)
	}
	if _, err := s.Alloc(&fakeAllocator{}, NewImageInfo(0, 0, 1, PixelFormatRGB8)); !errors.Is(err, ErrGeneral) {
		t.Errorf("zero size: %v", err)
	}
	if s.Len() != 0 {
		t.Error("failed alloc left an entry")
	}
}

func TestImageStoreRealloc(t *testing.T) {
	s := NewImageStore()
	a := &fakeAllocator{}
	id, _ := s.Alloc(a, NewImageInfo(0, 4, 4, PixelFormatRGBA8))

	if err := s.Realloc(a, id, NewImageInfo(0, 16, 8, PixelFormatRGBA8)); err != nil {
		t.Fatal(err)
	}
	info, _ := s.Info(id)
	if info.Width != 16 || info.Height != 8 {
		t.Errorf("info after Realloc = %+v", info)
	}
	img, _ := s.Get(id)
	if img.Info().Width != 16 {
		t.Error("Get returned the old resource")
	}
	if a.deletes != 1 {
		t.Errorf("old resource not released: deletes = %d", a.deletes)
	}
	if err := s.Realloc(a, id+1, info); !errors.Is(err, ErrImageIDNotFound) {
		t.Errorf("Realloc unknown id: %v", err)
	}
}

func TestImageStoreZeroValue(t *testing.T) {
	var s ImageStore
	a := &fakeAllocator{}
	id, err := s.Alloc(a, NewImageInfo(0, 2, 2, PixelFormatGray8))
	if err != nil {
		t.Fatal(err)
	}
	if id == 0 || !s.Contains(id) || s.Len() != 1 {
		t.Errorf("zero-value store: id %v, len %d", id, s.Len())
	}
}

func TestImageStoreClear(t *testing.T) {
	s := NewImageStore()
	a := &fakeAllocator{}
	for range 3 {
		if _, err := s.Alloc(a, NewImageInfo(0, 1, 1, PixelFormatGray8)); err != nil {
			t.Fatal(err)
		}
	}
	s.Clear(a)
	if s.Len() != 0 || !slices.Equal(a.deleted, []ImageID{1, 2, 3}) {
		t.Errorf("Clear: len %d, deleted %v", s.Len(), a.deleted)
	}
}
