package label

import (
	"image"
	"image/color"
	"testing"

	"github.com/deckwise/deckbrief/pkg/raster"
)

func TestImageID(t *testing.T) {
	tests := []struct {
		slide, ordinal int
		want           string
	}{
		{1, 1, "IMG_1_1"},
		{2, 5, "IMG_2_5"},
		{13, 10, "IMG_13_10"},
	}
	for _, tt := range tests {
		if got := ImageID(tt.slide, tt.ordinal); got != tt.want {
			t.Errorf("ImageID(%d, %d) = %q, want %q", tt.slide, tt.ordinal, got, tt.want)
		}
	}
}

func TestSnapshotID(t *testing.T) {
	if got := SnapshotID(3); got != "snapshot_3" {
		t.Errorf("SnapshotID(3) = %q, want snapshot_3", got)
	}
}

func TestApplyDisabledReturnsInputUnchanged(t *testing.T) {
	src := raster.Canvas(100, 80, color.White)
	got := New(false).Apply(src, "IMG_1_1")

	if got != image.Image(src) {
		t.Error("disabled Apply() should return the very same value")
	}
	for _, p := range src.Pix {
		if p != 0xff {
			t.Fatal("disabled Apply() wrote into the input buffer")
		}
	}
}

func TestApplyNeverMutatesInput(t *testing.T) {
	src := raster.Canvas(100, 80, color.White)
	labeled := New(true).Apply(src, "IMG_1_1")

	for _, p := range src.Pix {
		if p != 0xff {
			t.Fatal("Apply() wrote into the input buffer")
		}
	}
	if labeled == image.Image(src) {
		t.Error("enabled Apply() should return a new image")
	}
}

func TestApplyDrawsTag(t *testing.T) {
	src := raster.Canvas(200, 100, color.White)
	labeled := New(true).Apply(src, "snapshot_1")

	// Content size is preserved; only a corner tag is overlaid.
	if b := labeled.Bounds(); b.Dx() != 200 || b.Dy() != 100 {
		t.Errorf("labeled bounds = %v, want 200x100", b)
	}

	// Inside the backdrop the white canvas must have darkened.
	r, g, b, _ := labeled.At(12, 12).RGBA()
	if r == 0xffff && g == 0xffff && b == 0xffff {
		t.Error("backdrop area still pure white, no tag drawn")
	}

	// Far corner stays untouched.
	r, g, b, _ = labeled.At(199, 99).RGBA()
	if r != 0xffff || g != 0xffff || b != 0xffff {
		t.Error("tag leaked outside the corner area")
	}
}
