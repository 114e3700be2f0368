package assets

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"io/fs"
	"os"
	"path/filepath"
	"testing"
)

func TestLoaderProcedural(t *testing.T) {
	l := NewLoader("")
	img, err := l.Orb(context.Background())
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != ProceduralSize || b.Dy() != ProceduralSize {
		t.Fatalf("bounds = %v, want %dx%d", b, ProceduralSize, ProceduralSize)
	}
	if _, _, _, a := img.At(0, 0).RGBA(); a != 0 {
		t.Errorf("corner alpha = %d, want transparent", a)
	}
	c := ProceduralSize / 2
	if _, _, _, a := img.At(c, c).RGBA(); a == 0 {
		t.Error("center is transparent")
	}
	again, _ := l.Orb(context.Background())
	if again != img {
		t.Error("second load decoded a new image, want the cached one")
	}
}

func TestLoaderMissingFile(t *testing.T) {
	l := NewLoader(filepath.Join(t.TempDir(), "missing.png"))
	if _, err := l.Orb(context.Background()); !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("Orb() error = %v, want fs.ErrNotExist", err)
	}
	if l.orb != nil {
		t.Fatal("failed load was cached")
	}
}

func TestLoaderRetriesAfterFailure(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orb.png")
	l := NewLoader(path)
	if _, err := l.Orb(context.Background()); err == nil {
		t.Fatal("loaded a file that does not exist yet")
	}

	src := image.NewNRGBA(image.Rect(0, 0, 4, 4))
	src.SetNRGBA(1, 1, color.NRGBA{R: 255, A: 255})
	f, err := os.Create(path)
	if err != nil {
		t.Fatal(err)
	}
	if err := png.Encode(f, src); err != nil {
		t.Fatal(err)
	}
	f.Close()

	img, err := l.Orb(context.Background())
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if b := img.Bounds(); b.Dx() != 4 || b.Dy() != 4 {
		t.Fatalf("bounds = %v, want 4x4", b)
	}
}

func TestLoaderRejectsGarbage(t *testing.T) {
	path := filepath.Join(t.TempDir(), "orb.png")
	if err := os.WriteFile(path, []byte("not an image"), 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewLoader(path).Orb(context.Background()); err == nil {
		t.Fatal("decoded garbage")
	}
}

func TestLoaderCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewLoader("").Orb(ctx); !errors.Is(err, context.Canceled) {
		t.Fatalf("Orb() error = %v, want context.Canceled", err)
	}
}

func TestClampByte(t *testing.T) {
	for _, tt := range []struct {
		in   float64
		want uint8
	}{{-3, 0}, {0, 0}, {127.9, 127}, {255, 255}, {300, 255}} {
		if got := ClampByte(tt.in); got != tt.want {
			t.Errorf("ClampByte(%v) = %d, want %d", tt.in, got, tt.want)
		}
	}
}
