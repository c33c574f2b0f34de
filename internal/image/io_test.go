package image

import (
	"bytes"
	"errors"
	"image"
	"image/color"
	"os"
	"path/filepath"
	"testing"
)

// testImage returns a small opaque gradient.
func testImage() *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, 8, 6))
	for y := range 6 {
		for x := range 8 {
			img.SetNRGBA(x, y, color.NRGBA{R: uint8(x * 30), G: uint8(y * 40), B: 128, A: 255})
		}
	}
	return img
}

func TestEncodeDecodeLossless(t *testing.T) {
	for _, format := range []string{"png", "bmp", "tiff"} {
		t.Run(format, func(t *testing.T) {
			src := testImage()

			var buf bytes.Buffer
			if err := Encode(&buf, src, format); err != nil {
				t.Fatalf("Encode: %v", err)
			}

			got, gotFormat, err := Decode(&buf)
			if err != nil {
				t.Fatalf("Decode: %v", err)
			}
			if gotFormat != format {
				t.Errorf("format = %q, want %q", gotFormat, format)
			}
			if got.Bounds() != src.Bounds() {
				t.Fatalf("bounds = %v, want %v", got.Bounds(), src.Bounds())
			}

			r, g, b, a := got.At(3, 2).RGBA()
			want := src.NRGBAAt(3, 2)
			if uint8(r>>8) != want.R || uint8(g>>8) != want.G || uint8(b>>8) != want.B || uint8(a>>8) != want.A {
				t.Errorf("pixel (3,2) = (%d,%d,%d,%d), want %v", r>>8, g>>8, b>>8, a>>8, want)
			}
		})
	}
}

func TestDecodeEmpty(t *testing.T) {
	_, _, err := DecodeBytes(nil)
	if !errors.Is(err, ErrEmptyData) {
		t.Errorf("err = %v, want ErrEmptyData", err)
	}
}

func TestDecodeRejectsNonImage(t *testing.T) {
	_, _, err := DecodeBytes([]byte("%PDF-1.7\n1 0 obj\n<<>>\nendobj\n"))
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestFormatFromPath(t *testing.T) {
	tests := []struct {
		path    string
		want    string
		wantErr bool
	}{
		{"out.png", "png", false},
		{"OUT.JPG", "jpeg", false},
		{"a/b/c.jpeg", "jpeg", false},
		{"scan.tif", "tiff", false},
		{"x.bmp", "bmp", false},
		{"anim.gif", "gif", false},
		{"photo.webp", "", true},
		{"noext", "", true},
	}

	for _, tt := range tests {
		got, err := FormatFromPath(tt.path)
		if (err != nil) != tt.wantErr {
			t.Errorf("FormatFromPath(%q) err = %v, wantErr %v", tt.path, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("FormatFromPath(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func TestSaveLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "out.png")

	if err := Save(path, testImage()); err != nil {
		t.Fatalf("Save: %v", err)
	}

	img, format, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != "png" || img.Bounds().Dx() != 8 || img.Bounds().Dy() != 6 {
		t.Errorf("Load = %s %v, want png 8x6", format, img.Bounds())
	}
}

func TestLoadSniffsContent(t *testing.T) {
	dir := t.TempDir()
	// PNG bytes behind a misleading extension.
	var buf bytes.Buffer
	if err := Encode(&buf, testImage(), "png"); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	path := filepath.Join(dir, "mislabelled.jpg")
	if err := os.WriteFile(path, buf.Bytes(), 0o600); err != nil {
		t.Fatal(err)
	}

	_, format, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, _, err := Load(filepath.Join(t.TempDir(), "nope.png"))
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("err = %v, want os.ErrNotExist", err)
	}
}

func TestEncodeUnsupported(t *testing.T) {
	err := Encode(&bytes.Buffer{}, testImage(), "webp")
	if !errors.Is(err, ErrUnsupportedFormat) {
		t.Errorf("err = %v, want ErrUnsupportedFormat", err)
	}
}

func TestParseInterpolation(t *testing.T) {
	tests := []struct {
		in      string
		want    InterpolationMode
		wantErr bool
	}{
		{"", InterpBilinear, false},
		{"bilinear", InterpBilinear, false},
		{"Nearest", InterpNearest, false},
		{"catmullrom", InterpBicubic, false},
		{"bicubic", InterpBicubic, false},
		{"lanczos", 0, true},
	}

	for _, tt := range tests {
		got, err := ParseInterpolation(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseInterpolation(%q) err = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if !tt.wantErr && got != tt.want {
			t.Errorf("ParseInterpolation(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestInterpolationModeString(t *testing.T) {
	if InterpBicubic.String() != "Bicubic" || InterpolationMode(99).String() != "Unknown" {
		t.Error("unexpected String() output")
	}
	if InterpolationMode(99).Scaler() == nil {
		t.Error("unknown mode must fall back to a scaler")
	}
}
