package main

import (
	"errors"
	"image"
	"image/color"
	"path/filepath"
	"testing"

	"github.com/disintegration/imaging"

	"blurhash/lib/blurhash"
	"blurhash/lib/config"
	"blurhash/lib/logx"
	"blurhash/lib/phindex"
)

func testEnv() *env {
	lx := logx.NopLoggerX{}
	return &env{cfg: config.Default, lx: lx, log: logx.NewLogToX(lx, "test")}
}

func TestComponentBounds(t *testing.T) {
	for _, c := range [][2]int{{1, 1}, {9, 9}, {9, 1}} {
		if err := checkComponents(c[0], c[1]); err != nil {
			t.Errorf("%v rejected: %v", c, err)
		}
	}
	for _, c := range [][2]int{{0, 1}, {10, 1}, {1, 10}} {
		if err := checkComponents(c[0], c[1]); !errors.Is(err, blurhash.ErrInvalidComponentCount) {
			t.Errorf("%v exp ErrInvalidComponentCount got %v", c, err)
		}
	}
}

func TestShortForms(t *testing.T) {
	dir := t.TempDir()
	e := testEnv()

	src := filepath.Join(dir, "src.png")
	if err := imaging.Save(imaging.New(16, 8, color.NRGBA{R: 200, G: 100, B: 50, A: 255}), src); err != nil {
		t.Fatalf("imaging.Save err: %v", err)
	}
	if err := runEncodeShort(e, []string{"9", "9", src}); err != nil {
		t.Errorf("e 9 9 err: %v", err)
	}
	if err := runEncodeShort(e, []string{"10", "1", src}); !errors.Is(err, blurhash.ErrInvalidComponentCount) {
		t.Errorf("e 10 1 exp ErrInvalidComponentCount got %v", err)
	}
	if err := runEncodeShort(e, []string{"x", "1", src}); err == nil {
		t.Errorf("expected error for non-integer component count")
	}

	out := filepath.Join(dir, "out.png")
	if err := runDecodeShort(e, []string{"00Ew7V", "5", "4", out, "2"}); err != nil {
		t.Fatalf("d err: %v", err)
	}
	img, err := imaging.Open(out)
	if err != nil {
		t.Fatalf("imaging.Open err: %v", err)
	}
	if img.Bounds() != image.Rect(0, 0, 5, 4) {
		t.Errorf("unexpected bounds %v", img.Bounds())
	}
	if err := runDecodeShort(e, []string{"00Ew7", "5", "4", out}); err != blurhash.ErrInvalidHash {
		t.Errorf("exp ErrInvalidHash got %v", err)
	}
}

func TestValid(t *testing.T) {
	e := testEnv()
	if err := runValid(e, []string{"00Ew7V", "L00000fQfQfQfQfQfQfQfQfQfQfQ"}); err != nil {
		t.Errorf("runValid err: %v", err)
	}
	if err := runValid(e, []string{"00Ew7V", "nope"}); err != errSomeInvalid {
		t.Errorf("exp errSomeInvalid got %v", err)
	}
	if err := runValid(e, nil); err != errUsage {
		t.Errorf("exp errUsage got %v", err)
	}
}

func TestIndexCommand(t *testing.T) {
	dir := t.TempDir()
	e := testEnv()
	if err := imaging.Save(imaging.New(4, 4, color.NRGBA{G: 255, A: 255}), filepath.Join(dir, "g.png")); err != nil {
		t.Fatalf("imaging.Save err: %v", err)
	}
	out := filepath.Join(t.TempDir(), "idx.toml.zst")
	if err := runIndex(e, []string{"-o", out, "-x", "3", "-y", "2", dir}); err != nil {
		t.Fatalf("runIndex err: %v", err)
	}
	x, err := phindex.ReadIndex(out)
	if err != nil {
		t.Fatalf("ReadIndex err: %v", err)
	}
	if len(x.Entries) != 1 || x.Entries[0].Path != "g.png" || len(x.Entries[0].BlurHash) != blurhash.EncodedLen(3, 2) {
		t.Errorf("unexpected index %+v", x.Entries)
	}
}
