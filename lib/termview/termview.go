package termview

// truecolor preview of blurhash in terminal using half block cells

import (
	"bufio"
	"fmt"
	"io"
	"os"

	"golang.org/x/term"

	"blurhash/lib/blurhash"
)

const DefaultWidth = 80

// TermWidth returns column count of terminal f, or DefaultWidth if it isn't one.
func TermWidth(f *os.File) int {
	fd := int(f.Fd())
	if !term.IsTerminal(fd) {
		return DefaultWidth
	}
	cols, _, err := term.GetSize(fd)
	if err != nil || cols <= 0 {
		return DefaultWidth
	}
	return cols
}

// PreviewSize picks pixel geometry for cols wide preview.
// Aspect follows component counts, which encoders usually pick
// proportionally to image sides. Terminal cell is about twice as tall
// as wide and holds 2 pixels vertically, so pixels come out square.
// Height is always even and capped at cols, so tall hashes
// take at most cols/2 lines.
func PreviewSize(hash string, cols int) (w, h int, err error) {
	x, y, err := blurhash.Components(hash)
	if err != nil {
		return 0, 0, err
	}
	if cols < 1 {
		cols = 1
	}
	w = cols
	h = w * y / x
	if h > cols {
		h = cols
	}
	h -= h % 2
	if h < 2 {
		h = 2
	}
	return w, h, nil
}

// Render draws hash cols cells wide to w.
func Render(w io.Writer, hash string, cols, punch int) error {
	pw, ph, err := PreviewSize(hash, cols)
	if err != nil {
		return err
	}
	pix, err := blurhash.DecodeAlloc(hash, pw, ph, punch, 3)
	if err != nil {
		return err
	}
	return drawHalfBlocks(w, pw, ph, pix)
}

// drawHalfBlocks paints two pixel rows per line:
// upper half block in foreground color, lower in background.
func drawHalfBlocks(w io.Writer, width, height int, pix []byte) error {
	bw := bufio.NewWriter(w)
	stride := width * 3
	for y := 0; y+1 < height; y += 2 {
		top := pix[y*stride:]
		bot := pix[(y+1)*stride:]
		for x := 0; x < width; x++ {
			t := top[3*x : 3*x+3]
			b := bot[3*x : 3*x+3]
			fmt.Fprintf(bw, "\x1b[38;2;%d;%d;%dm\x1b[48;2;%d;%d;%dm▀",
				t[0], t[1], t[2], b[0], b[1], b[2])
		}
		bw.WriteString("\x1b[0m\n")
	}
	return bw.Flush()
}
