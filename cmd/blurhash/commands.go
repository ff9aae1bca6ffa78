package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strconv"

	"blurhash/lib/blurhash"
	"blurhash/lib/hashtools"
	"blurhash/lib/imageio"
	"blurhash/lib/logx"
	"blurhash/lib/phindex"
	"blurhash/lib/termview"
)

var errUsage = errors.New("wrong arguments, see -help")

func newFlagSet(name string) *flag.FlagSet {
	return flag.NewFlagSet(name, flag.ContinueOnError)
}

func atoiArg(name, s string) (int, error) {
	i, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("%s: %q is not integer", name, s)
	}
	return i, nil
}

func checkComponents(x, y int) error {
	if x < 1 || x > blurhash.MaxComponents || y < 1 || y > blurhash.MaxComponents {
		return fmt.Errorf("%w (got %dx%d)", blurhash.ErrInvalidComponentCount, x, y)
	}
	return nil
}

func encodeFiles(e *env, x, y int, files []string) error {
	if err := checkComponents(x, y); err != nil {
		return err
	}
	ld, err := imageio.NewLoader(e.cfg.ImageConfig(), e.lx)
	if err != nil {
		return err
	}
	for _, fn := range files {
		r, err := ld.Load(fn)
		if err != nil {
			return err
		}
		h, err := r.Encode(x, y)
		if err != nil {
			return err
		}
		e.log.LogPrintf(logx.INFO, "%q %dx%d -> %s", fn, r.Width, r.Height, h)
		if len(files) == 1 {
			fmt.Println(h)
		} else {
			fmt.Printf("%s\t%s\n", h, fn)
		}
	}
	return nil
}

func runEncode(e *env, args []string) error {
	fs := newFlagSet("encode")
	x := fs.Int("x", e.cfg.Encode.XComponents, "horizontal components (1-9)")
	y := fs.Int("y", e.cfg.Encode.YComponents, "vertical components (1-9)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() == 0 {
		return errUsage
	}
	return encodeFiles(e, *x, *y, fs.Args())
}

// e <x> <y> <image>
func runEncodeShort(e *env, args []string) error {
	if len(args) != 3 {
		return errUsage
	}
	x, err := atoiArg("x components", args[0])
	if err != nil {
		return err
	}
	y, err := atoiArg("y components", args[1])
	if err != nil {
		return err
	}
	return encodeFiles(e, x, y, args[2:])
}

func decodeToFile(e *env, hash string, w, h, punch, channels int, out string) error {
	pix, err := blurhash.DecodeAlloc(hash, w, h, punch, channels)
	if err != nil {
		return err
	}
	if err = imageio.Save(out, w, h, channels, pix); err != nil {
		return err
	}
	e.log.LogPrintf(logx.NOTICE, "decoded %s into %dx%d %q", hash, w, h, out)
	return nil
}

func parseGeometry(ws, hs string) (w, h int, err error) {
	if w, err = atoiArg("width", ws); err != nil {
		return
	}
	h, err = atoiArg("height", hs)
	return
}

func runDecode(e *env, args []string) error {
	fs := newFlagSet("decode")
	punch := fs.Int("punch", e.cfg.Decode.Punch, "contrast multiplier (>= 1)")
	channels := fs.Int("channels", e.cfg.Decode.Channels, "channels of output (3 or 4)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 4 {
		return errUsage
	}
	a := fs.Args()
	w, h, err := parseGeometry(a[1], a[2])
	if err != nil {
		return err
	}
	return decodeToFile(e, a[0], w, h, *punch, *channels, a[3])
}

// d <hash> <width> <height> <output> [punch]
func runDecodeShort(e *env, args []string) error {
	if len(args) != 4 && len(args) != 5 {
		return errUsage
	}
	w, h, err := parseGeometry(args[1], args[2])
	if err != nil {
		return err
	}
	punch := e.cfg.Decode.Punch
	if len(args) == 5 {
		if punch, err = atoiArg("punch", args[4]); err != nil {
			return err
		}
	}
	return decodeToFile(e, args[0], w, h, punch, 4, args[3])
}

var errSomeInvalid = errors.New("some hashes are invalid")

func runValid(e *env, args []string) error {
	if len(args) == 0 {
		return errUsage
	}
	bad := false
	for _, h := range args {
		if blurhash.IsValid(h) {
			x, y, _ := blurhash.Components(h)
			fmt.Printf("%s\tvalid\t%dx%d\n", h, x, y)
		} else {
			bad = true
			fmt.Printf("%s\tinvalid\n", h)
		}
	}
	if bad {
		return errSomeInvalid
	}
	return nil
}

func runShow(e *env, args []string) error {
	fs := newFlagSet("show")
	width := fs.Int("width", 0, "preview width in columns (default terminal width)")
	punch := fs.Int("punch", e.cfg.Decode.Punch, "contrast multiplier (>= 1)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	cols := *width
	if cols <= 0 {
		cols = termview.TermWidth(os.Stdout)
	}
	return termview.Render(os.Stdout, fs.Arg(0), cols, *punch)
}

func runIndex(e *env, args []string) error {
	fs := newFlagSet("index")
	out := fs.String("o", e.cfg.Index.Output, "index `file` (.zst suffix compresses)")
	workers := fs.Int("workers", e.cfg.Index.Workers, "parallel encoders")
	x := fs.Int("x", e.cfg.Encode.XComponents, "horizontal components (1-9)")
	y := fs.Int("y", e.cfg.Encode.YComponents, "vertical components (1-9)")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return errUsage
	}
	if err := checkComponents(*x, *y); err != nil {
		return err
	}
	ht, err := hashtools.ParseHashType(e.cfg.Index.HashType)
	if err != nil {
		return err
	}

	ld, err := imageio.NewLoader(e.cfg.ImageConfig(), e.lx)
	if err != nil {
		return err
	}
	b, err := phindex.NewBuilder(phindex.Config{
		Include:     e.cfg.Index.Include,
		Exclude:     e.cfg.Index.Exclude,
		Workers:     *workers,
		XComponents: *x,
		YComponents: *y,
		HashType:    ht,
	}, ld, e.lx)
	if err != nil {
		return err
	}

	prev, err := phindex.ReadIndex(*out)
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	x2, st, err := b.Build(ctx, fs.Arg(0), prev)
	if err != nil {
		return err
	}
	if err = phindex.WriteIndex(*out, x2); err != nil {
		return err
	}
	e.log.LogPrintf(logx.NOTICE, "wrote %q: %d entries (%d encoded, %d reused, %d skipped)",
		*out, len(x2.Entries), st.Encoded, st.Reused, st.Skipped)
	return nil
}
