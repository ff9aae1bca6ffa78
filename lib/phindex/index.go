package phindex

// persistent index of placeholder hashes for files of directory tree

import (
	"bufio"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/klauspost/compress/zstd"
	"golang.org/x/xerrors"
)

const indexVersion = 1

type Entry struct {
	Path        string `toml:"path"` // slash separated, NFC, relative to root
	ContentHash string `toml:"content_hash"`
	XComponents int    `toml:"x_components"`
	YComponents int    `toml:"y_components"`
	Width       int    `toml:"width"` // of raster which was encoded
	Height      int    `toml:"height"`
	Sampling    string `toml:"sampling"` // loader fingerprint raster was made with
	BlurHash    string `toml:"blurhash"`
}

type Index struct {
	Version int     `toml:"version"`
	Entries []Entry `toml:"entry"`
}

// Lookup finds entry by path. Entries must be sorted.
func (x *Index) Lookup(path string) (Entry, bool) {
	i := sort.Search(len(x.Entries), func(i int) bool {
		return x.Entries[i].Path >= path
	})
	if i < len(x.Entries) && x.Entries[i].Path == path {
		return x.Entries[i], true
	}
	return Entry{}, false
}

func (x *Index) sort() {
	sort.Slice(x.Entries, func(i, j int) bool {
		return x.Entries[i].Path < x.Entries[j].Path
	})
}

func compressed(path string) bool {
	return strings.HasSuffix(path, ".zst")
}

// ReadIndex loads index from path. Missing file gives empty index.
// Files ending with .zst are zstd compressed.
func ReadIndex(path string) (*Index, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return &Index{Version: indexVersion}, nil
		}
		return nil, err
	}
	defer f.Close()

	var r io.Reader = bufio.NewReader(f)
	if compressed(path) {
		zr, err := zstd.NewReader(r)
		if err != nil {
			return nil, xerrors.Errorf("zstd reader: %w", err)
		}
		defer zr.Close()
		r = zr
	}

	x := &Index{}
	if _, err = toml.DecodeReader(r, x); err != nil {
		return nil, xerrors.Errorf("decode index %q: %w", path, err)
	}
	if x.Version != indexVersion {
		return nil, xerrors.Errorf("index %q: unsupported version %d", path, x.Version)
	}
	x.sort()
	return x, nil
}

// WriteIndex stores index at path, replacing it atomically.
func WriteIndex(path string, x *Index) (err error) {
	x.Version = indexVersion
	x.sort()

	f, err := os.CreateTemp(filepath.Dir(path), ".phindex-*")
	if err != nil {
		return
	}
	tmp := f.Name()
	defer func() {
		if err != nil {
			f.Close()
			os.Remove(tmp)
		}
	}()

	bw := bufio.NewWriter(f)
	var w io.Writer = bw
	var zw *zstd.Encoder
	if compressed(path) {
		zw, err = zstd.NewWriter(bw, zstd.WithEncoderLevel(zstd.SpeedBetterCompression))
		if err != nil {
			return
		}
		w = zw
	}

	if err = toml.NewEncoder(w).Encode(x); err != nil {
		return xerrors.Errorf("encode index: %w", err)
	}
	if zw != nil {
		if err = zw.Close(); err != nil {
			return
		}
	}
	if err = bw.Flush(); err != nil {
		return
	}
	// CreateTemp makes it private
	if err = f.Chmod(0644); err != nil {
		return
	}
	if err = f.Close(); err != nil {
		return
	}
	return os.Rename(tmp, path)
}
