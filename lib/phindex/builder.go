package phindex

import (
	"context"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"
	"sync/atomic"

	"github.com/gobwas/glob"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/unicode/norm"
	"golang.org/x/xerrors"

	"blurhash/lib/hashtools"
	"blurhash/lib/imageio"
	. "blurhash/lib/logx"
)

type Config struct {
	// patterns without slash match base name, others whole relative path
	Include, Exclude []string
	Workers          int
	XComponents      int
	YComponents      int
	HashType         hashtools.HashType
}

type Stats struct {
	Encoded, Reused, Skipped int
}

type matcher struct {
	g    glob.Glob
	full bool
}

func compile(patterns []string) ([]matcher, error) {
	ms := make([]matcher, 0, len(patterns))
	for _, p := range patterns {
		g, err := glob.Compile(p, '/')
		if err != nil {
			return nil, xerrors.Errorf("pattern %q: %w", p, err)
		}
		ms = append(ms, matcher{g: g, full: strings.Contains(p, "/")})
	}
	return ms, nil
}

func matchAny(ms []matcher, rel string) bool {
	base := path.Base(rel)
	for _, m := range ms {
		if (m.full && m.g.Match(rel)) || (!m.full && m.g.Match(base)) {
			return true
		}
	}
	return false
}

type Builder struct {
	cfg    Config
	inc    []matcher
	exc    []matcher
	loader *imageio.Loader
	hasher *hashtools.Hasher
	log    Logger
}

func NewBuilder(cfg Config, loader *imageio.Loader, lx LoggerX) (*Builder, error) {
	b := &Builder{
		cfg:    cfg,
		loader: loader,
		hasher: hashtools.NewHasher(cfg.HashType),
		log:    NewLogToX(lx, "phindex"),
	}
	if b.cfg.Workers < 1 {
		b.cfg.Workers = 1
	}
	var err error
	if b.inc, err = compile(cfg.Include); err != nil {
		return nil, err
	}
	if b.exc, err = compile(cfg.Exclude); err != nil {
		return nil, err
	}
	return b, nil
}

func (b *Builder) selected(rel string) bool {
	if len(b.inc) != 0 && !matchAny(b.inc, rel) {
		return false
	}
	return !matchAny(b.exc, rel)
}

type job struct {
	full string
	key  string
}

func (b *Builder) scan(ctx context.Context, root string) (jobs []job, err error) {
	err = filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if err = ctx.Err(); err != nil {
			return err
		}
		if !d.Type().IsRegular() {
			return nil
		}
		rel, err := filepath.Rel(root, p)
		if err != nil {
			return err
		}
		key := norm.NFC.String(filepath.ToSlash(rel))
		if b.selected(key) {
			jobs = append(jobs, job{full: p, key: key})
		}
		return nil
	})
	return
}

func (b *Builder) hashFile(p string) (string, error) {
	f, err := os.Open(p)
	if err != nil {
		return "", err
	}
	defer f.Close()
	return b.hasher.Sum(f)
}

// Build indexes files under root. Entries of prev whose content hash,
// component counts and loader fingerprint still match are reused
// without decoding image again.
// Files which fail to load are logged and left out.
func (b *Builder) Build(ctx context.Context, root string, prev *Index) (*Index, Stats, error) {
	jobs, err := b.scan(ctx, root)
	if err != nil {
		return nil, Stats{}, xerrors.Errorf("scan %q: %w", root, err)
	}
	b.log.LogPrintf(INFO, "%d files selected under %q", len(jobs), root)

	if prev == nil {
		prev = &Index{}
	}

	var encoded, reused, skipped int64
	results := make([]*result, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(b.cfg.Workers)
	for i := range jobs {
		i := i
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			e, err := b.process(jobs[i], prev)
			if err != nil {
				b.log.LogPrintf(WARN, "skipping %q: %v", jobs[i].key, err)
				atomic.AddInt64(&skipped, 1)
				return nil
			}
			results[i] = e
			if e.reused {
				atomic.AddInt64(&reused, 1)
			} else {
				atomic.AddInt64(&encoded, 1)
			}
			return nil
		})
	}
	if err = g.Wait(); err != nil {
		return nil, Stats{}, err
	}

	x := &Index{Version: indexVersion}
	for _, e := range results {
		if e != nil {
			x.Entries = append(x.Entries, e.Entry)
		}
	}
	x.sort()

	st := Stats{Encoded: int(encoded), Reused: int(reused), Skipped: int(skipped)}
	b.log.LogPrintf(INFO, "indexed %d files: %d encoded, %d reused, %d skipped",
		len(x.Entries), st.Encoded, st.Reused, st.Skipped)
	return x, st, nil
}

type result struct {
	Entry
	reused bool
}

func (b *Builder) process(j job, prev *Index) (*result, error) {
	sum, err := b.hashFile(j.full)
	if err != nil {
		return nil, err
	}

	sampling := b.loader.Fingerprint()
	if old, ok := prev.Lookup(j.key); ok &&
		old.ContentHash == sum &&
		old.XComponents == b.cfg.XComponents &&
		old.YComponents == b.cfg.YComponents &&
		old.Sampling == sampling {

		b.log.LogPrintf(DEBUG, "%q unchanged", j.key)
		return &result{Entry: old, reused: true}, nil
	}

	r, err := b.loader.Load(j.full)
	if err != nil {
		return nil, err
	}
	h, err := r.Encode(b.cfg.XComponents, b.cfg.YComponents)
	if err != nil {
		return nil, err
	}
	b.log.LogPrintf(DEBUG, "%q -> %s", j.key, h)

	return &result{Entry: Entry{
		Path:        j.key,
		ContentHash: sum,
		XComponents: b.cfg.XComponents,
		YComponents: b.cfg.YComponents,
		Width:       r.Width,
		Height:      r.Height,
		Sampling:    sampling,
		BlurHash:    h,
	}}, nil
}
