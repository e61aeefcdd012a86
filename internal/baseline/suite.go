package baseline

import (
	"context"
	"fmt"
	"io/fs"
	"path/filepath"
	"runtime"
	"sort"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/ajaybhargavb/Razor/internal/ir"
	"github.com/ajaybhargavb/Razor/internal/pipeline"
	"github.com/ajaybhargavb/Razor/internal/source"
)

const defaultExt = ".tree"

// Suite discovers vectors under a directory, runs the pipeline over each,
// and verifies (or accepts) the dumps in parallel.
type Suite struct {
	// Fixtures is the directory scanned recursively for vectors.
	Fixtures string
	// Ext selects vector files; defaults to ".tree".
	Ext string
	// Context states where recorded files live.
	Context Context
	// Parser builds each document tree. Required.
	Parser pipeline.Parser
	// Passes run over every document in priority order.
	Passes []pipeline.Pass
	// Options applies to every parse.
	Options pipeline.ParseOptions
	// Jobs bounds parallelism; zero means GOMAXPROCS.
	Jobs int
	// Progress receives per-file events; may be nil.
	Progress pipeline.ProgressSink
	// Cache skips vectors whose receipts are still fresh; may be nil.
	Cache *ReceiptCache
}

// FileResult is the outcome for one vector.
type FileResult struct {
	Path    string
	Name    string
	Cached  bool
	Err     error
	Elapsed time.Duration
}

// Failed counts results that carry an error.
func Failed(results []FileResult) int {
	n := 0
	for _, r := range results {
		if r.Err != nil {
			n++
		}
	}
	return n
}

// ListVectors returns the sorted vector files under dir.
func ListVectors(dir, ext string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.HasSuffix(path, ext) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(files)
	return files, nil
}

// Run processes every vector under s.Fixtures. Verification failures land
// in the per-file results; the returned error covers discovery and
// cancellation only.
func (s Suite) Run(ctx context.Context) ([]FileResult, error) {
	if s.Parser == nil {
		return nil, fmt.Errorf("suite %q has no parser", s.Context.Name)
	}
	s.Context.check()
	ext := s.Ext
	if ext == "" {
		ext = defaultExt
	}

	files, err := ListVectors(s.Fixtures, ext)
	if err != nil {
		return nil, fmt.Errorf("list vectors: %w", err)
	}
	if len(files) == 0 {
		return nil, nil
	}

	jobs := s.Jobs
	if jobs <= 0 {
		jobs = runtime.GOMAXPROCS(0)
	}

	// Receipts key on the ordered pass list, so derive it once.
	ordered := pipeline.NewRunner(s.Passes...).Passes()
	passNames := make([]string, 0, len(ordered))
	for _, p := range ordered {
		passNames = append(passNames, p.Name())
	}

	// Indexes are unique per goroutine, so the slice needs no lock.
	results := make([]FileResult, len(files))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(min(jobs, len(files)))
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			select {
			case <-gctx.Done():
				return gctx.Err()
			default:
			}
			results[i] = s.runOne(gctx, path, passNames)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return results, err
	}
	return results, nil
}

func (s Suite) runOne(ctx context.Context, path string, passNames []string) FileResult {
	start := time.Now()
	res := FileResult{
		Path: path,
		Name: strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
	}
	finish := func(err error) FileResult {
		res.Err = err
		res.Elapsed = time.Since(start)
		status := pipeline.StatusDone
		if err != nil {
			status = pipeline.StatusError
		}
		s.emit(path, status, err, res.Elapsed)
		return res
	}

	s.emit(path, pipeline.StatusQueued, nil, 0)

	file, err := source.Load(path)
	if err != nil {
		return finish(fmt.Errorf("load vector: %w", err))
	}

	key := Key(s.Context.Name, path)
	if !s.Context.Update && s.freshReceipt(key, file.Hash, res.Name, passNames) {
		res.Cached = true
		return finish(nil)
	}

	s.emit(path, pipeline.StatusWorking, nil, time.Since(start))

	out, err := pipeline.Process(ctx, file, &pipeline.ProcessRequest{
		Parser:   s.Parser,
		Passes:   s.Passes,
		Options:  s.Options,
		Progress: s.Progress,
	})
	if err != nil {
		return finish(err)
	}

	dump := ir.DumpString(out.Root)
	if err := Verify(s.Context, res.Name, dump, out.Document.Bag.Items()); err != nil {
		return finish(err)
	}

	s.storeReceipt(key, file.Hash, res.Name, passNames)
	return finish(nil)
}

func (s Suite) emit(file string, status pipeline.Status, err error, elapsed time.Duration) {
	if s.Progress == nil {
		return
	}
	s.Progress.OnEvent(pipeline.Event{
		File:    file,
		Stage:   pipeline.StageVerify,
		Status:  status,
		Err:     err,
		Elapsed: elapsed,
	})
}

func (s Suite) freshReceipt(key [32]byte, vector [32]byte, name string, passNames []string) bool {
	if s.Cache == nil {
		return false
	}
	r, ok, err := s.Cache.Get(key)
	if err != nil || !ok {
		return false
	}
	dumpHash, err := hashFile(s.Context.DumpPath(name))
	if err != nil {
		return false
	}
	diagHash, err := hashFile(s.Context.DiagPath(name))
	if err != nil {
		return false
	}
	return r.Fresh(s.Context.Name, vector, dumpHash, diagHash, passNames)
}

func (s Suite) storeReceipt(key [32]byte, vector [32]byte, name string, passNames []string) {
	if s.Cache == nil {
		return
	}
	dumpHash, err := hashFile(s.Context.DumpPath(name))
	if err != nil {
		return
	}
	diagHash, err := hashFile(s.Context.DiagPath(name))
	if err != nil {
		return
	}
	// Receipt write failures are ignored; the next run just re-verifies.
	_ = s.Cache.Put(key, &Receipt{
		Schema:     receiptSchemaVersion,
		Suite:      s.Context.Name,
		VectorHash: vector,
		DumpHash:   dumpHash,
		DiagHash:   diagHash,
		Passes:     passNames,
		Verified:   time.Now(),
	})
}
