// Package baseline records and verifies tree dumps against checked-in
// expectation files.
//
// Each vector owns up to two recorded files: "<name>.stree.txt" with the
// dump and "<name>.diag.txt" with one diagnostic reference per line. A
// missing diagnostics file means zero diagnostics; accepting a clean run
// deletes a stale one instead of leaving an empty file behind. Comparison
// is exact and line by line, and a mismatch names the first differing
// line.
package baseline

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/text/transform"

	"github.com/ajaybhargavb/Razor/internal/diag"
)

const (
	// DumpExt is the recorded tree dump extension.
	DumpExt = ".stree.txt"
	// DiagExt is the recorded diagnostics extension.
	DiagExt = ".diag.txt"
)

// Context states where a comparison round reads and writes its recorded
// files. Name and Dir are required: the entry points panic on a zero
// context rather than guessing paths.
type Context struct {
	// Name identifies the suite in failures and receipts.
	Name string
	// Dir holds the recorded files.
	Dir string
	// Update makes Verify record current output instead of comparing.
	Update bool
}

func (c Context) check() {
	if c.Name == "" || c.Dir == "" {
		panic(fmt.Errorf("baseline: context requires Name and Dir, got Name=%q Dir=%q", c.Name, c.Dir))
	}
}

// DumpPath returns the recorded dump location for a vector name.
func (c Context) DumpPath(name string) string { return filepath.Join(c.Dir, name+DumpExt) }

// DiagPath returns the recorded diagnostics location for a vector name.
func (c Context) DiagPath(name string) string { return filepath.Join(c.Dir, name+DiagExt) }

// Verify compares a rendered dump and its diagnostics against the files
// recorded for name. With c.Update set it records instead of comparing.
func Verify(c Context, name, dump string, diags []diag.Diagnostic) error {
	c.check()
	if c.Update {
		return Accept(c, name, dump, diags)
	}

	recorded, err := readRecorded(c.DumpPath(name))
	if errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("%s: no recorded baseline for %s; accept to create %s", c.Name, name, c.DumpPath(name))
	}
	if err != nil {
		return fmt.Errorf("%s: read baseline: %w", c.Name, err)
	}
	if err := compareLines(name+DumpExt, recorded, dump); err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}

	refs := diag.FormatRefs(diags)
	recordedRefs, err := readRecorded(c.DiagPath(name))
	if errors.Is(err, os.ErrNotExist) {
		if refs == "" {
			return nil
		}
		return fmt.Errorf("%s: no recorded diagnostics for %s but this run produced some", c.Name, name)
	}
	if err != nil {
		return fmt.Errorf("%s: read diagnostics baseline: %w", c.Name, err)
	}
	if refs == "" {
		return fmt.Errorf("%s: stale diagnostics file %s: this run produced none", c.Name, c.DiagPath(name))
	}
	if err := compareLines(name+DiagExt, recordedRefs, refs); err != nil {
		return fmt.Errorf("%s: %w", c.Name, err)
	}
	return nil
}

// Accept records the dump and diagnostics for name. A run with zero
// diagnostics deletes any stale diagnostics file.
func Accept(c Context, name, dump string, diags []diag.Diagnostic) error {
	c.check()
	if err := os.MkdirAll(c.Dir, 0o755); err != nil {
		return fmt.Errorf("%s: create baseline dir: %w", c.Name, err)
	}
	if err := os.WriteFile(c.DumpPath(name), []byte(dump), 0o644); err != nil {
		return fmt.Errorf("%s: write baseline: %w", c.Name, err)
	}

	refs := diag.FormatRefs(diags)
	if refs == "" {
		if err := os.Remove(c.DiagPath(name)); err != nil && !errors.Is(err, os.ErrNotExist) {
			return fmt.Errorf("%s: delete stale diagnostics file: %w", c.Name, err)
		}
		return nil
	}
	if err := os.WriteFile(c.DiagPath(name), []byte(refs+"\n"), 0o644); err != nil {
		return fmt.Errorf("%s: write diagnostics baseline: %w", c.Name, err)
	}
	return nil
}

// compareLines names the first line where got diverges from recorded.
func compareLines(label, recorded, got string) error {
	want := splitLines(recorded)
	have := splitLines(got)
	for i := 0; i < len(want) && i < len(have); i++ {
		if want[i] != have[i] {
			return fmt.Errorf("%s line %d differs\n  recorded: %s\n  actual:   %s", label, i+1, want[i], have[i])
		}
	}
	if len(want) != len(have) {
		return fmt.Errorf("%s line %d differs: recorded has %d lines, actual has %d", label, min(len(want), len(have))+1, len(want), len(have))
	}
	return nil
}

func splitLines(s string) []string {
	s = strings.TrimSuffix(s, "\n")
	if s == "" {
		return nil
	}
	return strings.Split(s, "\n")
}

// dropCR deletes carriage returns, so baselines recorded through a
// CRLF-translating checkout still compare equal.
type dropCR struct{ transform.NopResetter }

func (dropCR) Transform(dst, src []byte, atEOF bool) (nDst, nSrc int, err error) {
	for _, b := range src {
		if b == '\r' {
			nSrc++
			continue
		}
		if nDst == len(dst) {
			return nDst, nSrc, transform.ErrShortDst
		}
		dst[nDst] = b
		nDst++
		nSrc++
	}
	return nDst, nSrc, nil
}

func readRecorded(path string) (string, error) {
	// #nosec G304 -- path is derived from the caller's baseline dir
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	data, err := io.ReadAll(transform.NewReader(f, dropCR{}))
	if err != nil {
		return "", err
	}
	return string(data), nil
}
