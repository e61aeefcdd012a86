package source

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadNormalizesCRLF(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "crlf.tree")
	if err := os.WriteFile(path, []byte("a\r\nb\r\nc"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(f.Content) != "a\nb\nc" {
		t.Errorf("expected normalized content %q, got %q", "a\nb\nc", f.Content)
	}
	if f.Flags&FileNormalizedCRLF == 0 {
		t.Error("expected FileNormalizedCRLF flag to be set")
	}
	if len(f.LineIdx) != 2 {
		t.Errorf("expected 2 newline offsets, got %d", len(f.LineIdx))
	}
}

func TestLoadStripsBOM(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "bom.tree")
	if err := os.WriteFile(path, []byte{0xEF, 0xBB, 0xBF, 'h', 'i'}, 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(f.Content) != "hi" {
		t.Errorf("expected BOM-free content %q, got %q", "hi", f.Content)
	}
	if f.Flags&FileHadBOM == 0 {
		t.Error("expected FileHadBOM flag to be set")
	}
}

func TestNewVirtualFileKeepsBytes(t *testing.T) {
	f := NewVirtualFile("virt.tree", []byte("a\r\nb"))

	if string(f.Content) != "a\r\nb" {
		t.Errorf("virtual content must stay untouched, got %q", f.Content)
	}
	if f.Flags&FileVirtual == 0 {
		t.Error("expected FileVirtual flag to be set")
	}
}

func TestResolveLineCol(t *testing.T) {
	f := NewVirtualFile("test.tree", []byte("one\ntwo\nthree"))

	tests := []struct {
		name      string
		span      Span
		wantStart LineCol
		wantEnd   LineCol
	}{
		{"first line", NewSpan(0, 3), LineCol{1, 1}, LineCol{1, 4}},
		{"second line", NewSpan(4, 7), LineCol{2, 1}, LineCol{2, 4}},
		{"crossing lines", NewSpan(2, 5), LineCol{1, 3}, LineCol{2, 2}},
		{"last line", NewSpan(8, 13), LineCol{3, 1}, LineCol{3, 6}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gotStart, gotEnd := f.Resolve(tt.span)
			if gotStart != tt.wantStart || gotEnd != tt.wantEnd {
				t.Errorf("Resolve(%v) = %v, %v, want %v, %v",
					tt.span, gotStart, gotEnd, tt.wantStart, tt.wantEnd)
			}
		})
	}
}

func TestGetLine(t *testing.T) {
	f := NewVirtualFile("test.tree", []byte("one\ntwo\nthree"))

	tests := []struct {
		lineNum uint32
		want    string
	}{
		{0, ""},
		{1, "one"},
		{2, "two"},
		{3, "three"},
		{4, ""},
	}
	for _, tt := range tests {
		if got := f.GetLine(tt.lineNum); got != tt.want {
			t.Errorf("GetLine(%d) = %q, want %q", tt.lineNum, got, tt.want)
		}
	}
}

func TestLoadReadsFromDisk(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "doc.tree")
	if err := os.WriteFile(path, []byte("document\r\n"), 0o644); err != nil {
		t.Fatalf("failed to write fixture: %v", err)
	}

	f, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if string(f.Content) != "document\n" {
		t.Errorf("expected normalized content, got %q", f.Content)
	}
	if f.Flags&FileVirtual != 0 {
		t.Error("disk-loaded file must not carry FileVirtual")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "absent.tree")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestFormatPathBasename(t *testing.T) {
	f := NewVirtualFile("/very/long/path/to/some/deeply/nested/dir/doc.tree", nil)
	if got := f.FormatPath("basename", ""); got != "doc.tree" {
		t.Errorf("FormatPath(basename) = %q, want %q", got, "doc.tree")
	}
}
