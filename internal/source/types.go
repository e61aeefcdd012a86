package source

// FileFlags encodes metadata about how a document's text was obtained.
type FileFlags uint8

const (
	// FileVirtual indicates the document was added from memory (test, stdin).
	FileVirtual FileFlags = 1 << iota
	// FileHadBOM indicates a UTF-8 BOM was stripped during load.
	FileHadBOM
	// FileNormalizedCRLF indicates CRLF pairs were rewritten to LF during load.
	FileNormalizedCRLF
)

// File is the text a tree was parsed from, plus the metadata needed to
// resolve spans back into human positions.
type File struct {
	Path    string
	Content []byte
	LineIdx []uint32 // byte offsets of '\n', ascending
	Hash    [32]byte // sha256 of Content after normalization
	Flags   FileFlags
}

// LineCol represents a human-readable position in a source file.
type LineCol struct {
	Line uint32 // 1-based
	Col  uint32 // 1-based
}
