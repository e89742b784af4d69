package source

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"

	"fortio.org/safecast"
)

// FileSet manages a collection of source files and resolves byte offsets to
// human-readable line/column positions.
type FileSet struct {
	files []File
	index map[string]FileID // path -> id
}

// NewFileSet creates a new empty FileSet.
func NewFileSet() *FileSet {
	return &FileSet{
		files: make([]File, 0),
		index: make(map[string]FileID),
	}
}

// Add stores a file from normalized bytes, computes LineIdx and Hash, and
// returns a new FileID.
func (fileSet *FileSet) Add(path string, content []byte, flags FileFlags) FileID {
	hash := sha256.Sum256(content)
	lineIdx := buildLineIndex(content)
	normalizedPath := normalizePath(path)

	lenFiles, err := safecast.Conv[uint32](len(fileSet.files))
	if err != nil {
		panic(fmt.Errorf("len files overflow: %w", err))
	}
	id := FileID(lenFiles)
	fileSet.files = append(fileSet.files, File{
		ID:      id,
		Path:    normalizedPath,
		Content: content,
		LineIdx: lineIdx,
		Hash:    hash,
		Flags:   flags,
	})
	fileSet.index[normalizedPath] = id
	return id
}

// Load reads a file from disk, normalizes CRLF/BOM, and calls Add.
func (fileSet *FileSet) Load(path string) (FileID, error) {
	// #nosec G304 -- path is provided by the caller
	content, err := os.ReadFile(path)
	if err != nil {
		return 0, err
	}

	content, hadBOM := removeBOM(content)
	content, hadCRLF := normalizeCRLF(content)

	flags := FileFlags(0)
	if hadBOM {
		flags |= FileHadBOM
	}
	if hadCRLF {
		flags |= FileNormalizedCRLF
	}
	return fileSet.Add(path, content, flags), nil
}

// AddVirtual adds a virtual file (stdin, test, or generated) with the
// FileVirtual flag.
func (fileSet *FileSet) AddVirtual(name string, content []byte) FileID {
	return fileSet.Add(name, content, FileVirtual)
}

// Get returns the file metadata for the given ID.
func (fileSet *FileSet) Get(id FileID) *File {
	return &fileSet.files[id]
}

// GetByPath returns the *File for a path, if it was loaded into this FileSet.
func (fileSet *FileSet) GetByPath(path string) (*File, bool) {
	if id, ok := fileSet.index[normalizePath(path)]; ok {
		return &fileSet.files[id], true
	}
	return nil, false
}

// Len returns the number of files in the set.
func (fileSet *FileSet) Len() int {
	return len(fileSet.files)
}

// Resolve maps a span to its start and end line/column positions.
func (fileSet *FileSet) Resolve(sp Span) (start, end LineCol) {
	file := fileSet.Get(sp.File)
	return toLineCol(file.LineIdx, sp.Start), toLineCol(file.LineIdx, sp.End)
}

// Position maps a single byte offset in a file to a line/column position.
func (fileSet *FileSet) Position(id FileID, off uint32) LineCol {
	return toLineCol(fileSet.Get(id).LineIdx, off)
}

// Line returns the raw text of the 1-based line number in the given file,
// without the trailing newline.
func (fileSet *FileSet) Line(id FileID, line uint32) string {
	file := fileSet.Get(id)
	if line == 0 {
		return ""
	}
	start := uint32(0)
	if line-1 > 0 {
		idx := int(line) - 2
		if idx >= len(file.LineIdx) {
			return ""
		}
		start = file.LineIdx[idx] + 1
	}
	end := uint32(len(file.Content))
	if int(line)-1 < len(file.LineIdx) {
		end = file.LineIdx[line-1]
	}
	if start > end {
		return ""
	}
	return string(file.Content[start:end])
}

func normalizePath(path string) string {
	return filepath.ToSlash(filepath.Clean(path))
}
