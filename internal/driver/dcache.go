package driver

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/vmihailenco/msgpack/v5"

	"lumina/internal/codegen"
	"lumina/internal/project"
)

// cacheSchemaVersion is bumped whenever the on-disk payload layout or the
// generated-output contract changes; stale entries are then ignored.
const cacheSchemaVersion uint16 = 1

// DiskCache stores generated output keyed by source content digest, so an
// unchanged file skips the whole pipeline on rebuild.
type DiskCache struct {
	root string
}

// cachePayload is the msgpack envelope written to disk.
type cachePayload struct {
	Schema uint16 `msgpack:"schema"`
	HTML   string `msgpack:"html"`
	JS     string `msgpack:"js"`
	CSS    string `msgpack:"css"`
}

// OpenDiskCache opens (creating if needed) the cache directory for app
// under XDG_CACHE_HOME, falling back to ~/.cache.
func OpenDiskCache(app string) (*DiskCache, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolve cache dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	root := filepath.Join(base, app, "build")
	if err := os.MkdirAll(root, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{root: root}, nil
}

// OpenDiskCacheAt opens a cache rooted at an explicit directory.
func OpenDiskCacheAt(dir string) (*DiskCache, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &DiskCache{root: dir}, nil
}

func (c *DiskCache) pathFor(key project.Digest) string {
	return filepath.Join(c.root, key.Hex()+".mp")
}

// Get loads the cached output for key. The bool result reports whether a
// usable entry exists; a missing file or a schema mismatch is a miss, not
// an error.
func (c *DiskCache) Get(key project.Digest) (codegen.Output, bool, error) {
	data, err := os.ReadFile(c.pathFor(key))
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return codegen.Output{}, false, nil
		}
		return codegen.Output{}, false, err
	}
	var payload cachePayload
	if err := msgpack.Unmarshal(data, &payload); err != nil {
		return codegen.Output{}, false, nil
	}
	if payload.Schema != cacheSchemaVersion {
		return codegen.Output{}, false, nil
	}
	return codegen.Output{HTML: payload.HTML, JS: payload.JS, CSS: payload.CSS}, true, nil
}

// Put stores out under key. The write is atomic: a temp file in the cache
// dir renamed over the target, so readers never see a partial entry.
func (c *DiskCache) Put(key project.Digest, out codegen.Output) error {
	data, err := msgpack.Marshal(cachePayload{
		Schema: cacheSchemaVersion,
		HTML:   out.HTML,
		JS:     out.JS,
		CSS:    out.CSS,
	})
	if err != nil {
		return err
	}

	tmp, err := os.CreateTemp(c.root, "entry-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return err
	}
	return os.Rename(tmpName, c.pathFor(key))
}

// DropAll wipes the cache directory. The directory is renamed aside first
// so a concurrent build cannot repopulate entries mid-delete.
func (c *DiskCache) DropAll() error {
	doomed := c.root + ".trash"
	if err := os.Rename(c.root, doomed); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil
		}
		return err
	}
	if err := os.MkdirAll(c.root, 0o755); err != nil {
		return err
	}
	return os.RemoveAll(doomed)
}
