// Package devserver serves a built project over HTTP and rebuilds it when
// source files change. Watching is a polling mtime scan, which keeps the
// server portable and dependency-free on the OS side.
package devserver

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"net"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	"golang.org/x/sync/errgroup"

	"lumina/internal/driver"
)

// Options configures a dev server run.
type Options struct {
	// Addr is the listen address, e.g. "127.0.0.1:3000".
	Addr string
	// SrcDir holds the .lum sources to watch and rebuild.
	SrcDir string
	// OutDir is both the build target and the HTTP document root.
	OutDir string
	// Interval between watch scans. Zero means one second.
	Interval time.Duration
	Build    driver.BuildOptions
	// Logf receives server log lines. Nil means log.Printf.
	Logf func(format string, args ...any)
}

// Server couples the file watcher with the static file server.
type Server struct {
	opts Options
	logf func(format string, args ...any)
}

// New validates opts and returns a runnable server.
func New(opts Options) (*Server, error) {
	if opts.SrcDir == "" {
		return nil, errors.New("devserver: source dir must be set")
	}
	if opts.OutDir == "" {
		return nil, errors.New("devserver: output dir must be set")
	}
	if opts.Addr == "" {
		opts.Addr = "127.0.0.1:3000"
	}
	if opts.Interval <= 0 {
		opts.Interval = time.Second
	}
	opts.Build.OutDir = opts.OutDir
	logf := opts.Logf
	if logf == nil {
		logf = log.Printf
	}
	return &Server{opts: opts, logf: logf}, nil
}

// Run builds once, then serves OutDir and rebuilds on changes until ctx is
// cancelled. Build diagnostics are logged, they never stop the server.
func (s *Server) Run(ctx context.Context) error {
	s.rebuild(ctx)

	ln, err := net.Listen("tcp", s.opts.Addr)
	if err != nil {
		return err
	}
	s.logf("serving %s on http://%s", s.opts.OutDir, ln.Addr())

	srv := &http.Server{Handler: s.handler()}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		s.watch(ctx)
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if err := g.Wait(); err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	return nil
}

func (s *Server) handler() http.Handler {
	files := http.FileServer(http.Dir(s.opts.OutDir))
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Cache-Control", "no-store")
		files.ServeHTTP(w, r)
	})
}

// watch polls source mtimes and rebuilds when the snapshot changes.
func (s *Server) watch(ctx context.Context) {
	ticker := time.NewTicker(s.opts.Interval)
	defer ticker.Stop()

	last, _ := Snapshot(s.opts.SrcDir)
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			next, err := Snapshot(s.opts.SrcDir)
			if err != nil {
				s.logf("watch: %v", err)
				continue
			}
			if !next.Equal(last) {
				last = next
				s.rebuild(ctx)
			}
		}
	}
}

func (s *Server) rebuild(ctx context.Context) {
	start := time.Now()
	res, err := driver.CompileDir(ctx, s.opts.SrcDir, s.opts.Build)
	if err != nil {
		s.logf("build failed: %v", err)
		return
	}
	if res.Errors() {
		for _, fr := range res.Results {
			for _, d := range fr.Bag.Items() {
				s.logf("%s: %s: %s", fr.Path, d.Code.ID(), d.Message)
			}
		}
		s.logf("build finished with errors in %s", time.Since(start).Round(time.Millisecond))
		return
	}
	s.logf("rebuilt %d files in %s", len(res.Files), time.Since(start).Round(time.Millisecond))
}

// FileStamp is one file's identity in a watch snapshot.
type FileStamp struct {
	Path    string
	ModTime time.Time
	Size    int64
}

// WatchSnapshot is an ordered list of source file stamps.
type WatchSnapshot []FileStamp

// Snapshot stamps every .lum file under dir, recursively.
func Snapshot(dir string) (WatchSnapshot, error) {
	var snap WatchSnapshot
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			// A file deleted mid-walk should not kill the watcher.
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".lum") {
			return nil
		}
		info, err := d.Info()
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		snap = append(snap, FileStamp{Path: path, ModTime: info.ModTime(), Size: info.Size()})
		return nil
	})
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, err
	}
	return snap, nil
}

// Equal reports whether two snapshots describe the same file set with the
// same stamps. WalkDir yields lexical order, so index-wise compare is
// enough.
func (s WatchSnapshot) Equal(other WatchSnapshot) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}
