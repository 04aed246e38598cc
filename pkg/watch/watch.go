// Package watch recompiles source files as they change. Every source file
// under the watched directory is compiled to a sibling .json file holding
// its ESTree program.
package watch

import (
	"context"
	"crypto/sha3"
	"errors"
	"io/fs"
	"log"
	"os"
	"path/filepath"
	"time"

	"github.com/syncthing/notify"

	"solo/pkg/compiler"
	"solo/pkg/config"
	"solo/pkg/estree"
	"solo/pkg/utils"
)

// Debounce is how long the tree must stay quiet before a rebuild starts.
const Debounce = 100 * time.Millisecond

type Watcher struct {
	dir    string
	cfg    config.Config
	logger *log.Logger

	// digests holds the SHA3-256 of each file as last compiled.
	digests map[string][32]byte
}

// New returns a watcher for the tree rooted at dir. A nil logger means
// log.Default().
func New(dir string, cfg config.Config, logger *log.Logger) *Watcher {
	if logger == nil {
		logger = log.Default()
	}
	return &Watcher{
		dir:     dir,
		cfg:     cfg,
		logger:  logger,
		digests: make(map[string][32]byte),
	}
}

// Run builds the tree once, then rebuilds it after every burst of file
// events until ctx is done.
func (w *Watcher) Run(ctx context.Context) error {
	if _, err := w.Scan(); err != nil {
		return err
	}

	// Make the channel buffered to ensure no event is dropped. Notify will drop
	// an event if the receiver is not able to keep up the sending pace.
	c := make(chan notify.EventInfo, 1)
	if err := notify.Watch(filepath.Join(w.dir, "..."), c, notify.All); err != nil {
		return err
	}
	defer notify.Stop(c)
	w.logger.Printf("watching %s for changes", w.dir)

	var timer *time.Timer
	timeout := func() <-chan time.Time {
		if timer != nil {
			return timer.C
		}
		// nil blocks forever
		return nil
	}
	for {
		select {
		case <-ctx.Done():
			if timer != nil {
				timer.Stop()
			}
			return nil
		case <-c:
			if timer != nil {
				timer.Stop()
			}
			timer = time.NewTimer(Debounce)
		case <-timeout():
			timer = nil
			if _, err := w.Scan(); err != nil {
				w.logger.Printf("scan failed: %v", err)
			}
		}
	}
}

// Scan compiles every source file whose content changed since it was last
// compiled and reports how many were compiled. A file that fails to compile
// is logged and skipped; the error return is for walk failures only.
func (w *Watcher) Scan() (int, error) {
	seen := make(map[string]bool)
	compiled := 0
	err := filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return nil
			}
			return err
		}
		if d.IsDir() || !utils.HasExtension(path, w.cfg.Extension) {
			return nil
		}
		seen[path] = true

		src, err := os.ReadFile(path)
		if err != nil {
			w.logger.Printf("%s: %v", path, err)
			return nil
		}
		sum := sha3.Sum256(src)
		if old, ok := w.digests[path]; ok && old == sum {
			return nil
		}
		w.digests[path] = sum

		out := utils.DefaultOutputPath(path)
		if err := w.build(path, out, src); err != nil {
			w.logger.Printf("%v", err)
			return nil
		}
		compiled++
		w.logger.Printf("compiled %s -> %s", path, out)
		return nil
	})

	for path := range w.digests {
		if !seen[path] {
			delete(w.digests, path)
		}
	}
	return compiled, err
}

func (w *Watcher) build(path, out string, src []byte) error {
	prog, err := compiler.Compile(string(src), path, w.cfg.Options())
	if err != nil {
		return err
	}
	data, err := estree.Encode(prog, w.cfg.Indent)
	if err != nil {
		return err
	}
	return os.WriteFile(out, data, 0o644)
}
