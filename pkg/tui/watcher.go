package tui

import (
	"os"
	"path/filepath"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/stefanpenner/lodestar/pkg/logging"
)

const watchDebounce = 200 * time.Millisecond

// StartWatcher watches the goals directory and every goal directory below it,
// calling send with a FileChangedMsg once changes to goal files settle.
// Pass program.Send for a running program.
func StartWatcher(root string, send func(tea.Msg), log *logging.Logger) (func(), error) {
	if log == nil {
		log = logging.NopLogger()
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	err = filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			// skip .git and friends
			if strings.HasPrefix(d.Name(), ".") && path != root {
				return filepath.SkipDir
			}
			return watcher.Add(path)
		}
		return nil
	})
	if err != nil {
		watcher.Close()
		return nil, err
	}

	done := make(chan struct{})

	go func() {
		var debounce *time.Timer
		notify := func() {
			if debounce != nil {
				debounce.Stop()
			}
			debounce = time.AfterFunc(watchDebounce, func() {
				send(FileChangedMsg{})
			})
		}

		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}

				// a new goal directory: watch it and reload, since goal.md may
				// land before the watch does
				if event.Op&fsnotify.Create != 0 {
					if info, err := os.Stat(event.Name); err == nil && info.IsDir() {
						if strings.HasPrefix(info.Name(), ".") {
							continue
						}
						if err := watcher.Add(event.Name); err != nil {
							log.Warn("watching goal directory", "dir", event.Name, "error", err)
						}
						notify()
						continue
					}
				}

				if filepath.Ext(event.Name) != ".md" && event.Op&fsnotify.Remove == 0 {
					continue
				}
				log.Debug("goal file changed", "path", event.Name, "op", event.Op.String())
				notify()

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				log.Warn("file watcher", "error", err)

			case <-done:
				if debounce != nil {
					debounce.Stop()
				}
				return
			}
		}
	}()

	cleanup := func() {
		close(done)
		watcher.Close()
	}

	return cleanup, nil
}
