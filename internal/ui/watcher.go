package ui

import (
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"golang.org/x/time/rate"
)

// Watcher notifies the picker when the session archive changes on disk, so
// an archive written by a concurrently running Codex shows up without
// restarting. Notifications are rate-limited and coalesced: the channel is
// buffered with size 1 and sends never block.
type Watcher struct {
	fsw       *fsnotify.Watcher
	limiter   *rate.Limiter
	changeCh  chan struct{}
	closeCh   chan struct{}
	closeOnce sync.Once
}

// NewWatcher watches the date-partitioned archive under root. Year, month
// and day directories are added up front; directories created later (a new
// day rolling over) are picked up from their create events. A missing root
// is not an error — the watcher simply stays quiet.
func NewWatcher(root string) (*Watcher, error) {
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}

	w := &Watcher{
		fsw:      fsw,
		limiter:  rate.NewLimiter(rate.Every(2*time.Second), 1),
		changeCh: make(chan struct{}, 1),
		closeCh:  make(chan struct{}),
	}

	if _, err := os.Stat(root); err == nil {
		w.addTree(root)
	}

	go w.loop()
	return w, nil
}

// addTree watches root and its date subdirectories, three levels deep.
func (w *Watcher) addTree(root string) {
	_ = w.fsw.Add(root)
	years, _ := os.ReadDir(root)
	for _, y := range years {
		if !y.IsDir() {
			continue
		}
		yearDir := filepath.Join(root, y.Name())
		_ = w.fsw.Add(yearDir)
		months, _ := os.ReadDir(yearDir)
		for _, mo := range months {
			if !mo.IsDir() {
				continue
			}
			monthDir := filepath.Join(yearDir, mo.Name())
			_ = w.fsw.Add(monthDir)
			days, _ := os.ReadDir(monthDir)
			for _, d := range days {
				if d.IsDir() {
					_ = w.fsw.Add(filepath.Join(monthDir, d.Name()))
				}
			}
		}
	}
}

func (w *Watcher) loop() {
	for {
		select {
		case <-w.closeCh:
			return
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if ev.Op.Has(fsnotify.Create) {
				if info, err := os.Stat(ev.Name); err == nil && info.IsDir() {
					_ = w.fsw.Add(ev.Name)
				}
			}
			if !w.limiter.Allow() {
				continue
			}
			select {
			case w.changeCh <- struct{}{}:
			default:
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			if err != nil {
				uiLog.Debug("watch_error", "error", err.Error())
			}
		}
	}
}

// Changes returns the notification channel.
func (w *Watcher) Changes() <-chan struct{} {
	return w.changeCh
}

// Close stops the watcher. Safe to call more than once.
func (w *Watcher) Close() {
	w.closeOnce.Do(func() {
		close(w.closeCh)
		_ = w.fsw.Close()
	})
}
