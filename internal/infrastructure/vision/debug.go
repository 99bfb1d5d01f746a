//go:build gocv
// +build gocv

package vision

import (
	"fmt"
	"log"
	"path/filepath"
	"sync"

	"gocv.io/x/gocv"
)

// DebugSink пишет промежуточные маски нумерованными PNG-файлами.
// Счётчик у каждого экземпляра свой, глобального состояния нет.
type DebugSink struct {
	dir string
	mu  sync.Mutex
	seq int
}

// newDebugSink создаёт сток отладочных изображений.
// Пустой dir отключает запись полностью.
func newDebugSink(dir string) *DebugSink {
	return &DebugSink{dir: dir}
}

// write сохраняет изображение под очередным порядковым номером.
func (d *DebugSink) write(name string, img gocv.Mat) {
	if d == nil || d.dir == "" {
		return
	}

	d.mu.Lock()
	d.seq++
	seq := d.seq
	d.mu.Unlock()

	path := filepath.Join(d.dir, fmt.Sprintf("%d_%s.png", seq, name))
	if ok := gocv.IMWrite(path, img); !ok {
		log.Printf("debug image %s: запись не удалась", path)
	}
}
