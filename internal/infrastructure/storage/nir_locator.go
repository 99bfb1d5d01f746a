package storage

import (
	"os"
	"path/filepath"
	"strings"

	"phenopipe/internal/domain/entity"
	"phenopipe/internal/domain/port"
)

// NIRLocator находит парный NIR-снимок по имени VIS-файла: в одном наборе
// съёмки имена различаются только маркером модальности.
type NIRLocator struct {
	VISMarker string
	NIRMarker string
}

// NewNIRLocator создаёт локатор со стандартными маркерами набора.
func NewNIRLocator() *NIRLocator {
	return &NIRLocator{VISMarker: "VIS", NIRMarker: "NIR"}
}

// FindNIR возвращает путь NIR-снимка рядом с VIS-снимком.
func (l *NIRLocator) FindNIR(visPath string) (string, error) {
	dir, name := filepath.Split(visPath)
	if !strings.Contains(name, l.VISMarker) {
		return "", entity.ErrNIRNotFound
	}

	nirPath := filepath.Join(dir, strings.Replace(name, l.VISMarker, l.NIRMarker, 1))
	if _, err := os.Stat(nirPath); err != nil {
		return "", entity.ErrNIRNotFound
	}
	return nirPath, nil
}

// Проверка реализации интерфейса
var _ port.PairLocator = (*NIRLocator)(nil)
