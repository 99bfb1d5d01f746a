package entity

import "errors"

// ErrNIRNotFound — парный NIR-снимок не найден.
var ErrNIRNotFound = errors.New("парный NIR-снимок не найден")

// MetricBlock — один блок метрик: строка имён полей и строка значений,
// в файл результата записываются двумя tab-разделёнными строками.
type MetricBlock struct {
	Header []string
	Data   []string
}

// PairResult хранит итог обработки одной пары VIS/NIR.
type PairResult struct {
	ImageWidth  int
	ImageHeight int

	// NoPlant — после фильтрации не осталось ни одного контура.
	// Валидное терминальное состояние (пустой горшок или сбой съёмки),
	// строки результата для пары не пишутся.
	NoPlant bool

	VIS []MetricBlock // блоки по VIS-снимку: форма, цвет
	NIR []MetricBlock // блоки по NIR-снимку: интенсивность, форма

	// NIRErr — ошибка переноса маски в NIR-пространство.
	// Локальна для пары: VIS-блоки при этом остаются валидными.
	NIRErr error
}
