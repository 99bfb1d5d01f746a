package port

// PairLocator находит парный NIR-снимок для VIS-снимка.
type PairLocator interface {
	// FindNIR возвращает путь NIR-снимка той же съёмки.
	// Если пары нет — entity.ErrNIRNotFound.
	FindNIR(visPath string) (string, error)
}
