package main

import (
	"context"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"phenopipe/config"
	telegram "phenopipe/internal/api"
	"phenopipe/internal/container"
	"phenopipe/internal/domain/port"
	"phenopipe/internal/infrastructure/storage"
	"phenopipe/internal/infrastructure/vision"
)

func main() {
	input := flag.String("i", "", "входной VIS-снимок")
	dir := flag.String("dir", "", "каталог VIS-снимков для пакетной обработки")
	result := flag.String("r", "", "файл результатов VIS")
	coresult := flag.String("r2", "", "файл результатов NIR")
	outdir := flag.String("o", "", "каталог для отладочных изображений")
	debug := flag.Bool("d", false, "писать промежуточные изображения")
	flag.Parse()

	if (*input == "") == (*dir == "") {
		log.Fatal("укажите ровно один из флагов -i или -dir")
	}
	if *result == "" || *coresult == "" {
		log.Fatal("флаги -r и -r2 обязательны")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	debugDir := ""
	if *debug {
		debugDir = *outdir
		if debugDir == "" {
			debugDir = "."
		}
	}

	// Собираем инфраструктуру
	segmenter := vision.NewGoCVSegmenter(debugDir)
	locator := storage.NewNIRLocator()
	results := storage.NewTSVResultRepository()

	var notifier port.Notifier
	if cfg.TelegramToken != "" && cfg.TelegramChatID != 0 {
		notifier, err = telegram.NewNotifier(cfg.TelegramToken, cfg.TelegramChatID)
		if err != nil {
			log.Fatalf("Failed to create notifier: %v", err)
		}
	}

	// Собираем сервисы приложения
	c := container.New(segmenter, locator, results, notifier, cfg.Workers)

	paths := []string{*input}
	if *dir != "" {
		paths, err = listVISImages(*dir)
		if err != nil {
			log.Fatalf("Failed to list images: %v", err)
		}
		if len(paths) == 0 {
			log.Fatalf("в каталоге %s нет VIS-снимков", *dir)
		}
	}

	summary := c.BatchService.Run(context.Background(), paths, *result, *coresult)
	log.Println(summary.String())
}

// listVISImages возвращает пути VIS-снимков каталога.
func listVISImages(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var paths []string
	for _, e := range entries {
		if e.IsDir() || !strings.Contains(e.Name(), "VIS") {
			continue
		}
		switch strings.ToLower(filepath.Ext(e.Name())) {
		case ".png", ".jpg", ".jpeg", ".tif", ".tiff":
			paths = append(paths, filepath.Join(dir, e.Name()))
		}
	}
	return paths, nil
}
