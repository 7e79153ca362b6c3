package main

import (
	"flag"
	"fmt"
	"log"
	"os"
	"runtime"
	"strings"

	"github.com/ivlev/text2gif/internal/config"
	"github.com/ivlev/text2gif/internal/engine"
	"github.com/ivlev/text2gif/internal/system"
)

func main() {
	system.InitResourceLimits()

	textPtr := flag.String("text", "", "Текст анимации (обязательно)")
	captionPtr := flag.String("caption", "", "Подпись внизу кадра (только для варианта build)")
	variantPtr := flag.String("variant", "build", "Вариант анимации: build, typewriter, both")
	widthPtr := flag.Int("width", 0, "Ширина холста (0 = по умолчанию варианта)")
	heightPtr := flag.Int("height", 0, "Высота холста (0 = по умолчанию варианта)")
	framesPtr := flag.Int("frames", 0, "Количество кадров (только build, 0 = 200)")
	delayPtr := flag.Int("delay", 0, "Длительность кадра в мс (0 = по умолчанию варианта)")
	bgPtr := flag.String("bg", "", "Цвет фона #rrggbb")
	fgPtr := flag.String("fg", "", "Цвет текста #rrggbb")
	fontPtr := flag.String("font", "", "Путь к TTF-шрифту (пусто = DejaVu, затем встроенный)")
	fontDirPtr := flag.String("font-dir", "", "Папка со шрифтами: берется самый свежий TTF")
	outputPtr := flag.String("output", "", "Путь к GIF (пусто = output/<вариант>.gif)")
	presetPtr := flag.String("preset", "", "YAML-пресет с настройками")
	workersPtr := flag.Int("workers", runtime.NumCPU(), "Потоки рендеринга")
	loopPtr := flag.String("loop", "", "Зацикливание: once, forever (пусто = по умолчанию варианта)")
	qrPtr := flag.String("qr", "", "URL для QR-бейджа в финальных кадрах")
	statsPtr := flag.Bool("stats", false, "Показать отчет о производительности")
	timelinePtr := flag.String("timeline", "", "Сохранить рассчитанный таймлайн фаз в YAML")

	flag.Parse()

	os.MkdirAll("output", 0755)

	var variants []string
	switch strings.ToLower(*variantPtr) {
	case "build":
		variants = []string{"build"}
	case "typewriter":
		variants = []string{"typewriter"}
	case "both":
		variants = []string{"build", "typewriter"}
	default:
		log.Fatalf("[-] Неизвестный вариант: %s (ожидается build, typewriter или both)", *variantPtr)
	}

	for _, variant := range variants {
		var cfg *config.Config
		if variant == "typewriter" {
			cfg = config.DefaultTypewriter()
		} else {
			cfg = config.Default()
		}

		if *presetPtr != "" {
			if err := config.ApplyPreset(cfg, *presetPtr); err != nil {
				log.Fatalf("[-] Ошибка пресета: %v", err)
			}
			fmt.Printf("[*] Используется пресет: %s\n", *presetPtr)
		}

		if *textPtr != "" {
			cfg.Text = *textPtr
		}
		if *captionPtr != "" {
			cfg.Caption = *captionPtr
		}
		if *widthPtr > 0 {
			cfg.Width = *widthPtr
		}
		if *heightPtr > 0 {
			cfg.Height = *heightPtr
		}
		if *framesPtr > 0 {
			cfg.TotalFrames = *framesPtr
		}
		if *delayPtr > 0 {
			cfg.FrameDelay = *delayPtr
		}
		if *bgPtr != "" {
			c, err := config.ParseHexColor(*bgPtr)
			if err != nil {
				log.Fatalf("[-] Ошибка: %v", err)
			}
			cfg.Background = c
		}
		if *fgPtr != "" {
			c, err := config.ParseHexColor(*fgPtr)
			if err != nil {
				log.Fatalf("[-] Ошибка: %v", err)
			}
			cfg.Foreground = c
		}
		// При генерации обоих вариантов каждый пишет в свой путь по умолчанию.
		if *outputPtr != "" && len(variants) == 1 {
			cfg.OutputPath = *outputPtr
		}
		switch strings.ToLower(*loopPtr) {
		case "once":
			cfg.Loop = config.LoopOnce
		case "forever":
			cfg.Loop = config.LoopForever
		case "":
		default:
			log.Fatalf("[-] Неизвестный режим зацикливания: %s", *loopPtr)
		}

		cfg.Workers = *workersPtr
		cfg.QRContent = *qrPtr
		cfg.ShowStats = *statsPtr
		cfg.TimelineOutput = *timelinePtr

		if *fontPtr != "" {
			cfg.FontPath = *fontPtr
		} else if *fontDirPtr != "" {
			latest, err := system.FindFont(*fontDirPtr)
			if err != nil {
				log.Fatalf("[-] Ошибка: %v", err)
			}
			cfg.FontPath = latest
			fmt.Printf("[*] Выбран шрифт: %s\n", latest)
		} else {
			// Путь к DejaVu различается между дистрибутивами.
			cfg.FontPath = system.ResolveFontPath(cfg.FontPath,
				"/usr/share/fonts/TTF/DejaVuSansMono-Bold.ttf")
			cfg.NoiseFontPath = system.ResolveFontPath(cfg.NoiseFontPath,
				"/usr/share/fonts/TTF/DejaVuSansMono.ttf")
			cfg.CaptionFontPath = system.ResolveFontPath(cfg.CaptionFontPath,
				"/usr/share/fonts/TTF/DejaVuSans.ttf")
		}

		fmt.Printf("--- [TEXT2GIF: %s] ---\n", strings.ToUpper(variant))
		fmt.Printf("[*] Текст: %q | Холст: %dx%d\n", cfg.Text, cfg.Width, cfg.Height)

		var path string
		var err error
		if variant == "typewriter" {
			path, err = engine.RunTypewriter(cfg)
		} else {
			path, err = engine.RunLetterBuild(cfg)
		}
		if err != nil {
			log.Fatalf("[-] Ошибка генерации: %v", err)
		}

		fmt.Printf("[+++] Успех! Результат: %s\n", path)
	}
}
