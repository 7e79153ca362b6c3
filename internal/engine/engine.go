package engine

import (
	"errors"
	"fmt"
	"image"
	"time"

	xdraw "golang.org/x/image/draw"
	"golang.org/x/sync/errgroup"

	"github.com/ivlev/text2gif/internal/assembler"
	"github.com/ivlev/text2gif/internal/compositor"
	"github.com/ivlev/text2gif/internal/config"
	"github.com/ivlev/text2gif/internal/glyph"
	"github.com/ivlev/text2gif/internal/phase"
	"github.com/ivlev/text2gif/internal/system"
)

// Project связывает конфигурацию, источник кадров и сборщик анимации в
// один запуск: рендеринг всех кадров, даунскейл, квантование и запись
// готового GIF.
type Project struct {
	Config *config.Config
	Source compositor.FrameSource
}

func NewProject(cfg *config.Config, src compositor.FrameSource) *Project {
	return &Project{Config: cfg, Source: src}
}

// Run генерирует анимацию целиком и возвращает путь к готовому файлу.
// Кадры рендерятся параллельно, но складываются строго по индексу, так
// что результат побайтово детерминирован.
func (p *Project) Run() (string, error) {
	startTime := time.Now()

	if err := p.Config.Validate(); err != nil {
		return "", err
	}

	total := p.Source.Frames()
	frames := make([]*image.RGBA, total)

	workers := p.Config.Workers
	if workers < 1 {
		workers = 1
	}

	renderStart := time.Now()
	var g errgroup.Group
	g.SetLimit(workers)
	for i := 0; i < total; i++ {
		i := i
		g.Go(func() error {
			img, err := p.Source.Render(i)
			if err != nil {
				return fmt.Errorf("кадр %d: %w", i, err)
			}
			frames[i] = p.toOutput(img)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return "", err
	}
	renderTime := time.Since(renderStart)

	encodeStart := time.Now()
	seq := assembler.New(p.Config.Background, p.Config.Foreground, p.Config.Loop)
	for _, fr := range frames {
		if err := seq.Add(fr, p.Config.FrameDelay); err != nil {
			return "", err
		}
		system.PutCanvas(fr)
	}
	if err := seq.WriteFile(p.Config.OutputPath); err != nil {
		return "", err
	}
	encodeTime := time.Since(encodeStart)

	if p.Config.TimelineOutput != "" {
		if src, ok := p.Source.(interface{ Timeline() phase.Timeline }); ok {
			if err := phase.WriteTimeline(src.Timeline(), p.Config.TimelineOutput); err != nil {
				fmt.Printf("[!] Не удалось сохранить таймлайн: %v\n", err)
			} else {
				fmt.Printf("[*] Таймлайн сохранен: %s\n", p.Config.TimelineOutput)
			}
		}
	}

	fmt.Printf("[*] Кадров: %d | Длительность: %.1fs | Холст: %dx%d\n",
		seq.Len(), float64(seq.TotalDurationMS())/1000.0, p.Config.Width, p.Config.Height)

	if p.Config.ShowStats {
		totalTime := time.Since(startTime)
		fmt.Printf(
			"--- [PERFORMANCE REPORT] ---\n"+
				"Total Time: %.2fs\n"+
				"Rendering: %.2fs\n"+
				"Encoding: %.2fs\n"+
				"Effective FPS: %.2f\n"+
				"Memory: %s\n"+
				"----------------------------\n",
			totalTime.Seconds(), renderTime.Seconds(), encodeTime.Seconds(),
			float64(total)/totalTime.Seconds(), system.MemoryStats(),
		)
	}

	return p.Config.OutputPath, nil
}

// toOutput масштабирует кадр из render-разрешения в выходное. Буфер
// render-разрешения сразу возвращается в пул.
func (p *Project) toOutput(img *image.RGBA) *image.RGBA {
	if p.Config.RenderScale == 1 {
		return img
	}
	dst := system.GetCanvas(image.Rect(0, 0, p.Config.Width, p.Config.Height))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, img.Bounds(), xdraw.Src, nil)
	system.PutCanvas(img)
	return dst
}

// RunLetterBuild — точка входа варианта с постепенным проявлением букв
// из ASCII-шума.
func RunLetterBuild(cfg *config.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	fonts, err := loadFonts(cfg)
	if err != nil {
		return "", err
	}
	src, err := compositor.NewLetterBuild(cfg, fonts)
	if err != nil {
		return "", err
	}
	return NewProject(cfg, src).Run()
}

// RunTypewriter — точка входа варианта «печатная машинка».
func RunTypewriter(cfg *config.Config) (string, error) {
	if err := cfg.Validate(); err != nil {
		return "", err
	}
	fonts, err := loadFonts(cfg)
	if err != nil {
		return "", err
	}
	return NewProject(cfg, compositor.NewTypewriter(cfg, fonts)).Run()
}

// loadFonts подготавливает три шрифта запуска. Отсутствующий файл шрифта
// не считается ошибкой: подставляется встроенный, о чем сообщается в лог.
func loadFonts(cfg *config.Config) (*glyph.Source, error) {
	load := func(path string, role glyph.Role, size float64) (*glyph.Face, error) {
		face, err := glyph.Resolve(path, role, size)
		if err != nil {
			if !errors.Is(err, glyph.ErrFontUnavailable) {
				return nil, err
			}
			fmt.Printf("[!] Шрифт %s недоступен, используется встроенный\n", path)
		}
		return face, nil
	}

	primary, err := load(cfg.FontPath, glyph.RolePrimary, cfg.FontSize)
	if err != nil {
		return nil, err
	}
	noiseFace, err := load(cfg.NoiseFontPath, glyph.RoleNoise, cfg.NoiseFontSize)
	if err != nil {
		return nil, err
	}
	caption, err := load(cfg.CaptionFontPath, glyph.RoleCaption, cfg.CaptionFontSize)
	if err != nil {
		return nil, err
	}

	return &glyph.Source{Primary: primary, Noise: noiseFace, Caption: caption}, nil
}
