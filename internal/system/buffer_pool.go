package system

import (
	"image"
	"sync"
)

// CanvasPool переиспользует буферы *image.RGBA между кадрами, чтобы
// снизить нагрузку на GC при параллельном рендеринге длинных анимаций.
// Буферы группируются по размеру прямоугольника.
type CanvasPool struct {
	pools map[string]*sync.Pool
	mu    sync.RWMutex
}

var globalPool = &CanvasPool{
	pools: make(map[string]*sync.Pool),
}

// GetCanvas возвращает буфер нужного размера из пула или создает новый.
// Содержимое не обнуляется: вызывающая сторона обязана полностью
// перезаписать буфер (заливка фоном это гарантирует).
func GetCanvas(rect image.Rectangle) *image.RGBA {
	return globalPool.Get(rect)
}

// PutCanvas возвращает буфер в пул после того, как его пиксели
// смасштабированы в выходной кадр.
func PutCanvas(img *image.RGBA) {
	globalPool.Put(img)
}

func (p *CanvasPool) Get(rect image.Rectangle) *image.RGBA {
	key := rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if !exists {
		p.mu.Lock()
		// Double check
		pool, exists = p.pools[key]
		if !exists {
			pool = &sync.Pool{
				New: func() interface{} {
					return image.NewRGBA(rect)
				},
			}
			p.pools[key] = pool
		}
		p.mu.Unlock()
	}

	return pool.Get().(*image.RGBA)
}

func (p *CanvasPool) Put(img *image.RGBA) {
	if img == nil {
		return
	}
	key := img.Rect.String()
	p.mu.RLock()
	pool, exists := p.pools[key]
	p.mu.RUnlock()

	if exists {
		pool.Put(img)
	}
}
