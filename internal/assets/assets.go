// Package assets decodes overlay artwork off the event loop and caches it.
package assets

import (
	"context"
	"errors"
	"fmt"
	"image"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/Faultbox/merchkit/internal/logger"
	"github.com/Faultbox/merchkit/internal/texture"
)

// ErrNotLoaded is returned for sources that were never requested.
var ErrNotLoaded = errors.New("assets: not loaded")

// Loader resolves a source reference to a decoded image.
type Loader func(ctx context.Context, source string) (image.Image, error)

// Completion reports the end of an asynchronous load.
type Completion struct {
	Source string
	Err    error
}

// Options configures a Library.
type Options struct {
	// Loader defaults to texture.Load.
	Loader Loader

	// KeyOutNavy strips navy backdrops from every decoded image.
	KeyOutNavy bool

	// Parallelism bounds concurrent decodes in Preload. Zero means 4.
	Parallelism int
}

// Library owns decoded overlay images. Image lookups are safe from any
// goroutine; completions are meant to be drained by the event loop.
type Library struct {
	opts  Options
	cache *Cache

	mu      sync.Mutex
	pending map[string]bool
	failed  map[string]error

	done chan Completion
	wg   sync.WaitGroup
}

// NewLibrary creates an empty library.
func NewLibrary(opts Options) *Library {
	if opts.Loader == nil {
		opts.Loader = texture.Load
	}
	if opts.Parallelism <= 0 {
		opts.Parallelism = 4
	}
	return &Library{
		opts:    opts,
		cache:   NewCache(),
		pending: make(map[string]bool),
		failed:  make(map[string]error),
		done:    make(chan Completion, 64),
	}
}

// Image returns the decoded image for source if it is ready.
func (l *Library) Image(source string) (image.Image, bool) {
	return l.cache.Get(source)
}

// Put registers an already decoded image under source.
func (l *Library) Put(source string, img image.Image) {
	l.cache.Set(source, l.prepare(img))
	l.mu.Lock()
	delete(l.failed, source)
	l.mu.Unlock()
}

// Err reports the state of source: nil once decoded, ErrNotLoaded if never
// requested or still pending, or the decode error.
func (l *Library) Err(source string) error {
	if _, ok := l.cache.Get(source); ok {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	if err, ok := l.failed[source]; ok {
		return err
	}
	return ErrNotLoaded
}

// Pending reports whether source is being decoded.
func (l *Library) Pending(source string) bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.pending[source]
}

// Load starts decoding source in the background and returns immediately.
// Sources that are cached or already pending are ignored. The outcome is
// delivered on Completions.
func (l *Library) Load(ctx context.Context, source string) {
	if source == "" {
		return
	}
	l.mu.Lock()
	if _, ok := l.cache.Get(source); ok || l.pending[source] {
		l.mu.Unlock()
		return
	}
	l.pending[source] = true
	delete(l.failed, source)
	l.mu.Unlock()

	l.wg.Add(1)
	go func() {
		defer l.wg.Done()
		err := l.decode(ctx, source)
		select {
		case l.done <- Completion{Source: source, Err: err}:
		case <-ctx.Done():
		}
	}()
}

// Completions delivers finished asynchronous loads.
func (l *Library) Completions() <-chan Completion {
	return l.done
}

// Preload decodes every source concurrently and waits for all of them.
// Failed sources stay unresolved; the first error is returned.
func (l *Library) Preload(ctx context.Context, sources []string) error {
	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(l.opts.Parallelism)

	seen := make(map[string]bool, len(sources))
	for _, src := range sources {
		if src == "" || seen[src] {
			continue
		}
		seen[src] = true
		if _, ok := l.cache.Get(src); ok {
			continue
		}
		g.Go(func() error {
			return l.decode(ctx, src)
		})
	}
	return g.Wait()
}

// Wait blocks until all background loads have finished.
func (l *Library) Wait() {
	l.wg.Wait()
}

// Stats returns cache statistics.
func (l *Library) Stats() (hits, misses int) {
	return l.cache.Stats()
}

func (l *Library) decode(ctx context.Context, source string) error {
	img, err := l.opts.Loader(ctx, source)
	if err != nil {
		err = fmt.Errorf("loading %s: %w", shortSource(source), err)
		l.mu.Lock()
		delete(l.pending, source)
		l.failed[source] = err
		l.mu.Unlock()
		logger.Warn("image asset failed to load", zap.String("source", shortSource(source)), zap.Error(err))
		return err
	}

	prepared := l.prepare(img)

	// Cache before clearing pending so Err never reports ErrNotLoaded
	// for a source that has finished.
	l.mu.Lock()
	l.cache.Set(source, prepared)
	delete(l.pending, source)
	l.mu.Unlock()

	logger.Debug("image asset loaded",
		zap.String("source", shortSource(source)),
		zap.Int("width", img.Bounds().Dx()),
		zap.Int("height", img.Bounds().Dy()))
	return nil
}

func (l *Library) prepare(img image.Image) image.Image {
	if l.opts.KeyOutNavy {
		return texture.KeyOutNavy(img)
	}
	return img
}

// shortSource keeps data URLs out of logs.
func shortSource(s string) string {
	if len(s) > 48 {
		return s[:45] + "..."
	}
	return s
}

// Cache is an in-memory store of decoded images.
type Cache struct {
	data map[string]image.Image
	mu   sync.Mutex

	// Stats
	hits   int
	misses int
}

// NewCache creates a new cache.
func NewCache() *Cache {
	return &Cache{
		data: make(map[string]image.Image),
	}
}

// Get retrieves an item from cache.
func (c *Cache) Get(key string) (image.Image, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	img, ok := c.data[key]
	if ok {
		c.hits++
	} else {
		c.misses++
	}
	return img, ok
}

// Set stores an item in cache.
func (c *Cache) Set(key string, img image.Image) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data[key] = img
}

// Clear clears the cache.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.data = make(map[string]image.Image)
	c.hits = 0
	c.misses = 0
}

// Stats returns cache statistics.
func (c *Cache) Stats() (hits, misses int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses
}
