package ocr

import (
	"log/slog"
	"slices"
	"strings"
	"sync"
)

// Cache hands out one Extractor per language set, built lazily on first use
// and shared read-only afterwards. Concurrent first requests for the same
// language set get the same handle.
type Cache struct {
	cfg    Config
	logger *slog.Logger

	mu      sync.Mutex
	readers map[string]*Extractor
}

func NewCache(cfg Config, logger *slog.Logger) *Cache {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cache{
		cfg:     cfg,
		logger:  logger,
		readers: make(map[string]*Extractor),
	}
}

// Get returns the extractor for the given language set, initializing it if
// this is the first request for that set.
func (c *Cache) Get(languages []string) *Extractor {
	key, langs := cacheKey(languages)

	c.mu.Lock()
	defer c.mu.Unlock()
	if e, ok := c.readers[key]; ok {
		return e
	}

	c.logger.Info("ocr.reader.init", "languages", key)
	cfg := c.cfg
	cfg.Languages = langs
	e := NewExtractor(cfg, c.logger)
	c.readers[key] = e
	return e
}

// cacheKey canonicalizes the language set so {"eng","deu"} and {"deu","eng"}
// share one reader.
func cacheKey(languages []string) (string, []string) {
	if len(languages) == 0 {
		languages = []string{"eng"}
	}
	langs := slices.Clone(languages)
	slices.Sort(langs)
	return strings.Join(langs, "+"), langs
}
