package catalog

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"sync"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"fairhuur/models"
	"fairhuur/services"
	"fairhuur/storage"
	"fairhuur/utils"
)

// ErrNotLoaded is returned until the first successful Load.
var ErrNotLoaded = errors.New("catalog: no listings loaded")

const defaultCacheSize = 256

// Catalog holds one loaded listing collection and answers queries over it.
// A Load swaps in a new immutable snapshot; readers never see a partial one.
type Catalog struct {
	source    storage.ListingSource
	engine    *services.QueryEngine
	logger    *utils.Logger
	cacheSize int

	mu   sync.RWMutex
	snap *snapshot
}

type snapshot struct {
	listings []*models.Listing
	byID     map[string]*models.Listing
	stats    models.Stats
	options  models.FilterOptions
	loadedAt time.Time
	queries  *lru.Cache[models.FilterCriteria, []*models.Listing]
}

// New creates an empty Catalog. cacheSize bounds the number of memoised
// query results per snapshot; zero or less selects a default.
func New(source storage.ListingSource, engine *services.QueryEngine, logger *utils.Logger, cacheSize int) *Catalog {
	if cacheSize <= 0 {
		cacheSize = defaultCacheSize
	}
	return &Catalog{source: source, engine: engine, logger: logger, cacheSize: cacheSize}
}

// Load fetches the collection and replaces the current snapshot. When it
// fails the previous snapshot, if any, stays in place.
func (c *Catalog) Load(ctx context.Context) error {
	start := time.Now()
	listings, err := c.source.Load(ctx)
	if err != nil {
		return fmt.Errorf("catalog: load: %w", err)
	}

	snap, err := c.build(listings, start)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.snap = snap
	c.mu.Unlock()

	c.logger.Info("[catalog] Loaded %d listings in %v (today: %d)",
		len(snap.listings), time.Since(start).Round(time.Millisecond), snap.stats.TodayCount)
	return nil
}

func (c *Catalog) build(listings []*models.Listing, loadedAt time.Time) (*snapshot, error) {
	sorted := services.SortNewest(slices.DeleteFunc(slices.Clone(listings), func(l *models.Listing) bool {
		return l == nil
	}))

	queries, err := lru.New[models.FilterCriteria, []*models.Listing](c.cacheSize)
	if err != nil {
		return nil, fmt.Errorf("catalog: query cache: %w", err)
	}

	byID := make(map[string]*models.Listing, len(sorted))
	for _, l := range sorted {
		if l.ID == "" {
			continue
		}
		if _, dup := byID[string(l.ID)]; !dup {
			byID[string(l.ID)] = l
		}
	}

	return &snapshot{
		listings: sorted,
		byID:     byID,
		stats:    c.engine.ComputeStats(sorted),
		options:  filterOptions(sorted),
		loadedAt: loadedAt,
		queries:  queries,
	}, nil
}

func (c *Catalog) current() (*snapshot, error) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.snap == nil {
		return nil, ErrNotLoaded
	}
	return c.snap, nil
}

// Loaded reports whether a collection is available.
func (c *Catalog) Loaded() bool {
	_, err := c.current()
	return err == nil
}

// LoadedAt is the start time of the load that produced the current snapshot.
func (c *Catalog) LoadedAt() time.Time {
	snap, err := c.current()
	if err != nil {
		return time.Time{}
	}
	return snap.loadedAt
}

// Listings returns the full active collection, newest first.
func (c *Catalog) Listings() ([]*models.Listing, error) {
	snap, err := c.current()
	if err != nil {
		return nil, err
	}
	return slices.Clone(snap.listings), nil
}

// Query returns the listings matching criteria. Results are memoised per
// snapshot under the canonical form of the criteria.
func (c *Catalog) Query(criteria models.FilterCriteria) ([]*models.Listing, error) {
	snap, err := c.current()
	if err != nil {
		return nil, err
	}

	key := criteria.Canonical()
	if hit, ok := snap.queries.Get(key); ok {
		return slices.Clone(hit), nil
	}

	result := c.engine.FilterAndSort(snap.listings, key)
	snap.queries.Add(key, result)
	return slices.Clone(result), nil
}

// Stats returns the figures computed when the snapshot was loaded.
func (c *Catalog) Stats() (models.Stats, error) {
	snap, err := c.current()
	if err != nil {
		return models.Stats{}, err
	}
	return snap.stats, nil
}

// Lookup finds a listing by id. A miss is reported through the bool.
func (c *Catalog) Lookup(id string) (*models.Listing, bool) {
	snap, err := c.current()
	if err != nil {
		return nil, false
	}
	l, ok := snap.byID[id]
	return l, ok
}

// FilterOptions lists the cities, types and price range present.
func (c *Catalog) FilterOptions() (models.FilterOptions, error) {
	snap, err := c.current()
	if err != nil {
		return models.FilterOptions{}, err
	}
	return snap.options, nil
}

// Run reloads the catalog every interval until ctx is done. Failed reloads
// are logged and the previous snapshot keeps serving.
func (c *Catalog) Run(ctx context.Context, interval time.Duration) {
	if interval <= 0 {
		return
	}
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if err := c.Load(ctx); err != nil && ctx.Err() == nil {
				c.logger.Error("[catalog] Refresh failed: %v", err)
			}
		}
	}
}

func filterOptions(listings []*models.Listing) models.FilterOptions {
	opts := models.FilterOptions{
		Cities: distinct(listings, func(l *models.Listing) models.Text { return l.City }),
		Types:  distinct(listings, func(l *models.Listing) models.Text { return l.Type }),
	}

	for _, l := range listings {
		p, ok := services.CoerceNumber(l.Price)
		if !ok || p <= 0 {
			continue
		}
		if opts.MinPrice == nil || p < *opts.MinPrice {
			v := p
			opts.MinPrice = &v
		}
		if opts.MaxPrice == nil || p > *opts.MaxPrice {
			v := p
			opts.MaxPrice = &v
		}
	}
	return opts
}

// distinct keeps the first spelling of each normalised value, sorted the
// way a Dutch reader expects.
func distinct(listings []*models.Listing, field func(*models.Listing) models.Text) []string {
	seen := utils.NewKeySet()
	out := make([]string, 0)
	for _, l := range listings {
		key := services.NormalizeText(field(l))
		if key == "" || !seen.Add(key) {
			continue
		}
		out = append(out, strings.TrimSpace(string(field(l))))
	}
	collate.New(language.Dutch, collate.IgnoreCase).SortStrings(out)
	return out
}
