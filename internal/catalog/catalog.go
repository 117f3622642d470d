package catalog

import (
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/2beens/gymlog/internal/telemetry/metrics"
	"github.com/2beens/gymlog/internal/workout/draft"

	"github.com/coocood/freecache"
	log "github.com/sirupsen/logrus"
)

const (
	DefaultPageSize = 25
	MaxPageSize     = 100

	// freecache rounds smaller sizes up to 512 KiB anyway
	minCacheSizeBytes   = 512 * 1024
	searchCacheTTLSecs  = 5 * 60
	cacheResultHit      = "hit"
	cacheResultMiss     = "miss"
	cacheResultUncached = "uncached"
)

type SearchParams struct {
	Query  string
	Muscle string
	// OnlyIDs, when not nil, limits results to these exercise ids.
	OnlyIDs map[string]bool
	Offset  int
	Limit   int
}

type Page struct {
	Exercises []Exercise `json:"exercises"`
	Total     int        `json:"total"`
	Offset    int        `json:"offset"`
	HasMore   bool       `json:"hasMore"`
}

type Facets struct {
	Muscles    []string `json:"muscles"`
	Categories []string `json:"categories"`
	Equipment  []string `json:"equipment"`
}

// Catalog is immutable after New and safe for concurrent use.
type Catalog struct {
	exercises  []Exercise
	searchText []string
	byID       map[string]int
	facets     Facets

	cache          *freecache.Cache
	metricsManager *metrics.Manager
}

func New(exercises []Exercise, cacheSizeBytes int, metricsManager *metrics.Manager) (*Catalog, error) {
	if err := validate(exercises); err != nil {
		return nil, err
	}

	c := &Catalog{
		exercises:      exercises,
		searchText:     make([]string, len(exercises)),
		byID:           make(map[string]int, len(exercises)),
		metricsManager: metricsManager,
	}
	for i, e := range exercises {
		c.searchText[i] = e.searchText()
		c.byID[e.ID] = i
	}
	c.facets = buildFacets(exercises)

	if cacheSizeBytes > 0 {
		c.cache = freecache.NewCache(max(cacheSizeBytes, minCacheSizeBytes))
	}

	log.Debugf("exercise catalog ready: %d exercises, %d muscles", len(exercises), len(c.facets.Muscles))
	return c, nil
}

func (c *Catalog) Len() int {
	return len(c.exercises)
}

func (c *Catalog) Get(id string) (Exercise, bool) {
	i, ok := c.byID[id]
	if !ok {
		return Exercise{}, false
	}
	return c.exercises[i], true
}

func (c *Catalog) Has(id string) bool {
	_, ok := c.byID[id]
	return ok
}

// Template returns the draft pre-fill for a library exercise.
func (c *Catalog) Template(id string) (draft.ExerciseTemplate, bool) {
	e, ok := c.Get(id)
	if !ok {
		return draft.ExerciseTemplate{}, false
	}
	return e.Template(), true
}

func (c *Catalog) Facets() Facets {
	return c.facets
}

// Search returns one page of exercises matching every query term and the
// muscle filter, in catalog order.
func (c *Catalog) Search(params SearchParams) Page {
	if params.Limit <= 0 {
		params.Limit = DefaultPageSize
	}
	params.Limit = min(params.Limit, MaxPageSize)
	params.Offset = max(params.Offset, 0)

	// favorites differ per user, they are not worth caching
	if c.cache == nil || params.OnlyIDs != nil {
		c.countSearch(cacheResultUncached)
		return c.search(params)
	}

	key := []byte(cacheKey(params))
	if cached, err := c.cache.Get(key); err == nil {
		var page Page
		if err := json.Unmarshal(cached, &page); err == nil {
			c.countSearch(cacheResultHit)
			return page
		}
		log.Warnf("catalog cache: drop unreadable entry for %q", key)
		c.cache.Del(key)
	} else if !errors.Is(err, freecache.ErrNotFound) {
		log.Errorf("catalog cache get: %s", err)
	}

	c.countSearch(cacheResultMiss)
	page := c.search(params)
	if encoded, err := json.Marshal(page); err == nil {
		if err := c.cache.Set(key, encoded, searchCacheTTLSecs); err != nil {
			log.Debugf("catalog cache set: %s", err)
		}
	}
	return page
}

func (c *Catalog) search(params SearchParams) Page {
	terms := strings.Fields(strings.ToLower(params.Query))

	page := Page{
		Exercises: make([]Exercise, 0, params.Limit),
		Offset:    params.Offset,
	}
	for i, e := range c.exercises {
		if params.OnlyIDs != nil && !params.OnlyIDs[e.ID] {
			continue
		}
		if params.Muscle != "" && !e.hasMuscle(params.Muscle) {
			continue
		}
		if !matchesAll(c.searchText[i], terms) {
			continue
		}
		if page.Total >= params.Offset && len(page.Exercises) < params.Limit {
			page.Exercises = append(page.Exercises, e)
		}
		page.Total++
	}
	page.HasMore = params.Offset+len(page.Exercises) < page.Total
	return page
}

func (c *Catalog) countSearch(result string) {
	if c.metricsManager == nil {
		return
	}
	c.metricsManager.CounterCatalogSearches.WithLabelValues(result).Inc()
}

func matchesAll(text string, terms []string) bool {
	for _, term := range terms {
		if !strings.Contains(text, term) {
			return false
		}
	}
	return true
}

func cacheKey(params SearchParams) string {
	return fmt.Sprintf(
		"%s|%s|%d|%d",
		strings.Join(strings.Fields(strings.ToLower(params.Query)), " "),
		strings.ToLower(params.Muscle),
		params.Offset,
		params.Limit,
	)
}

func buildFacets(exercises []Exercise) Facets {
	muscles := map[string]bool{}
	categories := map[string]bool{}
	equipment := map[string]bool{}
	for _, e := range exercises {
		for _, m := range e.PrimaryMuscles {
			muscles[m] = true
		}
		for _, m := range e.SecondaryMuscles {
			muscles[m] = true
		}
		if e.Category != "" {
			categories[e.Category] = true
		}
		if e.Equipment != "" {
			equipment[e.Equipment] = true
		}
	}
	return Facets{
		Muscles:    sortedKeys(muscles),
		Categories: sortedKeys(categories),
		Equipment:  sortedKeys(equipment),
	}
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
