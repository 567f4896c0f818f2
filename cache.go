package main

import (
	"errors"
	"fmt"
	"strconv"
	"sync"

	"golang.org/x/sync/singleflight"
)

type resource string

const (
	resArticles     resource = "articles"
	resArticleCount resource = "articleCount"
	resArticle      resource = "article"
	resComments     resource = "comments"
	resHotArticles  resource = "hotArticles"
	resLikeStatus   resource = "likeStatus"
	resViewCount    resource = "viewCount"
)

type mutation string

const (
	mutArticleWrite mutation = "articleWrite"
	mutCommentWrite mutation = "commentWrite"
	mutLikeToggle   mutation = "likeToggle"
	mutViewAdd      mutation = "viewAdd"
)

var allMutations = []mutation{mutArticleWrite, mutCommentWrite, mutLikeToggle, mutViewAdd}

// invalidationTable declares, per mutation, which resource tags go
// stale when it succeeds. Every mutation must appear here; NewCache
// refuses a table with holes so a forgotten dependency fails at
// construction rather than by silently serving stale reads.
var invalidationTable = map[mutation][]resource{
	mutArticleWrite: {resArticles, resArticleCount, resArticle, resHotArticles},
	mutCommentWrite: {resComments},
	mutLikeToggle:   {resArticle, resLikeStatus},
	mutViewAdd:      {resViewCount},
}

type FetchState string

const (
	FetchIdle    FetchState = "idle"
	FetchLoading FetchState = "loading"
	FetchSuccess FetchState = "success"
	FetchFailed  FetchState = "failed"
)

// CacheKey addresses one cacheable read: the resource tag plus the
// parameters that disambiguate it.
type CacheKey struct {
	Resource resource
	Params   string
}

func (k CacheKey) String() string {
	return string(k.Resource) + "?" + k.Params
}

func articlesKey(page int, size int, keyword string) CacheKey {
	return CacheKey{Resource: resArticles, Params: fmt.Sprintf("page=%d&size=%d&keyword=%s", page, size, keyword)}
}

func articleCountKey() CacheKey {
	return CacheKey{Resource: resArticleCount}
}

func articleKey(id int64) CacheKey {
	return CacheKey{Resource: resArticle, Params: "id=" + strconv.FormatInt(id, 10)}
}

func commentsKey(articleID int64) CacheKey {
	return CacheKey{Resource: resComments, Params: "articleId=" + strconv.FormatInt(articleID, 10)}
}

func hotArticlesKey() CacheKey {
	return CacheKey{Resource: resHotArticles}
}

func likeStatusKey(articleID int64, userID int64) CacheKey {
	return CacheKey{Resource: resLikeStatus, Params: fmt.Sprintf("articleId=%d&userId=%d", articleID, userID)}
}

func viewCountKey(articleID int64) CacheKey {
	return CacheKey{Resource: resViewCount, Params: "articleId=" + strconv.FormatInt(articleID, 10)}
}

type cacheEntry struct {
	state   FetchState
	data    any
	err     error
	gen     uint64
	stale   bool
	retried bool
}

// Cache is the keyed fetch/invalidate layer. Reads for one key share a
// single in-flight request, a transient failure is retried once per
// read cycle, and a result only lands if no newer read for the same key
// was issued while it was in flight.
type Cache struct {
	mu      sync.Mutex
	entries map[CacheKey]*cacheEntry
	flight  singleflight.Group
	deps    map[mutation][]resource
}

func NewCache() (*Cache, error) {
	for _, mut := range allMutations {
		targets, ok := invalidationTable[mut]
		if !ok || len(targets) == 0 {
			return nil, fmt.Errorf("mutation %q declares no invalidation targets", mut)
		}
	}
	return &Cache{
		entries: map[CacheKey]*cacheEntry{},
		deps:    invalidationTable,
	}, nil
}

// Fetch returns the cached value for key when it is fresh, otherwise
// runs fn (sharing the call with any concurrent fetch of the same key)
// and stores the result. A result from a superseded generation is
// returned to its caller but never overwrites newer cache state.
func (c *Cache) Fetch(key CacheKey, fn func() (any, error)) (any, error) {
	c.mu.Lock()
	entry, ok := c.entries[key]
	if !ok {
		entry = &cacheEntry{state: FetchIdle}
		c.entries[key] = entry
	}
	if entry.state == FetchSuccess && !entry.stale {
		data := entry.data
		c.mu.Unlock()
		return data, nil
	}
	join := entry.state == FetchLoading && !entry.stale
	if !join {
		entry.gen++
		entry.state = FetchLoading
		entry.stale = false
		c.flight.Forget(key.String())
	}
	gen := entry.gen
	c.mu.Unlock()

	data, err, _ := c.flight.Do(key.String(), func() (any, error) {
		data, err := fn()
		if err != nil && transientError(err) && c.markRetried(key) {
			data, err = fn()
		}
		return data, err
	})

	c.mu.Lock()
	defer c.mu.Unlock()
	if entry.gen == gen {
		entry.data = data
		entry.err = err
		if err != nil {
			entry.state = FetchFailed
		} else {
			entry.state = FetchSuccess
		}
	}
	return data, err
}

// markRetried flips the retry budget for key; it reports false once the
// single retry of the current read cycle has been spent.
func (c *Cache) markRetried(key CacheKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok || entry.retried {
		return false
	}
	entry.retried = true
	return true
}

// Invalidate marks every entry whose resource tag the mutation declares
// as stale; the next Fetch refetches and gets a fresh retry budget.
func (c *Cache) Invalidate(mut mutation) {
	c.mu.Lock()
	defer c.mu.Unlock()
	for _, res := range c.deps[mut] {
		for key, entry := range c.entries {
			if key.Resource == res {
				entry.stale = true
				entry.retried = false
			}
		}
	}
}

func (c *Cache) State(key CacheKey) FetchState {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	if !ok {
		return FetchIdle
	}
	return entry.state
}

func (c *Cache) Stale(key CacheKey) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	entry, ok := c.entries[key]
	return ok && entry.stale
}

func transientError(err error) bool {
	if errors.Is(err, ErrAuthExpired) {
		return false
	}
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return httpErr.Status >= 500
	}
	return true
}
