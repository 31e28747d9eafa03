package reconcile

// Kind identifies a cached node type.
type Kind string

const (
	KindUser         Kind = "user"
	KindStatus       Kind = "status"
	KindPoll         Kind = "poll"
	KindTag          Kind = "tag"
	KindSetting      Kind = "setting"
	KindSubscription Kind = "subscription"
)

type cacheKey struct {
	kind   Kind
	domain string
	id     string
}

// Cache holds the nodes materialized during one batch. A nil *Cache is valid and
// caches nothing.
type Cache struct {
	nodes map[cacheKey]any
}

// NewCache creates an empty batch cache.
func NewCache() *Cache {
	return &Cache{nodes: make(map[cacheKey]any)}
}

// Get returns the node cached for (kind, domain, id).
func (c *Cache) Get(kind Kind, domain, id string) (any, bool) {
	if c == nil {
		return nil, false
	}
	node, ok := c.nodes[cacheKey{kind, domain, id}]
	return node, ok
}

// Put caches node under (kind, domain, id).
func (c *Cache) Put(kind Kind, domain, id string, node any) {
	if c == nil {
		return
	}
	c.nodes[cacheKey{kind, domain, id}] = node
}

// Len returns the number of cached nodes.
func (c *Cache) Len() int {
	if c == nil {
		return 0
	}
	return len(c.nodes)
}

func cached[N any](c *Cache, kind Kind, domain, id string) (*N, bool) {
	v, ok := c.Get(kind, domain, id)
	if !ok {
		return nil, false
	}
	node, ok := v.(*N)
	return node, ok
}

// Stats counts what a batch did per node kind.
type Stats struct {
	// Lookups is every attempt to resolve a node.
	Lookups int `json:"lookups"`
	// Hits were answered by the batch cache.
	Hits int `json:"hits"`
	// Inserts created a new node.
	Inserts int `json:"inserts"`
	// Merges mutated an existing node.
	Merges int `json:"merges"`
	// Stale found an existing node at least as recent as the batch.
	Stale int `json:"stale"`
}

func (s Stats) add(o Stats) Stats {
	return Stats{
		Lookups: s.Lookups + o.Lookups,
		Hits:    s.Hits + o.Hits,
		Inserts: s.Inserts + o.Inserts,
		Merges:  s.Merges + o.Merges,
		Stale:   s.Stale + o.Stale,
	}
}
