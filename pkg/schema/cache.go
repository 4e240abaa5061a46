package schema

import (
	"fmt"

	"github.com/cespare/xxhash/v2"
	lru "github.com/hashicorp/golang-lru"
)

// Cache keeps recently loaded schemas keyed by the content of their sources,
// so projects sharing the same SDL files parse them once.
type Cache struct {
	schemas *lru.Cache
}

func NewCache(size int) (*Cache, error) {
	schemas, err := lru.New(size)
	if err != nil {
		return nil, err
	}
	return &Cache{schemas: schemas}, nil
}

func (c *Cache) Load(server []*Source, extensions []*Source) (*Schema, error) {
	key := cacheKey(server, extensions)
	if cached, ok := c.schemas.Get(key); ok {
		return cached.(*Schema), nil
	}

	loaded, err := Load(server, extensions)
	if err != nil {
		return nil, err
	}
	c.schemas.Add(key, loaded)
	return loaded, nil
}

func (c *Cache) Len() int {
	return c.schemas.Len()
}

func cacheKey(server []*Source, extensions []*Source) uint64 {
	digest := xxhash.New()
	write := func(kind string, sources []*Source) {
		for i := range sources {
			_, _ = fmt.Fprintf(digest, "%s:%s:%d:", kind, sources[i].Name, len(sources[i].Input))
			_, _ = digest.WriteString(sources[i].Input)
		}
	}
	write("server", server)
	write("extension", extensions)
	return digest.Sum64()
}
