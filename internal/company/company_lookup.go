package company

import (
	"context"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/singleflight"
)

const (
	SubdomainCacheKeyPrefix = "companies:subdomain:"
	subdomainCacheTTL       = 15 * time.Minute
)

func GetSubdomainCacheKey(subdomain string) string {
	return SubdomainCacheKeyPrefix + subdomain
}

// Lookup resolves subdomains to company IDs. It sits on the hot path of
// every request, so hits are served from redis and misses are collapsed
// with singleflight before touching postgres.
type Lookup struct {
	repo Repository
	rdb  *redis.Client
	sf   singleflight.Group
}

func NewLookup(repo Repository, rdb *redis.Client) *Lookup {
	return &Lookup{repo: repo, rdb: rdb}
}

// FindIDBySubdomain returns "" without error when no active company owns
// the subdomain.
func (l *Lookup) FindIDBySubdomain(ctx context.Context, subdomain string) (string, error) {
	cacheKey := GetSubdomainCacheKey(subdomain)

	if l.rdb != nil {
		if cached, err := l.rdb.Get(ctx, cacheKey).Result(); err == nil {
			return cached, nil
		}
	}

	v, err, _ := l.sf.Do(cacheKey, func() (interface{}, error) {
		comp, err := l.repo.GetBySubdomain(ctx, subdomain)
		if err != nil {
			return "", err
		}
		if comp == nil {
			return "", nil
		}

		id := comp.ID.String()
		if l.rdb != nil {
			l.rdb.Set(ctx, cacheKey, id, subdomainCacheTTL)
		}
		return id, nil
	})
	if err != nil {
		return "", err
	}
	return v.(string), nil
}

// Invalidate drops the cached mapping after a company is changed or removed.
func (l *Lookup) Invalidate(ctx context.Context, subdomain string) {
	if l.rdb == nil {
		return
	}
	l.rdb.Del(ctx, GetSubdomainCacheKey(subdomain))
}
