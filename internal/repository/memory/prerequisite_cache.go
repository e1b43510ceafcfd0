package memory

import (
	"time"

	"immoflow-be/internal/dto"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

// PrerequisiteCache keeps recent eligibility snapshots so the upgrade page
// can poll without re-running the full prerequisite queries. TTL is short:
// a stale "can upgrade" answer self-corrects at submission time anyway.
type PrerequisiteCache struct {
	cache *cache.Cache
}

func NewPrerequisiteCache() *PrerequisiteCache {
	// Default expiration of 2 minutes, purge every 5 minutes
	c := cache.New(2*time.Minute, 5*time.Minute)
	return &PrerequisiteCache{
		cache: c,
	}
}

func key(userId uuid.UUID, targetRole string) string {
	return userId.String() + ":" + targetRole
}

func (r *PrerequisiteCache) Save(userId uuid.UUID, targetRole string, snapshot *dto.PrerequisiteCheckResponse) {
	r.cache.Set(key(userId, targetRole), snapshot, cache.DefaultExpiration)
}

func (r *PrerequisiteCache) Get(userId uuid.UUID, targetRole string) (*dto.PrerequisiteCheckResponse, bool) {
	if x, found := r.cache.Get(key(userId, targetRole)); found {
		return x.(*dto.PrerequisiteCheckResponse), true
	}
	return nil, false
}

// Invalidate drops the snapshot after anything that changes eligibility
// (verification updates, request submission).
func (r *PrerequisiteCache) Invalidate(userId uuid.UUID) {
	for _, role := range []string{"owner", "agency"} {
		r.cache.Delete(key(userId, role))
	}
}
