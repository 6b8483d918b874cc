package cache

import (
	"context"
	"fmt"
	"time"
)

const (
	ProfileKeyPrefix = "profile:%d"
	TaxonomyKey      = "taxonomy:categories"
	AuthTokenPrefix  = "auth_token:%d"
)

const (
	ProfileTTL  = 5 * time.Minute
	TaxonomyTTL = 30 * time.Minute
)

func ProfileKey(userID uint) string {
	return fmt.Sprintf(ProfileKeyPrefix, userID)
}

func AuthTokenKey(userID uint) string {
	return fmt.Sprintf(AuthTokenPrefix, userID)
}

func Invalidate(ctx context.Context, key string) {
	if client != nil {
		client.Del(ctx, key)
	}
}

func InvalidateProfile(ctx context.Context, userID uint) {
	Invalidate(ctx, ProfileKey(userID))
}

func InvalidateTaxonomy(ctx context.Context) {
	Invalidate(ctx, TaxonomyKey)
}
