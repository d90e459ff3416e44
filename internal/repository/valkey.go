package repository

import (
	"context"
	"errors"
	"time"

	"github.com/valkey-io/valkey-go"
)

const codeKeyPrefix = "shortener:code:"

// ValkeyRepo caches short code -> original URL pairs.
type ValkeyRepo struct {
	client valkey.Client
}

func NewValkeyRepo(client valkey.Client) *ValkeyRepo {
	return &ValkeyRepo{client: client}
}

// GetURLByCode returns an empty string on cache miss.
func (r *ValkeyRepo) GetURLByCode(ctx context.Context, code string) (string, error) {
	url, err := r.client.Do(ctx, r.client.B().Get().Key(codeKeyPrefix+code).Build()).ToString()
	if errors.Is(err, valkey.Nil) {
		return "", nil
	} else if err != nil {
		return "", err
	}

	return url, nil
}

func (r *ValkeyRepo) SetURL(ctx context.Context, code, url string, ttl time.Duration) error {
	return r.client.Do(ctx,
		r.client.B().
			Set().
			Key(codeKeyPrefix+code).
			Value(url).
			Ex(ttl).
			Build(),
	).Error()
}

func (r *ValkeyRepo) DeleteCode(ctx context.Context, code string) error {
	return r.client.Do(ctx, r.client.B().Del().Key(codeKeyPrefix+code).Build()).Error()
}
