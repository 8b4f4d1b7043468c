package metadata

import "context"

// Repository is the string-keyed secret store backing the access token and
// the local-only preference. It satisfies datamode.SecretStore. Get returns
// nil, not an error, for a missing key.
type Repository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Clear(ctx context.Context) error
}
