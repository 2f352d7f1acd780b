package ports

import (
	"context"
	"net/url"
)

// APIClient performs JSON calls against one backend base URL. Paths are
// relative to the base. Non-2xx responses are returned as errors.
type APIClient interface {
	GetJSON(ctx context.Context, path string, query url.Values, out any) error
	PostJSON(ctx context.Context, path string, body any, out any) error
}
