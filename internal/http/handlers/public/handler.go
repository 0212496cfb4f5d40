package public

import "github.com/palengke/storefront/internal/provider"

// Handler serves the storefront and user-facing API.
type Handler struct {
	*provider.Container
}

// New creates the storefront handler.
func New(c *provider.Container) *Handler {
	return &Handler{Container: c}
}
