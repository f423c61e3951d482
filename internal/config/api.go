package config

import (
	"fmt"

	"github.com/campward/campward/pkg/middleware"
	"github.com/campward/campward/pkg/openapi"
	"github.com/campward/campward/pkg/pagination"
)

var corsEnv = &middleware.CORSEnv{
	Enabled:          "CAMPWARD_CORS_ENABLED",
	Origins:          "CAMPWARD_CORS_ORIGINS",
	AllowedMethods:   "CAMPWARD_CORS_ALLOWED_METHODS",
	AllowedHeaders:   "CAMPWARD_CORS_ALLOWED_HEADERS",
	AllowCredentials: "CAMPWARD_CORS_ALLOW_CREDENTIALS",
	MaxAge:           "CAMPWARD_CORS_MAX_AGE",
}

var paginationEnv = &pagination.ConfigEnv{
	DefaultPageSize: "CAMPWARD_PAGINATION_DEFAULT_PAGE_SIZE",
	MaxPageSize:     "CAMPWARD_PAGINATION_MAX_PAGE_SIZE",
}

var openapiEnv = &openapi.ConfigEnv{
	Title:       "CAMPWARD_OPENAPI_TITLE",
	Description: "CAMPWARD_OPENAPI_DESCRIPTION",
}

// APIConfig holds API routing, CORS, pagination, and OpenAPI settings.
type APIConfig struct {
	BasePath   string                `toml:"base_path"`
	CORS       middleware.CORSConfig `toml:"cors"`
	Pagination pagination.Config     `toml:"pagination"`
	OpenAPI    openapi.Config        `toml:"openapi"`
}

// Finalize applies defaults, environment variable overrides, and validation
// for the API config and its nested CORS and pagination configs.
func (c *APIConfig) Finalize() error {
	c.loadDefaults()

	if err := c.CORS.Finalize(corsEnv); err != nil {
		return fmt.Errorf("cors: %w", err)
	}
	if err := c.Pagination.Finalize(paginationEnv); err != nil {
		return fmt.Errorf("pagination: %w", err)
	}
	if err := c.OpenAPI.Finalize(openapiEnv); err != nil {
		return fmt.Errorf("openapi: %w", err)
	}
	return nil
}

// Merge overwrites non-zero fields from overlay across nested configs.
func (c *APIConfig) Merge(overlay *APIConfig) {
	if overlay.BasePath != "" {
		c.BasePath = overlay.BasePath
	}

	c.CORS.Merge(&overlay.CORS)
	c.Pagination.Merge(&overlay.Pagination)
	c.OpenAPI.Merge(&overlay.OpenAPI)
}

func (c *APIConfig) loadDefaults() {
	if c.BasePath == "" {
		c.BasePath = "/api"
	}
}
