package app

import (
	"fmt"

	"github.com/medipoint-hq/medipoint-gateway/internal/config"
	"github.com/medipoint-hq/medipoint-gateway/internal/logger"
	"github.com/medipoint-hq/medipoint-gateway/internal/storage"
	"github.com/medipoint-hq/medipoint-gateway/pkg/httpclient"
	"github.com/medipoint-hq/medipoint-gateway/pkg/medipoint"
)

// Gateway bundles the dashboard API client with the token store it reads from.
type Gateway struct {
	API    *medipoint.API
	Store  storage.Store
	Client *httpclient.RestyClient
	log    logger.Logger
}

// NewGateway opens the token store and builds the transport and catalog.
func NewGateway(cfg *config.Config, log logger.Logger) (*Gateway, error) {
	if cfg == nil {
		return nil, fmt.Errorf("config must not be nil")
	}
	if log == nil {
		log = logger.NopLogger{}
	}

	store, err := storage.NewStore(cfg.TokenStoreType, cfg.TokenStorePath)
	if err != nil {
		return nil, fmt.Errorf("init token store: %w", err)
	}
	log.DebugObj("token store initialized", "storage_config", map[string]any{
		"type": cfg.TokenStoreType,
		"path": cfg.TokenStorePath,
	})

	client := httpclient.New(cfg.ClientConfig(),
		httpclient.WithTokenProvider(storage.TokenProvider(store, log)),
		httpclient.WithLogger(log),
	)

	return &Gateway{
		API:    medipoint.New(client),
		Store:  store,
		Client: client,
		log:    log,
	}, nil
}

// BaseURL reports the resolved API base URL.
func (g *Gateway) BaseURL() string {
	if g == nil || g.Client == nil {
		return ""
	}
	return g.Client.Config().BaseURL
}

// Close releases the token store.
func (g *Gateway) Close() {
	if g == nil || g.Store == nil {
		return
	}
	if err := g.Store.Close(); err != nil {
		g.log.ErrorObj("token store close failed", "error", err)
	}
}
