package tileserver

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"go.uber.org/zap"

	"github.com/oceancolor-service/internal/config"
	"github.com/oceancolor-service/internal/domain"
	"github.com/oceancolor-service/internal/domain/repository"
)

type client struct {
	httpClient *http.Client
	baseURL    string
	source     domain.TileSource
	logger     *zap.Logger
}

// NewClient создает новый клиент тайлового сервера.
func NewClient(cfg *config.SourceConfig, logger *zap.Logger) repository.TileRepository {
	return &client{
		httpClient: &http.Client{
			Timeout: cfg.RequestTimeout,
		},
		baseURL: cfg.BaseURL,
		source:  cfg.Source,
		logger:  logger,
	}
}

// ListTimestamps возвращает доступные timestamp'ы источника.
// Ответ - либо голый JSON-массив, либо объект с массивом под
// TimestampJSONKey; любое другое тело считается ошибкой.
func (c *client) ListTimestamps(ctx context.Context) ([]int64, error) {
	url := c.source.TimestampsURL(c.baseURL)

	c.logger.Debug("Fetching timestamp list",
		zap.String("source", c.source.Name),
		zap.String("url", url))

	body, err := c.get(ctx, url)
	if err != nil {
		return nil, err
	}

	var timestamps []int64
	if key := c.source.TimestampJSONKey; key != "" {
		var wrapped map[string]json.RawMessage
		if err := json.Unmarshal(body, &wrapped); err != nil {
			return nil, fmt.Errorf("failed to decode timestamp response: %w", err)
		}
		raw, ok := wrapped[key]
		if !ok {
			return nil, fmt.Errorf("timestamp response missing %q field", key)
		}
		if err := json.Unmarshal(raw, &timestamps); err != nil {
			return nil, fmt.Errorf("failed to decode %q field: %w", key, err)
		}
	} else {
		if err := json.Unmarshal(body, &timestamps); err != nil {
			return nil, fmt.Errorf("failed to decode timestamp response: %w", err)
		}
	}

	c.logger.Debug("Timestamp list fetched", zap.Int("count", len(timestamps)))

	return timestamps, nil
}

// FetchTile скачивает один тайл и возвращает сырые байты изображения.
func (c *client) FetchTile(ctx context.Context, addr domain.TileAddress, timestamp int64) ([]byte, error) {
	url := c.source.TileURL(c.baseURL, addr, timestamp)

	body, err := c.get(ctx, url)
	if err != nil {
		c.logger.Warn("Tile fetch failed",
			zap.String("url", url),
			zap.Int("zoom", addr.Zoom),
			zap.Int("col", addr.Col),
			zap.Int("row", addr.Row),
			zap.Error(err))
		return nil, err
	}

	return body, nil
}

func (c *client) get(ctx context.Context, url string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("tile server error: status %d, body: %s", resp.StatusCode, string(body))
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, nil
}
