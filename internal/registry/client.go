package registry

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
	"github.com/rs/zerolog"

	"github.com/Madumtv/healthcentral-sub001/internal/model"
	"github.com/Madumtv/healthcentral-sub001/pkg/circuitbreaker"
	"github.com/Madumtv/healthcentral-sub001/pkg/metrics"
)

// Searcher is what the orchestrator needs from the official directory.
type Searcher interface {
	Search(ctx context.Context, query string) ([]*model.Doctor, error)
}

// Client queries the national practitioner directory. Results are candidates:
// they carry no local identity until a user promotes them. The directory can
// be slow or rate-limited, so calls go through a circuit breaker and repeat
// queries are served from a TTL cache.
type Client struct {
	cfg     Config
	http    *http.Client
	cb      *circuitbreaker.CircuitBreaker
	cache   *gocache.Cache
	logger  *zerolog.Logger
	metrics *metrics.Metrics
}

func NewClient(cfg Config, logger *zerolog.Logger, m *metrics.Metrics) *Client {
	return &Client{
		cfg:  cfg,
		http: &http.Client{Timeout: cfg.Timeout},
		cb: circuitbreaker.New(circuitbreaker.Settings{
			Name:        "official-registry",
			MaxFailures: cfg.MaxFailures,
			Cooldown:    cfg.Cooldown,
		}),
		cache:   gocache.New(cfg.CacheTTL, 2*cfg.CacheTTL),
		logger:  logger,
		metrics: m,
	}
}

// practitioner is the directory's wire format.
type practitioner struct {
	RPPSNumber string `json:"rpps_number"`
	FirstName  string `json:"first_name"`
	LastName   string `json:"last_name"`
	Specialty  string `json:"specialty"`
	Address    string `json:"address"`
	City       string `json:"city"`
	PostalCode string `json:"postal_code"`
	Phone      string `json:"phone"`
}

type searchResponse struct {
	Results []practitioner `json:"results"`
}

func (c *Client) Search(ctx context.Context, query string) ([]*model.Doctor, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, nil
	}

	cacheKey := strings.ToLower(query)
	if cached, ok := c.cache.Get(cacheKey); ok {
		if c.metrics != nil {
			c.metrics.RegistryCacheHits.Inc()
		}
		return cached.([]*model.Doctor), nil
	}

	var doctors []*model.Doctor
	start := time.Now()
	err := c.cb.Execute(func() error {
		var err error
		doctors, err = c.fetch(ctx, query)
		return err
	})
	if c.metrics != nil {
		c.metrics.RegistryLatency.Observe(time.Since(start).Seconds())
		if err != nil {
			c.metrics.RegistryRequests.WithLabelValues("error").Inc()
		} else {
			c.metrics.RegistryRequests.WithLabelValues("success").Inc()
		}
	}
	if err != nil {
		c.logger.Warn().Err(err).Str("query", query).Msg("official registry search failed")
		return nil, err
	}

	c.cache.Set(cacheKey, doctors, gocache.DefaultExpiration)
	return doctors, nil
}

func (c *Client) fetch(ctx context.Context, query string) ([]*model.Doctor, error) {
	u, err := url.Parse(c.cfg.BaseURL + "/practitioners/search")
	if err != nil {
		return nil, fmt.Errorf("invalid registry URL: %w", err)
	}
	q := u.Query()
	q.Set("q", query)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build registry request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if c.cfg.APIKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.cfg.APIKey)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("registry request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("registry returned status %d", resp.StatusCode)
	}

	var body searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("failed to decode registry response: %w", err)
	}

	doctors := make([]*model.Doctor, 0, len(body.Results))
	for _, p := range body.Results {
		// No ID, no timestamps: candidates stay unpersisted until promoted
		doctors = append(doctors, &model.Doctor{
			RPPSNumber: p.RPPSNumber,
			FirstName:  p.FirstName,
			LastName:   p.LastName,
			Specialty:  p.Specialty,
			Address:    p.Address,
			City:       p.City,
			PostalCode: p.PostalCode,
			Phone:      p.Phone,
			IsActive:   true,
		})
	}
	return doctors, nil
}
