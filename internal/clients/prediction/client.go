// Package prediction is the HTTP client for the external statistical
// prediction service that hosts per-condition trained classifiers. The
// client wraps calls in a circuit breaker, rate-limits outbound
// requests, and caches responses by request identity.
package prediction

import (
	"bytes"
	"context"
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	lru "github.com/hashicorp/golang-lru/v2"
	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"
	"golang.org/x/time/rate"

	"github.com/symptom-triage-server/internal/domain"
)

// Client calls the prediction service. It implements domain.Predictor.
type Client struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *rate.Limiter
	cache      *lru.Cache[string, *domain.PredictionResult]
	logger     *logrus.Logger
}

// NewClient creates a prediction client from configuration.
func NewClient(cfg domain.PredictionConfig, logger *logrus.Logger) (*Client, error) {
	cache, err := lru.New[string, *domain.PredictionResult](cfg.CacheSize)
	if err != nil {
		return nil, fmt.Errorf("create prediction cache: %w", err)
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:    "prediction-service",
		Timeout: 30 * time.Second,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= 5
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"breaker": name,
				"from":    from.String(),
				"to":      to.String(),
			}).Warn("Circuit breaker state changed")
		},
	})

	return &Client{
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
		breaker:    breaker,
		limiter:    rate.NewLimiter(rate.Limit(cfg.RateLimit), cfg.RateLimit),
		cache:      cache,
		logger:     logger,
	}, nil
}

// Predict runs the condition's classifier on the supplied features.
// Cached results return immediately without consuming rate budget.
func (c *Client) Predict(ctx context.Context, conditionID string, features map[string]float64) (*domain.PredictionResult, error) {
	key, err := cacheKey(conditionID, features)
	if err != nil {
		return nil, err
	}
	if result, ok := c.cache.Get(key); ok {
		return result, nil
	}

	if err := c.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("prediction rate limit: %w", err)
	}

	out, err := c.breaker.Execute(func() (interface{}, error) {
		return c.doPredict(ctx, conditionID, features)
	})
	if err != nil {
		return nil, err
	}

	result := out.(*domain.PredictionResult)
	c.cache.Add(key, result)
	return result, nil
}

func (c *Client) doPredict(ctx context.Context, conditionID string, features map[string]float64) (*domain.PredictionResult, error) {
	body, err := json.Marshal(domain.PredictionRequest{
		ConditionID: conditionID,
		Features:    features,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/predict", bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("prediction request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		payload, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("prediction service returned %d: %s", resp.StatusCode, payload)
	}

	result := &domain.PredictionResult{}
	if err := json.NewDecoder(resp.Body).Decode(result); err != nil {
		return nil, fmt.Errorf("decode prediction response: %w", err)
	}
	return result, nil
}

// cacheKey hashes the request identity: condition id plus the marshaled
// feature map. Go marshals maps with sorted keys, so equal feature sets
// hash equally.
func cacheKey(conditionID string, features map[string]float64) (string, error) {
	payload, err := json.Marshal(features)
	if err != nil {
		return "", err
	}
	sum := sha256.Sum256(append([]byte(conditionID+":"), payload...))
	return fmt.Sprintf("%x", sum), nil
}
