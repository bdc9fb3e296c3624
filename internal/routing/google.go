package routing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/ychsieh/travel-planner/internal/domain"
)

// GoogleProvider implements Provider against the Google Directions API.
// The first point becomes the origin, the last the destination, and everything
// in between a stopover waypoint, so the response carries exactly one leg per
// consecutive point pair.
//
// Safe for concurrent use.
type GoogleProvider struct {
	client  *http.Client
	apiKey  string
	baseURL string
}

// NewGoogleProvider constructs a GoogleProvider. baseURL overrides the
// production endpoint when non-empty (tests point it at a local server).
func NewGoogleProvider(apiKey, baseURL string) (*GoogleProvider, error) {
	if apiKey == "" {
		return nil, errors.New("routing: google api key is empty")
	}
	if baseURL == "" {
		baseURL = "https://maps.googleapis.com/maps/api/directions/json"
	}
	return &GoogleProvider{
		client:  &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: baseURL,
	}, nil
}

// directionsResponse mirrors the slice of the Directions payload we consume.
type directionsResponse struct {
	Status string `json:"status"`
	Routes []struct {
		Legs []struct {
			Duration struct {
				Text  string `json:"text"`
				Value int    `json:"value"`
			} `json:"duration"`
			Distance struct {
				Value int `json:"value"`
			} `json:"distance"`
		} `json:"legs"`
	} `json:"routes"`
}

// Route requests directions through all points in order and returns one leg
// per consecutive pair.
func (g *GoogleProvider) Route(ctx context.Context, points []domain.LatLng, mode domain.TravelMode) ([]domain.Leg, error) {
	if len(points) < 2 {
		return nil, errors.New("routing: need at least 2 points")
	}

	q := url.Values{}
	q.Set("origin", formatPoint(points[0]))
	q.Set("destination", formatPoint(points[len(points)-1]))
	if len(points) > 2 {
		var wp []string
		for _, p := range points[1 : len(points)-1] {
			wp = append(wp, formatPoint(p))
		}
		q.Set("waypoints", strings.Join(wp, "|"))
	}
	q.Set("mode", string(mode))
	q.Set("key", g.apiKey)
	reqURL := g.baseURL + "?" + q.Encode()

	resp, err := g.doWithRetry(ctx, reqURL)
	if err != nil {
		return nil, fmt.Errorf("routing: directions request: %w", err)
	}
	defer resp.Body.Close()

	var body directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&body); err != nil {
		return nil, fmt.Errorf("routing: decode directions response: %w", err)
	}
	if body.Status != "OK" || len(body.Routes) == 0 {
		return nil, &StatusError{Status: body.Status}
	}

	raw := body.Routes[0].Legs
	legs := make([]domain.Leg, len(raw))
	for i, l := range raw {
		legs[i] = domain.Leg{
			DurationText:    l.Duration.Text,
			DurationSeconds: l.Duration.Value,
			DistanceMeters:  l.Distance.Value,
		}
	}
	return legs, nil
}

// doWithRetry retries transient failures (network errors, 429, 5xx) with
// exponential backoff while respecting context cancellation.
func (g *GoogleProvider) doWithRetry(ctx context.Context, reqURL string) (*http.Response, error) {
	const maxAttempts = 3
	backoff := 200 * time.Millisecond

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
		if err != nil {
			return nil, err
		}

		resp, err := g.client.Do(req)
		if err == nil && resp.StatusCode < 400 {
			return resp, nil
		}

		retry := false
		if err != nil {
			lastErr = err
			var netErr net.Error
			retry = errors.As(err, &netErr)
		} else {
			b, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
			resp.Body.Close()
			lastErr = fmt.Errorf("http %d: %s", resp.StatusCode, strings.TrimSpace(string(b)))
			switch resp.StatusCode {
			case http.StatusTooManyRequests,
				http.StatusInternalServerError,
				http.StatusBadGateway,
				http.StatusServiceUnavailable,
				http.StatusGatewayTimeout:
				retry = true
			}
		}

		if !retry || attempt == maxAttempts {
			return nil, lastErr
		}

		timer := time.NewTimer(backoff)
		select {
		case <-ctx.Done():
			timer.Stop()
			return nil, ctx.Err()
		case <-timer.C:
		}
		backoff *= 2
	}
	return nil, lastErr
}

func formatPoint(p domain.LatLng) string {
	return strconv.FormatFloat(p.Lat, 'f', 6, 64) + "," + strconv.FormatFloat(p.Lng, 'f', 6, 64)
}
