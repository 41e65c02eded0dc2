package routing

import (
	"bytes"
	"context"
	"cylinder-route-service/internal/domain"
	"cylinder-route-service/internal/platform/obs"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

const (
	defaultORSBaseURL = "https://api.openrouteservice.org"
	// ORS rejects directions requests above this many waypoints.
	maxORSWaypoints = 50
)

// ORSRouteProvider implements RouteDataProvider using the OpenRouteService
// directions endpoint. It converts meters/seconds to kilometers/minutes.
//
// The provider is safe for concurrent use.
type ORSRouteProvider struct {
	session *http.Client
	apiKey  string
	baseURL string
	profile string
	retry   RetryPolicy
}

type directionsRequest struct {
	Coordinates [][]float64 `json:"coordinates"`
}

type directionsResponse struct {
	Routes []struct {
		Summary struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"summary"`
		Segments []struct {
			Distance float64 `json:"distance"`
			Duration float64 `json:"duration"`
		} `json:"segments"`
	} `json:"routes"`
}

func NewORSRouteProvider(apiKey string, baseURL string) (*ORSRouteProvider, error) {
	if strings.TrimSpace(apiKey) == "" {
		return nil, errors.New("ORS api key is empty")
	}

	if strings.TrimSpace(baseURL) == "" {
		baseURL = defaultORSBaseURL
	}

	return &ORSRouteProvider{
		session: &http.Client{Timeout: 10 * time.Second},
		apiKey:  apiKey,
		baseURL: strings.TrimRight(baseURL, "/"),
		profile: "driving-hgv",
		retry:   DefaultRetryPolicy(),
	}, nil
}

// WithRetryPolicy replaces the retry policy. Zero fields keep their defaults.
func (o *ORSRouteProvider) WithRetryPolicy(p RetryPolicy) *ORSRouteProvider {
	o.retry = p.normalized()
	return o
}

// GetRouteData fetches one route through all waypoints in order.
func (o *ORSRouteProvider) GetRouteData(
	ctx context.Context,
	waypoints []domain.Coordinates,
) (_ *domain.ExternalRouteData, err error) {
	defer obs.Time(ctx, "ors.GetRouteData")(&err)

	if len(waypoints) < 2 {
		return nil, errors.New("get ORS route: at least two waypoints are required")
	}
	if len(waypoints) > maxORSWaypoints {
		return nil, fmt.Errorf("get ORS route: %d waypoints exceeds limit of %d", len(waypoints), maxORSWaypoints)
	}

	coords := make([][]float64, 0, len(waypoints))
	for i, w := range waypoints {
		if !w.Valid() {
			return nil, fmt.Errorf("get ORS route: waypoint #%d has invalid coordinates", i+1)
		}
		coords = append(coords, w.CoordsToList())
	}

	payload, err := json.Marshal(directionsRequest{Coordinates: coords})
	if err != nil {
		return nil, fmt.Errorf("marshal directions request: %w", err)
	}

	endpoint := fmt.Sprintf("%s/v2/directions/%s", o.baseURL, o.profile)

	resp, err := o.doWithRetry(ctx, func() (*http.Request, error) {
		return o.newRequest(ctx, http.MethodPost, endpoint, bytes.NewReader(payload))
	})
	if err != nil {
		return nil, fmt.Errorf("directions request failed: %w", err)
	}
	defer resp.Body.Close()

	var dr directionsResponse
	if err := json.NewDecoder(resp.Body).Decode(&dr); err != nil {
		return nil, fmt.Errorf("decode directions response: %w", err)
	}

	if len(dr.Routes) == 0 {
		return nil, errors.New("directions response contained no routes")
	}
	route := dr.Routes[0]

	if len(route.Segments) != len(waypoints)-1 {
		return nil, fmt.Errorf(
			"segment count does not match legs: segments=%d legs=%d",
			len(route.Segments), len(waypoints)-1,
		)
	}

	segments := make([]domain.Segment, 0, len(route.Segments))
	for _, s := range route.Segments {
		segments = append(segments, domain.Segment{
			Distance: s.Distance / 1000,
			Duration: s.Duration / 60,
		})
	}

	return &domain.ExternalRouteData{
		Distance:     route.Summary.Distance / 1000,
		Duration:     route.Summary.Duration / 60,
		WaypointData: segments,
	}, nil
}
