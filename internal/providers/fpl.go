package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/sony/gobreaker"

	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
)

// FPLClient talks to the official Fantasy Premier League API. Calls are rate
// limited, retried, and wrapped in a circuit breaker so a flaky upstream
// cannot stall the whole service.
type FPLClient struct {
	baseURL    string
	httpClient *http.Client
	breaker    *gobreaker.CircuitBreaker
	limiter    *RateLimiter
	maxRetries int
	logger     *logrus.Logger
}

// NewFPLClient creates a client for the FPL API.
func NewFPLClient(baseURL string, timeout time.Duration, maxRetries, rateLimit int, logger *logrus.Logger) *FPLClient {
	settings := gobreaker.Settings{
		Name: "fpl-api",
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			failureRatio := float64(counts.TotalFailures) / float64(counts.Requests)
			return counts.Requests >= 3 && failureRatio >= 0.6
		},
		OnStateChange: func(name string, from gobreaker.State, to gobreaker.State) {
			logger.WithFields(logrus.Fields{
				"component": "circuit_breaker",
				"service":   name,
				"from":      from.String(),
				"to":        to.String(),
			}).Info("Circuit breaker state changed")
		},
	}

	return &FPLClient{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: timeout},
		breaker:    gobreaker.NewCircuitBreaker(settings),
		limiter:    NewRateLimiter(rateLimit, time.Minute),
		maxRetries: maxRetries,
		logger:     logger,
	}
}

// BreakerState reports the circuit breaker state for the status endpoint.
func (c *FPLClient) BreakerState() string {
	return c.breaker.State().String()
}

// FPL bootstrap-static response structures (only the fields we consume)
type bootstrapResponse struct {
	Elements []struct {
		ID                       int    `json:"id"`
		FirstName                string `json:"first_name"`
		SecondName               string `json:"second_name"`
		Team                     int    `json:"team"`
		ElementType              int    `json:"element_type"`
		NowCost                  int    `json:"now_cost"`
		TotalPoints              int    `json:"total_points"`
		Minutes                  int    `json:"minutes"`
		SelectedByPercent        string `json:"selected_by_percent"`
		Form                     string `json:"form"`
		Status                   string `json:"status"`
		ChanceOfPlayingNextRound *int   `json:"chance_of_playing_next_round"`
	} `json:"elements"`
	Teams []struct {
		ID        int    `json:"id"`
		Name      string `json:"name"`
		ShortName string `json:"short_name"`
	} `json:"teams"`
}

type fixtureResponse struct {
	Event           *int `json:"event"` // null until the gameweek is scheduled
	TeamH           int  `json:"team_h"`
	TeamA           int  `json:"team_a"`
	TeamHDifficulty int  `json:"team_h_difficulty"`
	TeamADifficulty int  `json:"team_a_difficulty"`
	Finished        bool `json:"finished"`
	Started         bool `json:"started"`
}

type picksResponse struct {
	Picks []struct {
		Element int `json:"element"`
	} `json:"picks"`
}

// GetSnapshot fetches all players and upcoming fixtures in one pass so both
// datasets come from a consistent view of the API.
func (c *FPLClient) GetSnapshot(ctx context.Context) ([]models.Player, []models.Fixture, error) {
	var bootstrap bootstrapResponse
	if err := c.get(ctx, "/bootstrap-static/", &bootstrap); err != nil {
		return nil, nil, fmt.Errorf("failed to fetch bootstrap data: %w", err)
	}
	if len(bootstrap.Elements) == 0 {
		return nil, nil, fmt.Errorf("bootstrap data contained no players")
	}

	teamNames := make(map[int]string, len(bootstrap.Teams))
	for _, t := range bootstrap.Teams {
		teamNames[t.ID] = t.ShortName
	}

	players := make([]models.Player, 0, len(bootstrap.Elements))
	for _, e := range bootstrap.Elements {
		players = append(players, models.Player{
			ID:                e.ID,
			Name:              e.FirstName + " " + e.SecondName,
			Team:              teamNames[e.Team],
			Position:          models.ParsePosition(e.ElementType),
			Price:             e.NowCost,
			TotalPoints:       e.TotalPoints,
			GamesPlayed:       e.Minutes / 90,
			SelectedByPercent: parseFloat(e.SelectedByPercent),
			Form:              parseForm(e.Form),
			ChanceOfPlaying:   e.ChanceOfPlayingNextRound,
			Status:            models.ParseAvailabilityStatus(e.Status),
		})
	}

	var rawFixtures []fixtureResponse
	if err := c.get(ctx, "/fixtures/", &rawFixtures); err != nil {
		return nil, nil, fmt.Errorf("failed to fetch fixtures: %w", err)
	}

	fixtures := make([]models.Fixture, 0, len(rawFixtures)*2)
	for _, f := range rawFixtures {
		if f.Finished || f.Started || f.Event == nil {
			continue
		}
		// One row per participating team so lookahead counting is a plain
		// filter on the team column.
		fixtures = append(fixtures,
			models.Fixture{
				Gameweek:   *f.Event,
				Team:       teamNames[f.TeamH],
				Opponent:   teamNames[f.TeamA],
				Difficulty: f.TeamHDifficulty,
				IsHome:     true,
			},
			models.Fixture{
				Gameweek:   *f.Event,
				Team:       teamNames[f.TeamA],
				Opponent:   teamNames[f.TeamH],
				Difficulty: f.TeamADifficulty,
				IsHome:     false,
			},
		)
	}

	return players, fixtures, nil
}

// GetPlayerHistory fetches per-gameweek history for one player as raw JSON.
func (c *FPLClient) GetPlayerHistory(ctx context.Context, playerID int) (json.RawMessage, error) {
	var history json.RawMessage
	if err := c.get(ctx, fmt.Sprintf("/element-summary/%d/", playerID), &history); err != nil {
		return nil, fmt.Errorf("failed to fetch history for player %d: %w", playerID, err)
	}
	return history, nil
}

// GetManagerSquad fetches the element ids a manager picked for a gameweek.
func (c *FPLClient) GetManagerSquad(ctx context.Context, managerID, gameweek int) ([]int, error) {
	var picks picksResponse
	path := fmt.Sprintf("/entry/%d/event/%d/picks/", managerID, gameweek)
	if err := c.get(ctx, path, &picks); err != nil {
		return nil, fmt.Errorf("failed to fetch squad for manager %d: %w", managerID, err)
	}

	ids := make([]int, 0, len(picks.Picks))
	for _, p := range picks.Picks {
		ids = append(ids, p.Element)
	}
	return ids, nil
}

// get performs a rate-limited, retried GET through the circuit breaker and
// decodes the JSON body into dest.
func (c *FPLClient) get(ctx context.Context, path string, dest interface{}) error {
	if err := c.limiter.Allow(path); err != nil {
		return err
	}

	body, err := c.breaker.Execute(func() (interface{}, error) {
		var lastErr error
		for attempt := 1; attempt <= c.maxRetries; attempt++ {
			data, err := c.doRequest(ctx, path)
			if err == nil {
				return data, nil
			}
			lastErr = err
			c.logger.WithFields(logrus.Fields{
				"component": "fpl_client",
				"path":      path,
				"attempt":   attempt,
			}).Warnf("FPL API request failed: %v", err)

			if ctx.Err() != nil {
				break
			}
		}
		return nil, lastErr
	})
	if err != nil {
		return err
	}

	return json.Unmarshal(body.([]byte), dest)
}

func (c *FPLClient) doRequest(ctx context.Context, path string) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("GET %s returned status %d", path, resp.StatusCode)
	}

	return io.ReadAll(resp.Body)
}

// parseForm converts the FPL form string to a float. An empty or malformed
// value means no data, which projects as zero points.
func parseForm(s string) float64 {
	f := parseFloat(s)
	if f < 0 {
		return 0
	}
	return f
}

func parseFloat(s string) float64 {
	if s == "" {
		return 0
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0
	}
	return f
}
