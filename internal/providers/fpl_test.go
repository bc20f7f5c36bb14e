package providers

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fpltools/fpl-transfer-analyzer/internal/models"
)

const bootstrapBody = `{
	"teams": [
		{"id": 1, "name": "Arsenal", "short_name": "ARS"},
		{"id": 2, "name": "Chelsea", "short_name": "CHE"}
	],
	"elements": [
		{
			"id": 100, "first_name": "Bukayo", "second_name": "Saka",
			"team": 1, "element_type": 3, "now_cost": 105,
			"total_points": 180, "minutes": 2700,
			"selected_by_percent": "45.3", "form": "6.5", "status": "a",
			"chance_of_playing_next_round": null
		},
		{
			"id": 200, "first_name": "Cole", "second_name": "Palmer",
			"team": 2, "element_type": 3, "now_cost": 110,
			"total_points": 150, "minutes": 1800,
			"selected_by_percent": "", "form": "", "status": "i",
			"chance_of_playing_next_round": 25
		}
	]
}`

const fixturesBody = `[
	{"event": 30, "team_h": 1, "team_a": 2, "team_h_difficulty": 3, "team_a_difficulty": 4, "finished": false, "started": false},
	{"event": 29, "team_h": 2, "team_a": 1, "team_h_difficulty": 2, "team_a_difficulty": 2, "finished": true, "started": true},
	{"event": null, "team_h": 1, "team_a": 2, "team_h_difficulty": 1, "team_a_difficulty": 1, "finished": false, "started": false}
]`

func newTestClient(t *testing.T, handler http.Handler) (*FPLClient, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	logger := logrus.New()
	logger.SetLevel(logrus.ErrorLevel)
	return NewFPLClient(server.URL, 2*time.Second, 3, 100, logger), server
}

func TestGetSnapshot(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/bootstrap-static/":
			w.Write([]byte(bootstrapBody))
		case "/fixtures/":
			w.Write([]byte(fixturesBody))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))

	players, fixtures, err := client.GetSnapshot(context.Background())
	require.NoError(t, err)
	require.Len(t, players, 2)

	saka := players[0]
	assert.Equal(t, 100, saka.ID)
	assert.Equal(t, "Bukayo Saka", saka.Name)
	assert.Equal(t, "ARS", saka.Team)
	assert.Equal(t, models.PositionMidfielder, saka.Position)
	assert.Equal(t, 105, saka.Price)
	assert.Equal(t, 30, saka.GamesPlayed)
	assert.Equal(t, 45.3, saka.SelectedByPercent)
	assert.Equal(t, 6.5, saka.Form)
	assert.Equal(t, models.StatusAvailable, saka.Status)
	assert.Nil(t, saka.ChanceOfPlaying)

	palmer := players[1]
	assert.Equal(t, models.StatusInjured, palmer.Status)
	assert.Zero(t, palmer.Form, "empty form string means no data")
	require.NotNil(t, palmer.ChanceOfPlaying)
	assert.Equal(t, 25, *palmer.ChanceOfPlaying)

	// Finished, started, and undated fixtures are dropped; the remaining
	// fixture yields one row per team.
	require.Len(t, fixtures, 2)
	assert.Equal(t, "ARS", fixtures[0].Team)
	assert.Equal(t, "CHE", fixtures[0].Opponent)
	assert.True(t, fixtures[0].IsHome)
	assert.Equal(t, 3, fixtures[0].Difficulty)
	assert.Equal(t, "CHE", fixtures[1].Team)
	assert.False(t, fixtures[1].IsHome)
	assert.Equal(t, 4, fixtures[1].Difficulty)
	assert.Equal(t, 30, fixtures[1].Gameweek)
}

func TestGetSnapshotEmptyElements(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"teams": [], "elements": []}`))
	}))

	_, _, err := client.GetSnapshot(context.Background())
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "no players")
}

func TestGetRetriesOnServerError(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(bootstrapBody))
	}))

	var resp bootstrapResponse
	err := client.get(context.Background(), "/bootstrap-static/", &resp)
	require.NoError(t, err)
	assert.Equal(t, 3, attempts)
	assert.Len(t, resp.Elements, 2)
}

func TestGetExhaustsRetries(t *testing.T) {
	attempts := 0
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusInternalServerError)
	}))

	var resp bootstrapResponse
	err := client.get(context.Background(), "/bootstrap-static/", &resp)
	assert.Error(t, err)
	assert.Equal(t, 3, attempts)
}

func TestGetManagerSquad(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/entry/7/event/30/picks/", r.URL.Path)
		w.Write([]byte(`{"picks": [{"element": 100}, {"element": 200}]}`))
	}))

	ids, err := client.GetManagerSquad(context.Background(), 7, 30)
	require.NoError(t, err)
	assert.Equal(t, []int{100, 200}, ids)
}

func TestParseForm(t *testing.T) {
	assert.Equal(t, 4.2, parseForm("4.2"))
	assert.Zero(t, parseForm(""))
	assert.Zero(t, parseForm("not-a-number"))
	assert.Zero(t, parseForm("-1.5"), "negative form is clamped to no data")
}
