package httpapi

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/riskibarqy/event-scoring/internal/usecase"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadParams_BodyOverridesQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/score?action=get_event_teams&event_id=3", strings.NewReader(`{"action":"add_team","name":"Blue"}`))
	p, err := readParams(httptest.NewRecorder(), req)
	require.NoError(t, err)

	assert.Equal(t, "add_team", p.str("action"))
	assert.Equal(t, "Blue", p.str("name"))
	assert.Equal(t, "3", p.str("event_id"))
	assert.True(t, p.has("event_id"))
	assert.False(t, p.has("id"))
}

func TestReadParams_IgnoresBodyOnGet(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/event?id=9", strings.NewReader(`{"id":1}`))
	p, err := readParams(httptest.NewRecorder(), req)
	require.NoError(t, err)

	q, err := p.ids()
	require.NoError(t, err)
	assert.Equal(t, int64(9), q.ID)
}

func TestReadParams_EmptyBody(t *testing.T) {
	req := httptest.NewRequest(http.MethodDelete, "/team?id=4", nil)
	p, err := readParams(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Equal(t, "4", p.str("id"))

	req = httptest.NewRequest(http.MethodPost, "/team", nil)
	p, err = readParams(httptest.NewRecorder(), req)
	require.NoError(t, err)
	assert.Empty(t, p)
}

func TestReadParams_RejectsInvalidJSON(t *testing.T) {
	req := httptest.NewRequest(http.MethodPut, "/event?id=1", strings.NewReader(`{"name":`))
	_, err := readParams(httptest.NewRecorder(), req)
	require.Error(t, err)
	assert.True(t, errors.Is(err, usecase.ErrInvalidInput))

	msg, ok := usecase.ClientMessage(err)
	require.True(t, ok)
	assert.Equal(t, "Invalid JSON payload", msg)
}

func TestReadParams_RejectsOversizedBody(t *testing.T) {
	body := `{"notes":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	req := httptest.NewRequest(http.MethodPost, "/score", strings.NewReader(body))
	_, err := readParams(httptest.NewRecorder(), req)
	require.Error(t, err)

	msg, _ := usecase.ClientMessage(err)
	assert.Equal(t, "Request body too large", msg)
}

func TestParams_DecodeAcceptsNumericStrings(t *testing.T) {
	p := params{
		"activity_id": "12",
		"team_id":     float64(4),
		"category_id": "7",
		"score_value": "8.5",
	}

	var in usecase.SubmitScoreInput
	require.NoError(t, p.decode(&in))
	assert.Equal(t, int64(12), in.ActivityID)
	assert.Equal(t, int64(4), in.TeamID)
	assert.Equal(t, int64(7), in.CategoryID)
	require.NotNil(t, in.ScoreValue)
	assert.Equal(t, 8.5, *in.ScoreValue)
}

func TestParams_IDsRejectsGarbage(t *testing.T) {
	_, err := params{"event_id": "seven"}.ids()
	require.Error(t, err)

	msg, _ := usecase.ClientMessage(err)
	assert.Equal(t, "Invalid id parameter", msg)
}

func TestParams_Str(t *testing.T) {
	p := params{"search": "  ali  ", "n": float64(3), "flag": true}
	assert.Equal(t, "ali", p.str("search"))
	assert.Equal(t, "3", p.str("n"))
	assert.Equal(t, "true", p.str("flag"))
	assert.Equal(t, "", p.str("missing"))
}
