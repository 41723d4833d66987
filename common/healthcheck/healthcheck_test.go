package healthcheck_test

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/bytearena/sightline/common/healthcheck"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandler(t *testing.T) {
	server := healthcheck.NewHealthCheckServer()
	server.Register("venues", func() error { return nil })

	rec := httptest.NewRecorder()
	server.Handler()(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rec.Code)

	var res healthcheck.HealthCheckHttpResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	require.Len(t, res.Checks, 1)
	assert.Equal(t, "venues", res.Checks[0].Name)
	assert.True(t, res.Checks[0].Status)

	server.Register("settings", func() error { return errors.New("invalid cone") })

	rec = httptest.NewRecorder()
	server.Handler()(rec, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &res))
	assert.Len(t, res.Checks, 2)
	assert.Equal(t, "invalid cone", res.Checks[1].Error)
}
