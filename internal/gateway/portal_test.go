package gateway

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const timeDetailsPage = `
<html><body><table>
<tr><th>#</th><th>Title</th><th>Start</th><th>End</th><th>Duration</th></tr>
<tr><td>1</td><td><a href="#">C-Returns_EndofLine</a></td><td>08:00</td><td>10:00</td><td>2h 0m</td></tr>
</table></body></html>`

func newPortal(t *testing.T, handler http.Handler) *HTTPPortal {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewHTTPPortal(Config{
		Endpoint:    srv.URL,
		WarehouseID: "IND8",
		TimeoutMs:   2000,
		MaxRetries:  1,
	}, NoopObserver{})
}

func TestFetchSessions(t *testing.T) {
	portal := newPortal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/employee/timeDetailsForEmployee", r.URL.Path)
		assert.Equal(t, "13525472", r.URL.Query().Get("employeeId"))
		assert.Equal(t, "IND8", r.URL.Query().Get("warehouseId"))
		w.Write([]byte(timeDetailsPage))
	}))

	report, err := portal.FetchSessions(context.Background(), "13525472")
	require.NoError(t, err)
	assert.Equal(t, "13525472", report.EmployeeID)
	require.Len(t, report.Sessions, 1)
	assert.Equal(t, "C-Returns_EndofLine", report.Sessions[0].Title)
}

func TestFetchSessions_NotFound(t *testing.T) {
	portal := newPortal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))

	_, err := portal.FetchSessions(context.Background(), "999")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestFetchSessions_TransientUnavailable(t *testing.T) {
	portal := newPortal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))

	_, err := portal.FetchSessions(context.Background(), "123")
	assert.ErrorIs(t, err, ErrPortalUnavailable)
}

func TestFetchSessions_RetriesThenSucceeds(t *testing.T) {
	calls := 0
	portal := newPortal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if calls == 1 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		w.Write([]byte(timeDetailsPage))
	}))

	report, err := portal.FetchSessions(context.Background(), "123")
	require.NoError(t, err)
	assert.Len(t, report.Sessions, 1)
	assert.Equal(t, 2, calls)
}

func TestFetchSessions_EmptyPageIsNotAnError(t *testing.T) {
	portal := newPortal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("<html><body>navigating</body></html>"))
	}))

	report, err := portal.FetchSessions(context.Background(), "123")
	require.NoError(t, err)
	assert.Empty(t, report.Sessions)
}

func TestFetchRoster(t *testing.T) {
	portal := newPortal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/reports/functionRollup", r.URL.Path)
		w.Write([]byte(`
<table>
<tr><th>Employee ID</th><th>Name</th><th>Hours</th></tr>
<tr><td>111983827</td><td>Doe, Jordan</td><td>2.0</td></tr>
</table>`))
	}))

	roster, err := portal.FetchRoster(context.Background(), []string{"C-Returns_EndofLine"})
	require.NoError(t, err)
	require.Len(t, roster["C-Returns_EndofLine"], 1)
	assert.InDelta(t, 120.0, roster["C-Returns_EndofLine"][0].Minutes, 0.001)
}

func TestAvailable(t *testing.T) {
	portal := newPortal(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))
	assert.True(t, portal.Available(context.Background()))

	down := NewHTTPPortal(Config{Endpoint: "http://127.0.0.1:1", TimeoutMs: 200}, nil)
	assert.False(t, down.Available(context.Background()))
}
