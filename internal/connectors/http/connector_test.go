package httpconnector

import (
	"context"
	"io"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gamemaster/internal/config"
)

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(req *http.Request) (*http.Response, error) {
	return f(req)
}

func respond(status int, body string) *http.Response {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(strings.NewReader(body)),
		Header:     make(http.Header),
	}
}

func testConfig() config.Config {
	return config.Config{
		GameMasterURL:   "https://example.test/latest.json",
		FetchTimeoutMs:  1000,
		FetchMaxRetries: 3,
		FetchBackoffMs:  1,
	}
}

func TestFetchRetriesServerErrors(t *testing.T) {
	attempt := 0
	conn, err := NewConnector(testConfig())
	require.NoError(t, err)
	conn.httpClient = &http.Client{
		Transport: roundTripFunc(func(r *http.Request) (*http.Response, error) {
			assert.Equal(t, "/latest.json", r.URL.Path)
			attempt++
			if attempt < 3 {
				return respond(http.StatusServiceUnavailable, `busy`), nil
			}
			return respond(http.StatusOK, `[{"templateId":"V0001_POKEMON_BULBASAUR"}]`), nil
		}),
	}

	body, err := conn.Fetch(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, attempt)
	assert.Contains(t, string(body), "BULBASAUR")
}

func TestFetchDoesNotRetryClientErrors(t *testing.T) {
	attempt := 0
	conn, err := NewConnector(testConfig())
	require.NoError(t, err)
	conn.httpClient = &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			attempt++
			return respond(http.StatusNotFound, `missing`), nil
		}),
	}

	_, err = conn.Fetch(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "status 404")
	assert.Equal(t, 1, attempt)
}

func TestFetchGivesUpAfterMaxRetries(t *testing.T) {
	attempt := 0
	conn, err := NewConnector(testConfig())
	require.NoError(t, err)
	conn.httpClient = &http.Client{
		Transport: roundTripFunc(func(*http.Request) (*http.Response, error) {
			attempt++
			return respond(http.StatusBadGateway, ``), nil
		}),
	}

	_, err = conn.Fetch(context.Background())
	require.Error(t, err)
	assert.Equal(t, 4, attempt)
}

func TestNewConnectorRequiresURL(t *testing.T) {
	cfg := testConfig()
	cfg.GameMasterURL = ""
	_, err := NewConnector(cfg)
	assert.Error(t, err)
}
