package defhttp

import (
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/routegate/routegate/routedef"
)

const testPayload = `[
	{
		"id": "catalog",
		"uri": "https://catalog.example.org",
		"order": 1,
		"predicates": ["Path=/catalog/**"],
		"filters": ["StripPrefix=1"],
		"metadata": {"team": "shop"}
	}
]`

func TestDefinitions(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(testPayload))
	}))
	defer s.Close()

	c := New(Options{Address: s.URL})
	defs, err := c.Definitions()
	require.NoError(t, err)
	require.Len(t, defs, 1)

	catalog := defs[0]
	assert.Equal(t, "catalog", catalog.ID)
	assert.Equal(t, "https://catalog.example.org", catalog.URI)
	assert.Equal(t, 1, catalog.Order)
	assert.Equal(t, "shop", catalog.Metadata["team"])

	require.Len(t, catalog.Predicates, 1)
	assert.Equal(t, "Path", catalog.Predicates[0].Name)
	assert.Equal(t, "/catalog/**", catalog.Predicates[0].Args[routedef.GenKey(0)])

	require.Len(t, catalog.Filters, 1)
	assert.Equal(t, "StripPrefix", catalog.Filters[0].Name)
}

func TestRetriesTransientFailures(t *testing.T) {
	var calls int32
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if atomic.AddInt32(&calls, 1) < 3 {
			w.WriteHeader(http.StatusBadGateway)
			return
		}

		w.Write([]byte(`[{"id": "catalog"}]`))
	}))
	defer s.Close()

	c := New(Options{Address: s.URL})
	defs, err := c.Definitions()
	require.NoError(t, err)
	require.Len(t, defs, 1)
	assert.Equal(t, "catalog", defs[0].ID)
	assert.Equal(t, int32(3), atomic.LoadInt32(&calls))
}

func TestGivesUpAfterMaxRetries(t *testing.T) {
	var calls int32
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		atomic.AddInt32(&calls, 1)
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer s.Close()

	c := New(Options{Address: s.URL, MaxRetries: 1})
	_, err := c.Definitions()
	assert.Error(t, err)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}

func TestInvalidPayload(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`{"not": "an array"}`))
	}))
	defer s.Close()

	c := New(Options{Address: s.URL, MaxRetries: 1})
	_, err := c.Definitions()
	assert.Error(t, err)
}

func TestMalformedShorthandFailsTheRead(t *testing.T) {
	s := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Write([]byte(`[{"id": "bad", "filters": ["=missing-name"]}]`))
	}))
	defer s.Close()

	c := New(Options{Address: s.URL})
	_, err := c.Definitions()
	require.ErrorIs(t, err, routedef.ErrMalformedDefinition)
}
