package client

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skridlevsky/pkmthulhu/types"
)

func TestQ_SendsMethodArgsAndAuth(t *testing.T) {
	var gotAuth string
	var gotReq types.LogseqAPIRequest

	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotReq))
		w.Write([]byte(`[{"id": 1, "content": "hello"}]`))
	}))
	defer ts.Close()

	c := New(ts.URL, "secret", zerolog.Nop())
	records, err := c.Q(context.Background(), `(page "Test")`)
	require.NoError(t, err)

	assert.Equal(t, "Bearer secret", gotAuth)
	assert.Equal(t, "logseq.DB.q", gotReq.Method)
	require.Len(t, gotReq.Args, 1)
	assert.Equal(t, `(page "Test")`, gotReq.Args[0])

	require.Len(t, records, 1)
	assert.Equal(t, 1, records[0].ID)
	assert.Equal(t, "hello", records[0].Content)
}

func TestQ_NullResponseIsEmpty(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`null`))
	}))
	defer ts.Close()

	c := New(ts.URL, "secret", zerolog.Nop())
	records, err := c.Q(context.Background(), "(task TODO)")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestCall_UnauthorizedIsPermanent(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := New(ts.URL, "bad-token", zerolog.Nop())
	_, err := c.Q(context.Background(), "(task TODO)")

	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Equal(t, 1, attempts, "401 must not be retried")
}

func TestCall_ClientErrorIsPermanent(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadRequest)
		w.Write([]byte("bad query"))
	}))
	defer ts.Close()

	c := New(ts.URL, "secret", zerolog.Nop())
	_, err := c.Q(context.Background(), "(nonsense")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "400")
	assert.Equal(t, 1, attempts, "4xx must not be retried")
}

func TestCall_ServerErrorIsRetried(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		if attempts < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.Write([]byte(`[]`))
	}))
	defer ts.Close()

	c := New(ts.URL, "secret", zerolog.Nop())
	records, err := c.Q(context.Background(), "(task TODO)")

	require.NoError(t, err)
	assert.Empty(t, records)
	assert.Equal(t, 3, attempts)
}

func TestCall_GivesUpAfterMaxRetries(t *testing.T) {
	attempts := 0
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		attempts++
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer ts.Close()

	c := New(ts.URL, "secret", zerolog.Nop())
	_, err := c.Q(context.Background(), "(task TODO)")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "502")
	assert.Equal(t, maxRetries+1, attempts)
}

func TestCall_ContextCancelStopsRetries(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer ts.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	c := New(ts.URL, "secret", zerolog.Nop())
	_, err := c.Q(ctx, "(task TODO)")

	require.ErrorIs(t, err, context.Canceled)
}

func TestCall_NoTokenOmitsAuthHeader(t *testing.T) {
	var gotAuth string
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		w.Write([]byte(`{}`))
	}))
	defer ts.Close()

	t.Setenv("LOGSEQ_API_KEY", "")

	c := New(ts.URL, "", zerolog.Nop())
	require.NoError(t, c.Ping(context.Background()))
	assert.Empty(t, gotAuth)
}

func TestPing_ReportsFailure(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer ts.Close()

	c := New(ts.URL, "bad-token", zerolog.Nop())
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnauthorized)
}
