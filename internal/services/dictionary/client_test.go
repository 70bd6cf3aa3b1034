package dictionary

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/ternarybob/arbor"

	"github.com/ternarybob/lumen/internal/common"
	"github.com/ternarybob/lumen/internal/interfaces"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	return NewClient(&common.DictionaryConfig{
		Endpoint: server.URL,
		Timeout:  "5s",
	}, arbor.NewLogger())
}

func TestLookupFirstDefinition(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/hypertension", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"word":"hypertension","meanings":[
			{"partOfSpeech":"noun","definitions":[
				{"definition":"Abnormally high blood pressure."},
				{"definition":"A second definition."}]}]}]`))
	})

	definition, err := client.Lookup(context.Background(), "hypertension")
	require.NoError(t, err)
	assert.Equal(t, "Abnormally high blood pressure.", definition)
}

func TestLookupUnknownTerm(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"title":"No Definitions Found"}`, http.StatusNotFound)
	})

	_, err := client.Lookup(context.Background(), "zyzzogeton")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrNoDefinition))
}

func TestLookupEmptyMeanings(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"word":"sparse","meanings":[]}]`))
	})

	_, err := client.Lookup(context.Background(), "sparse")
	require.Error(t, err)
	assert.True(t, errors.Is(err, interfaces.ErrNoDefinition))
}

func TestLookupServerError(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "internal error", http.StatusInternalServerError)
	})

	_, err := client.Lookup(context.Background(), "hypertension")
	require.Error(t, err)
	assert.False(t, errors.Is(err, interfaces.ErrNoDefinition))
}
