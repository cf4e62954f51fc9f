// internal/store/elasticsearch_test.go
package store

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"youth-employment-chat/internal/catalog"
)

func newTestES(t *testing.T, handler http.HandlerFunc) *elasticsearch.Client {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handler(w, r)
	}))
	t.Cleanup(server.Close)

	client, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{server.URL}})
	require.NoError(t, err)
	return client
}

func TestElasticsearchStore_Query(t *testing.T) {
	var gotPath string
	var gotBody map[string]interface{}

	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		gotPath, _ = url.PathUnescape(r.URL.Path)
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &gotBody)

		_, _ = w.Write([]byte(`{"hits":{"hits":[
			{"_source":{"시점":"2025.05","계":4100}},
			{"_source":{"시점":"2024.05","계":4050}}
		]}}`))
	})

	s := NewElasticsearchStore(client, "kosis_")
	rows, err := s.Query(context.Background(), QuerySpec{
		Table:   "성별_첫_일자리_월평균임금",
		Filters: []catalog.Filter{{Column: "성별", Value: "계"}},
		OrderBy: "시점",
		Limit:   3,
	})
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2025.05", rows[0]["시점"])
	assert.Equal(t, float64(4100), rows[0]["계"])

	assert.Equal(t, "/kosis_성별_첫_일자리_월평균임금/_search", gotPath)
	assert.Equal(t, float64(3), gotBody["size"])

	filters := gotBody["query"].(map[string]interface{})["bool"].(map[string]interface{})["filter"].([]interface{})
	require.Len(t, filters, 1)
	term := filters[0].(map[string]interface{})["term"].(map[string]interface{})
	assert.Equal(t, "계", term["성별.keyword"])

	sort := gotBody["sort"].([]interface{})[0].(map[string]interface{})["시점"].(map[string]interface{})
	assert.Equal(t, "desc", sort["order"])
}

func TestElasticsearchStore_HistoryUsesMaxWindowAscending(t *testing.T) {
	body := buildSearchBody(QuerySpec{Table: "t", OrderBy: "시점", Ascending: true})

	assert.Equal(t, maxResultWindow, body["size"])
	sort := body["sort"].([]interface{})[0].(map[string]interface{})["시점"].(map[string]interface{})
	assert.Equal(t, "asc", sort["order"])
}

func TestElasticsearchStore_ErrorStatus(t *testing.T) {
	client := newTestES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":{"type":"index_not_found_exception"},"status":404}`))
	})

	s := NewElasticsearchStore(client, "")
	_, err := s.Query(context.Background(), QuerySpec{Table: "missing"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "elasticsearch: search missing failed")
}

func TestElasticsearchStore_InvalidSpec(t *testing.T) {
	s := NewElasticsearchStore(nil, "")
	_, err := s.Query(context.Background(), QuerySpec{})
	assert.ErrorIs(t, err, ErrInvalidQuery)
}
