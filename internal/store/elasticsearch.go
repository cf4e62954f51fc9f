// internal/store/elasticsearch.go
package store

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"

	"youth-employment-chat/internal/models"
)

// maxResultWindow is Elasticsearch's default index.max_result_window.
const maxResultWindow = 10000

// ElasticsearchStore reads statistical tables mirrored into one index per
// table. Filter columns are matched on their keyword sub-field.
type ElasticsearchStore struct {
	client      *elasticsearch.Client
	indexPrefix string
}

func NewElasticsearchStore(client *elasticsearch.Client, indexPrefix string) *ElasticsearchStore {
	return &ElasticsearchStore{client: client, indexPrefix: indexPrefix}
}

func (s *ElasticsearchStore) indexFor(table string) string {
	return strings.ToLower(s.indexPrefix + table)
}

func (s *ElasticsearchStore) Query(ctx context.Context, spec QuerySpec) ([]models.Row, error) {
	if err := spec.validate(); err != nil {
		return nil, err
	}

	body, err := json.Marshal(buildSearchBody(spec))
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: encode query %s: %w", spec.Table, err)
	}

	req := esapi.SearchRequest{
		Index: []string{s.indexFor(spec.Table)},
		Body:  bytes.NewReader(body),
	}

	res, err := req.Do(ctx, s.client)
	if err != nil {
		return nil, fmt.Errorf("elasticsearch: search %s: %w", spec.Table, err)
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("elasticsearch: search %s failed: %s", spec.Table, res.Status())
	}

	var r struct {
		Hits struct {
			Hits []struct {
				Source map[string]interface{} `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, fmt.Errorf("elasticsearch: decode %s: %w", spec.Table, err)
	}

	out := make([]models.Row, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		if hit.Source == nil {
			continue
		}
		out = append(out, models.Row(hit.Source))
	}
	return out, nil
}

func buildSearchBody(spec QuerySpec) map[string]interface{} {
	filters := make([]interface{}, 0, len(spec.Filters))
	for _, f := range spec.Filters {
		filters = append(filters, map[string]interface{}{
			"term": map[string]interface{}{f.Column + ".keyword": f.Value},
		})
	}

	size := spec.Limit
	if size <= 0 {
		size = maxResultWindow
	}

	body := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{"filter": filters},
		},
		"size": size,
	}

	if spec.OrderBy != "" {
		order := "desc"
		if spec.Ascending {
			order = "asc"
		}
		body["sort"] = []interface{}{
			map[string]interface{}{spec.OrderBy: map[string]interface{}{"order": order}},
		}
	}

	return body
}
