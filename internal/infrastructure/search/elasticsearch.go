package search

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/config"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/pkg/logger"

	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultIndex = "job_posts"

var ErrDisabled = errors.New("search index disabled")

// JobDocument is the indexed shape of a job post.
type JobDocument struct {
	ID          string    `json:"id"`
	Title       string    `json:"title"`
	Description string    `json:"description"`
	Type        string    `json:"type"`
	Location    string    `json:"location"`
	CompanyName string    `json:"company_name"`
	Stipend     string    `json:"stipend"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}

func DocumentFromJob(j job.JobPost) JobDocument {
	return JobDocument{
		ID:          j.ID.String(),
		Title:       j.Title,
		Description: j.Description,
		Type:        j.Type,
		Location:    j.Location,
		CompanyName: j.CompanyName,
		Stipend:     j.Stipend,
		Status:      string(j.Status),
		CreatedAt:   j.CreatedAt,
	}
}

// JobIndex keeps job posts searchable in Elasticsearch. A JobIndex built
// without addresses is disabled and every call returns ErrDisabled or no-ops.
type JobIndex struct {
	client *elasticsearch.Client
	index  string
	log    *zap.Logger
}

func NewJobIndex(cfg config.SearchConfig, log *zap.Logger) (*JobIndex, error) {
	log = logger.OrNop(log)
	index := strings.TrimSpace(cfg.Index)
	if index == "" {
		index = defaultIndex
	}
	if len(cfg.Addresses) == 0 {
		log.Info("elasticsearch disabled, no addresses configured")
		return &JobIndex{index: index, log: log}, nil
	}

	esCfg := elasticsearch.Config{Addresses: cfg.Addresses}
	if cfg.Username != "" {
		esCfg.Username = cfg.Username
		esCfg.Password = cfg.Password
	}
	es, err := elasticsearch.NewClient(esCfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create elasticsearch client: %w", err)
	}
	return &JobIndex{client: es, index: index, log: log}, nil
}

func (x *JobIndex) Enabled() bool {
	return x != nil && x.client != nil
}

func (x *JobIndex) Ping(ctx context.Context) error {
	if !x.Enabled() {
		return ErrDisabled
	}
	res, err := x.client.Ping(x.client.Ping.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("elasticsearch ping failed: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("elasticsearch ping error: %s", res.Status())
	}
	return nil
}

const indexMapping = `{
	"mappings": {
		"properties": {
			"id": {"type": "keyword"},
			"title": {"type": "text"},
			"description": {"type": "text"},
			"type": {"type": "text", "fields": {"raw": {"type": "keyword"}}},
			"location": {"type": "text", "fields": {"raw": {"type": "keyword"}}},
			"company_name": {"type": "text"},
			"stipend": {"type": "keyword"},
			"status": {"type": "keyword"},
			"created_at": {"type": "date"}
		}
	}
}`

// EnsureIndex creates the index with its mapping when it does not exist.
func (x *JobIndex) EnsureIndex(ctx context.Context) error {
	if !x.Enabled() {
		return nil
	}
	res, err := x.client.Indices.Exists([]string{x.index}, x.client.Indices.Exists.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("check index: %w", err)
	}
	res.Body.Close()
	if res.StatusCode == http.StatusOK {
		return nil
	}

	res, err = x.client.Indices.Create(x.index,
		x.client.Indices.Create.WithContext(ctx),
		x.client.Indices.Create.WithBody(strings.NewReader(indexMapping)),
	)
	if err != nil {
		return fmt.Errorf("create index: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("create index: %s", res.Status())
	}
	x.log.Info("elasticsearch index created", zap.String("index", x.index))
	return nil
}

func (x *JobIndex) Index(ctx context.Context, j job.JobPost) error {
	if !x.Enabled() {
		return nil
	}
	body, err := json.Marshal(DocumentFromJob(j))
	if err != nil {
		return err
	}
	res, err := x.client.Index(x.index, bytes.NewReader(body),
		x.client.Index.WithContext(ctx),
		x.client.Index.WithDocumentID(j.ID.String()),
		x.client.Index.WithRefresh("true"),
	)
	if err != nil {
		return fmt.Errorf("index job: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return fmt.Errorf("index job: %s", res.Status())
	}
	return nil
}

func (x *JobIndex) Delete(ctx context.Context, id uuid.UUID) error {
	if !x.Enabled() {
		return nil
	}
	res, err := x.client.Delete(x.index, id.String(), x.client.Delete.WithContext(ctx))
	if err != nil {
		return fmt.Errorf("delete job document: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() && res.StatusCode != http.StatusNotFound {
		return fmt.Errorf("delete job document: %s", res.Status())
	}
	return nil
}

type searchResponse struct {
	Hits struct {
		Hits []struct {
			ID    string  `json:"_id"`
			Score float64 `json:"_score"`
		} `json:"hits"`
	} `json:"hits"`
}

// BuildQuery matches any of the keywords against the text fields of open job posts.
func BuildQuery(keywords []string, size int) map[string]any {
	return map[string]any{
		"size": size,
		"query": map[string]any{
			"bool": map[string]any{
				"must": map[string]any{
					"multi_match": map[string]any{
						"query":    strings.Join(keywords, " "),
						"fields":   []string{"title^3", "type^2", "location^2", "company_name", "description"},
						"operator": "or",
					},
				},
				"filter": []any{
					map[string]any{"term": map[string]any{"status": string(job.StatusOpen)}},
				},
			},
		},
	}
}

// Search returns matching job IDs ordered by relevance.
func (x *JobIndex) Search(ctx context.Context, keywords []string, size int) ([]uuid.UUID, error) {
	if !x.Enabled() {
		return nil, ErrDisabled
	}
	if size <= 0 {
		size = 20
	}
	body, err := json.Marshal(BuildQuery(keywords, size))
	if err != nil {
		return nil, err
	}

	req := esapi.SearchRequest{
		Index: []string{x.index},
		Body:  bytes.NewReader(body),
	}
	res, err := req.Do(ctx, x.client)
	if err != nil {
		return nil, fmt.Errorf("search jobs: %w", err)
	}
	defer res.Body.Close()
	if res.IsError() {
		return nil, fmt.Errorf("search jobs: %s", res.Status())
	}

	var parsed searchResponse
	if err := json.NewDecoder(res.Body).Decode(&parsed); err != nil {
		return nil, fmt.Errorf("decode search response: %w", err)
	}

	ids := make([]uuid.UUID, 0, len(parsed.Hits.Hits))
	for _, h := range parsed.Hits.Hits {
		id, err := uuid.Parse(h.ID)
		if err != nil {
			x.log.Warn("skipping search hit with invalid id", zap.String("id", h.ID))
			continue
		}
		ids = append(ids, id)
	}
	return ids, nil
}
