package search

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"

	"github.com/arshsnaz/zidio-job-platform-sub000/internal/config"
	"github.com/arshsnaz/zidio-job-platform-sub000/internal/domain/job"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordedRequest struct {
	Method string
	Path   string
	Body   string
}

func newFakeES(t *testing.T, handle func(w http.ResponseWriter, r *http.Request)) (*JobIndex, *[]recordedRequest) {
	t.Helper()
	var mu sync.Mutex
	var reqs []recordedRequest

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		b, _ := io.ReadAll(r.Body)
		mu.Lock()
		reqs = append(reqs, recordedRequest{Method: r.Method, Path: r.URL.Path, Body: string(b)})
		mu.Unlock()

		w.Header().Set("X-Elastic-Product", "Elasticsearch")
		w.Header().Set("Content-Type", "application/json")
		handle(w, r)
	}))
	t.Cleanup(srv.Close)

	idx, err := NewJobIndex(config.SearchConfig{Addresses: []string{srv.URL}, Index: "jobs"}, nil)
	require.NoError(t, err)
	return idx, &reqs
}

func TestJobIndex_DisabledWithoutAddresses(t *testing.T) {
	idx, err := NewJobIndex(config.SearchConfig{}, nil)
	require.NoError(t, err)
	assert.False(t, idx.Enabled())

	_, err = idx.Search(context.Background(), []string{"go"}, 10)
	assert.ErrorIs(t, err, ErrDisabled)
	assert.NoError(t, idx.Index(context.Background(), job.JobPost{ID: uuid.New()}))
	assert.NoError(t, idx.Delete(context.Background(), uuid.New()))
}

func TestJobIndex_Search(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	idx, reqs := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		_, _ = io.WriteString(w, `{"hits":{"hits":[{"_id":"`+a.String()+`","_score":2.5},{"_id":"bogus"},{"_id":"`+b.String()+`","_score":1.1}]}}`)
	})

	ids, err := idx.Search(context.Background(), []string{"golang", "intern"}, 5)
	require.NoError(t, err)
	assert.Equal(t, []uuid.UUID{a, b}, ids)

	require.Len(t, *reqs, 1)
	req := (*reqs)[0]
	assert.Equal(t, "/jobs/_search", req.Path)

	var body map[string]any
	require.NoError(t, json.Unmarshal([]byte(req.Body), &body))
	assert.EqualValues(t, 5, body["size"])
	assert.True(t, strings.Contains(req.Body, `"golang intern"`))
	assert.True(t, strings.Contains(req.Body, `"OPEN"`))
}

func TestJobIndex_IndexAndDelete(t *testing.T) {
	idx, reqs := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		if r.Method == http.MethodDelete {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"result":"not_found"}`)
			return
		}
		_, _ = io.WriteString(w, `{"result":"created"}`)
	})

	id := uuid.New()
	require.NoError(t, idx.Index(context.Background(), job.JobPost{ID: id, Title: "Backend Intern", Status: job.StatusOpen}))
	require.NoError(t, idx.Delete(context.Background(), id))

	require.Len(t, *reqs, 2)
	assert.Equal(t, "/jobs/_doc/"+id.String(), (*reqs)[0].Path)
	assert.Contains(t, (*reqs)[0].Body, `"title":"Backend Intern"`)
	assert.Equal(t, http.MethodDelete, (*reqs)[1].Method)
}

func TestJobIndex_SearchError(t *testing.T) {
	idx, _ := newFakeES(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		_, _ = io.WriteString(w, `{"error":"boom"}`)
	})

	_, err := idx.Search(context.Background(), []string{"go"}, 5)
	assert.Error(t, err)
}
