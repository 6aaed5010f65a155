package demo

import (
	"bytes"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roadsight/roadsight-go/models"
)

func testHandler() *Handler {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return NewHandler(NewStore("/frames"), log)
}

func TestHandler_SearchText(t *testing.T) {
	h := testHandler()

	body, _ := json.Marshal(models.SearchRequest{
		Query:               "cars turning left",
		Limit:               10,
		SimilarityThreshold: 0.2,
	})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/text", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.SearchText(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	require.Len(t, resp.Results, 2)
	assert.Equal(t, 2, resp.TotalFound)
	assert.InDelta(t, 0.94, resp.Results[0].Similarity, 1e-9)
}

func TestHandler_SearchText_BadBody(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/text", strings.NewReader("{broken"))
	rec := httptest.NewRecorder()
	h.SearchText(rec, req)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_SearchText_EmptyQuery(t *testing.T) {
	h := testHandler()

	body, _ := json.Marshal(models.SearchRequest{Query: ""})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/text", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.SearchText(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	var er models.ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &er))
	assert.Equal(t, "query is required", er.Error)
}

func TestHandler_SearchText_ClampsLimit(t *testing.T) {
	h := testHandler()

	body, _ := json.Marshal(models.SearchRequest{Query: "highway", Limit: 500})
	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/text", bytes.NewReader(body))
	rec := httptest.NewRecorder()
	h.SearchText(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.LessOrEqual(t, len(resp.Results), 20)
}

func TestHandler_SearchImage(t *testing.T) {
	h := testHandler()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("image", "query.png")
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG\r\n\x1a\nfakepixels"))
	require.NoError(t, err)
	require.NoError(t, w.WriteField("limit", "3"))
	require.NoError(t, w.WriteField("similarity_threshold", "0.5"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.SearchImage(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.SearchResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.LessOrEqual(t, len(resp.Results), 3)
	require.NotEmpty(t, resp.Results)
	for _, r := range resp.Results {
		assert.GreaterOrEqual(t, r.Similarity, 0.5)
	}
}

func TestHandler_SearchImage_MissingFile(t *testing.T) {
	h := testHandler()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	require.NoError(t, w.WriteField("limit", "3"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/v1/search/image", &buf)
	req.Header.Set("Content-Type", w.FormDataContentType())
	rec := httptest.NewRecorder()
	h.SearchImage(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandler_ListVideos(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/api/v1/videos", nil)
	rec := httptest.NewRecorder()
	h.ListVideos(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var resp models.VideoListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, len(resp.Videos), resp.Total)
	assert.NotEmpty(t, resp.Videos)
}

func TestHandler_Health(t *testing.T) {
	h := testHandler()

	req := httptest.NewRequest(http.MethodGet, "/health", nil)
	rec := httptest.NewRecorder()
	h.Health(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var status models.HealthStatus
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &status))
	assert.Equal(t, "ok", status.Status)
	assert.Equal(t, Version, status.Version)
}
