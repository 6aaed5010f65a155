package demo

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/sirupsen/logrus"

	"github.com/roadsight/roadsight-go/models"
)

// Version reported by the health endpoint.
const Version = "0.3.0"

// maxImageUpload bounds multipart image bodies, matching the client-side
// ceiling.
const maxImageUpload = 10 << 20

// Handler serves the backend API surface from the sample dataset so the
// CLI and SDK can be exercised without a live backend.
type Handler struct {
	store *Store
	log   *logrus.Logger
}

func NewHandler(store *Store, log *logrus.Logger) *Handler {
	return &Handler{store: store, log: log}
}

// SearchText handles POST /api/v1/search/text.
func (h *Handler) SearchText(w http.ResponseWriter, r *http.Request) {
	var req models.SearchRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	if req.Query == "" {
		writeError(w, http.StatusBadRequest, "query is required")
		return
	}
	clampRequest(&req)

	resp := h.store.Search(req)
	h.log.WithFields(logrus.Fields{
		"query":   req.Query,
		"results": len(resp.Results),
	}).Info("text search")
	writeJSON(w, http.StatusOK, resp)
}

// SearchImage handles POST /api/v1/search/image. The demo store has no
// embeddings, so the image only gates validation; matching falls back to
// the canned ordering with the requested limit and threshold applied.
func (h *Handler) SearchImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImageUpload); err != nil {
		writeError(w, http.StatusBadRequest, "invalid multipart body")
		return
	}
	file, _, err := r.FormFile("image")
	if err != nil {
		writeError(w, http.StatusBadRequest, "image file is required")
		return
	}
	defer file.Close()

	req := models.SearchRequest{
		Limit:               formInt(r, "limit", 10),
		SimilarityThreshold: formFloat(r, "similarity_threshold", 0),
		Filters: models.SearchFilters{
			TimeOfDay: r.FormValue("time_of_day"),
			Weather:   r.FormValue("weather"),
			Camera:    r.FormValue("camera"),
		},
	}
	clampRequest(&req)

	resp := h.store.Search(req)
	h.log.WithField("results", len(resp.Results)).Info("image search")
	writeJSON(w, http.StatusOK, resp)
}

// ListVideos handles GET /api/v1/videos.
func (h *Handler) ListVideos(w http.ResponseWriter, r *http.Request) {
	vids := Videos()
	writeJSON(w, http.StatusOK, models.VideoListResponse{Videos: vids, Total: len(vids)})
}

// Health handles GET /health.
func (h *Handler) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.HealthStatus{Status: "ok", Version: Version})
}

func clampRequest(req *models.SearchRequest) {
	if req.Limit <= 0 {
		req.Limit = 10
	}
	if req.Limit > 20 {
		req.Limit = 20
	}
	if req.SimilarityThreshold < 0 {
		req.SimilarityThreshold = 0
	}
	if req.SimilarityThreshold > 1 {
		req.SimilarityThreshold = 1
	}
}

func formInt(r *http.Request, key string, fallback int) int {
	v := r.FormValue(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func formFloat(r *http.Request, key string, fallback float64) float64 {
	v := r.FormValue(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, models.ErrorResponse{Error: msg})
}
