package models

// Filter enum values accepted by the search API.
const (
	TimeOfDayDay   = "day"
	TimeOfDayNight = "night"
	TimeOfDayDawn  = "dawn"
	TimeOfDayDusk  = "dusk"

	WeatherClear    = "clear"
	WeatherRain     = "rain"
	WeatherFog      = "fog"
	WeatherSnow     = "snow"
	WeatherOvercast = "overcast"

	CameraFront = "front"
	CameraRear  = "rear"
	CameraLeft  = "left"
	CameraRight = "right"
)

// SearchFilters narrows a search to matching capture conditions.
// Empty fields mean "any".
type SearchFilters struct {
	TimeOfDay string `json:"time_of_day,omitempty"`
	Weather   string `json:"weather,omitempty"`
	Camera    string `json:"camera,omitempty"`
}

// SearchRequest is the JSON body for text search. Image search sends the
// same fields as multipart form values alongside the image part.
type SearchRequest struct {
	Query               string        `json:"query"`
	Limit               int           `json:"limit"`
	SimilarityThreshold float64       `json:"similarity_threshold"`
	Filters             SearchFilters `json:"filters"`
}

// SearchResult is a single matched frame as returned by the backend.
type SearchResult struct {
	FrameID          int               `json:"frame_id"`
	VideoID          int               `json:"video_id"`
	VideoFilename    string            `json:"video_filename,omitempty"`
	TimestampSeconds float64           `json:"timestamp"`
	Similarity       float64           `json:"similarity"`
	ImageURL         string            `json:"image_url"`
	Metadata         map[string]string `json:"metadata,omitempty"`
}

// SearchResponse is the backend search response body. Results are ordered
// by descending similarity.
type SearchResponse struct {
	Results      []SearchResult `json:"results"`
	TotalFound   int            `json:"total_found"`
	SearchTimeMs int64          `json:"search_time_ms"`
}

// Video is an entry in the footage library.
type Video struct {
	ID              int     `json:"id"`
	Filename        string  `json:"filename"`
	DurationSeconds float64 `json:"duration_seconds"`
	FrameCount      int     `json:"frame_count"`
	Status          string  `json:"status"`
}

// VideoListResponse is the body of GET /api/v1/videos.
type VideoListResponse struct {
	Videos []Video `json:"videos"`
	Total  int     `json:"total"`
}

// HealthStatus is the body of GET /health.
type HealthStatus struct {
	Status  string `json:"status"`
	Version string `json:"version,omitempty"`
}

// ErrorResponse is the JSON error body returned by the backend.
type ErrorResponse struct {
	Error string `json:"error"`
}
