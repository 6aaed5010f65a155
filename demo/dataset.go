package demo

import "github.com/roadsight/roadsight-go/models"

// The pre-baked sample footage used for offline demos and client-side
// fallback. Scores and frame counts are fabricated; they exist so the
// product stays presentable without a live backend.

// Frame is one indexed sample frame.
type Frame struct {
	FrameID          int
	VideoID          int
	TimestampSeconds float64
	Tags             []string
	TimeOfDay        string
	Weather          string
	Camera           string
	BaseScore        float64
}

var videos = []models.Video{
	{ID: 1, Filename: "night_drive_highway.mp4", DurationSeconds: 312.4, FrameCount: 9372, Status: "indexed"},
	{ID: 2, Filename: "rain_city_intersection.mp4", DurationSeconds: 188.0, FrameCount: 5640, Status: "indexed"},
	{ID: 3, Filename: "suburban_left_turns.mp4", DurationSeconds: 421.7, FrameCount: 12651, Status: "indexed"},
	{ID: 4, Filename: "fog_mountain_pass.mp4", DurationSeconds: 265.2, FrameCount: 7956, Status: "indexed"},
	{ID: 5, Filename: "downtown_pedestrians.mp4", DurationSeconds: 154.9, FrameCount: 4647, Status: "indexed"},
	{ID: 6, Filename: "highway_merge_dusk.mp4", DurationSeconds: 233.6, FrameCount: 7008, Status: "processing"},
}

var frames = []Frame{
	{FrameID: 101, VideoID: 1, TimestampSeconds: 42.5, Tags: []string{"highway", "night", "truck", "overtaking"}, TimeOfDay: models.TimeOfDayNight, Weather: models.WeatherClear, Camera: models.CameraFront, BaseScore: 0.93},
	{FrameID: 102, VideoID: 1, TimestampSeconds: 128.0, Tags: []string{"highway", "night", "lane", "change"}, TimeOfDay: models.TimeOfDayNight, Weather: models.WeatherClear, Camera: models.CameraFront, BaseScore: 0.88},
	{FrameID: 103, VideoID: 1, TimestampSeconds: 284.1, Tags: []string{"highway", "night", "exit", "ramp"}, TimeOfDay: models.TimeOfDayNight, Weather: models.WeatherClear, Camera: models.CameraRight, BaseScore: 0.81},
	{FrameID: 201, VideoID: 2, TimestampSeconds: 15.2, Tags: []string{"intersection", "rain", "traffic", "light", "red"}, TimeOfDay: models.TimeOfDayDay, Weather: models.WeatherRain, Camera: models.CameraFront, BaseScore: 0.91},
	{FrameID: 202, VideoID: 2, TimestampSeconds: 77.8, Tags: []string{"intersection", "rain", "pedestrian", "crossing"}, TimeOfDay: models.TimeOfDayDay, Weather: models.WeatherRain, Camera: models.CameraFront, BaseScore: 0.86},
	{FrameID: 203, VideoID: 2, TimestampSeconds: 140.3, Tags: []string{"rain", "cyclist", "bike", "lane"}, TimeOfDay: models.TimeOfDayDay, Weather: models.WeatherRain, Camera: models.CameraLeft, BaseScore: 0.78},
	{FrameID: 301, VideoID: 3, TimestampSeconds: 33.0, Tags: []string{"cars", "turning", "left", "intersection"}, TimeOfDay: models.TimeOfDayDay, Weather: models.WeatherOvercast, Camera: models.CameraFront, BaseScore: 0.94},
	{FrameID: 302, VideoID: 3, TimestampSeconds: 190.6, Tags: []string{"cars", "turning", "left", "stop", "sign"}, TimeOfDay: models.TimeOfDayDay, Weather: models.WeatherOvercast, Camera: models.CameraFront, BaseScore: 0.89},
	{FrameID: 303, VideoID: 3, TimestampSeconds: 365.4, Tags: []string{"suburban", "school", "zone", "crosswalk"}, TimeOfDay: models.TimeOfDayDay, Weather: models.WeatherClear, Camera: models.CameraFront, BaseScore: 0.74},
	{FrameID: 401, VideoID: 4, TimestampSeconds: 58.9, Tags: []string{"fog", "mountain", "curve", "guardrail"}, TimeOfDay: models.TimeOfDayDawn, Weather: models.WeatherFog, Camera: models.CameraFront, BaseScore: 0.90},
	{FrameID: 402, VideoID: 4, TimestampSeconds: 133.7, Tags: []string{"fog", "oncoming", "headlights"}, TimeOfDay: models.TimeOfDayDawn, Weather: models.WeatherFog, Camera: models.CameraFront, BaseScore: 0.83},
	{FrameID: 403, VideoID: 4, TimestampSeconds: 241.0, Tags: []string{"fog", "snow", "shoulder", "parked"}, TimeOfDay: models.TimeOfDayDawn, Weather: models.WeatherSnow, Camera: models.CameraRight, BaseScore: 0.71},
	{FrameID: 501, VideoID: 5, TimestampSeconds: 12.4, Tags: []string{"pedestrian", "crosswalk", "downtown", "crowd"}, TimeOfDay: models.TimeOfDayDay, Weather: models.WeatherClear, Camera: models.CameraFront, BaseScore: 0.92},
	{FrameID: 502, VideoID: 5, TimestampSeconds: 68.1, Tags: []string{"pedestrian", "jaywalking", "bus", "stop"}, TimeOfDay: models.TimeOfDayDay, Weather: models.WeatherClear, Camera: models.CameraFront, BaseScore: 0.85},
	{FrameID: 503, VideoID: 5, TimestampSeconds: 121.9, Tags: []string{"downtown", "delivery", "truck", "double", "parked"}, TimeOfDay: models.TimeOfDayDay, Weather: models.WeatherClear, Camera: models.CameraRear, BaseScore: 0.76},
	{FrameID: 601, VideoID: 6, TimestampSeconds: 44.3, Tags: []string{"highway", "merge", "dusk", "truck"}, TimeOfDay: models.TimeOfDayDusk, Weather: models.WeatherClear, Camera: models.CameraFront, BaseScore: 0.87},
	{FrameID: 602, VideoID: 6, TimestampSeconds: 152.8, Tags: []string{"highway", "dusk", "motorcycle", "splitting"}, TimeOfDay: models.TimeOfDayDusk, Weather: models.WeatherClear, Camera: models.CameraLeft, BaseScore: 0.80},
	{FrameID: 603, VideoID: 6, TimestampSeconds: 210.5, Tags: []string{"highway", "dusk", "brake", "lights", "congestion"}, TimeOfDay: models.TimeOfDayDusk, Weather: models.WeatherOvercast, Camera: models.CameraFront, BaseScore: 0.72},
}

// Videos returns the sample footage library.
func Videos() []models.Video {
	out := make([]models.Video, len(videos))
	copy(out, videos)
	return out
}
