package trendapi

import (
	"encoding/json"
	"fmt"
	"math"
	"strings"
	"time"
)

const serviceTimestampLayout = "2006-01-02 15:04:05"

// Category values accepted by /trends. CategoryAll means no filter.
const (
	CategoryAll           = "All"
	CategoryGaming        = "Gaming"
	CategoryTechnology    = "Technology"
	CategoryNewsPolitics  = "News & Politics"
	CategoryEntertainment = "Entertainment"
)

// Categories lists the filter values in display order.
var Categories = []string{
	CategoryAll,
	CategoryGaming,
	CategoryTechnology,
	CategoryNewsPolitics,
	CategoryEntertainment,
}

// IsCategory reports whether value is one of Categories.
func IsCategory(value string) bool {
	for _, c := range Categories {
		if c == value {
			return true
		}
	}
	return false
}

// SettingBotActive is the settings key for the automation flag.
const SettingBotActive = "bot_active"

// Stats mirrors the payload returned by /stats.
type Stats struct {
	TotalAnalyzed int64   `json:"total_analyzed"`
	EmailsSent    int64   `json:"emails_sent"`
	ViralityRate  float64 `json:"virality_rate"`
	BotActive     bool    `json:"bot_active"`
}

// UnmarshalJSON treats a missing bot_active as true; only an explicit false
// means the bot is stopped.
func (s *Stats) UnmarshalJSON(data []byte) error {
	var raw struct {
		TotalAnalyzed int64   `json:"total_analyzed"`
		EmailsSent    int64   `json:"emails_sent"`
		ViralityRate  float64 `json:"virality_rate"`
		BotActive     *bool   `json:"bot_active"`
	}
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	s.TotalAnalyzed = raw.TotalAnalyzed
	s.EmailsSent = raw.EmailsSent
	s.ViralityRate = raw.ViralityRate
	s.BotActive = raw.BotActive == nil || *raw.BotActive
	return nil
}

// TrendItem describes one scored video as returned by /trends and /reports.
type TrendItem struct {
	VideoID          string  `json:"video_id"`
	Title            string  `json:"title"`
	ChannelTitle     string  `json:"channel_title"`
	PublishedAt      string  `json:"published_at"`
	ViewCount        int64   `json:"view_count"`
	LikeCount        int64   `json:"like_count"`
	CommentCount     int64   `json:"comment_count"`
	EngagementScore  float64 `json:"engagement_score"`
	ViralProbability int     `json:"viral_probability"`
	TrendType        string  `json:"trend_type"`
	ThumbnailURL     string  `json:"thumbnail_url"`
	Duration         string  `json:"duration"`
	Category         string  `json:"category"`
	HoursSinceUpload float64 `json:"hours_since_upload"`
	IsSent           int     `json:"is_sent"`
	Timestamp        string  `json:"timestamp"`
}

// URL returns the short watch link for the video.
func (t TrendItem) URL() string {
	if t.VideoID == "" {
		return ""
	}
	return "https://youtu.be/" + t.VideoID
}

// Score returns the engagement score rounded to the nearest integer.
func (t TrendItem) Score() int {
	return int(math.Round(t.EngagementScore))
}

// TrendLabel returns the trend type, defaulting to "Trending".
func (t TrendItem) TrendLabel() string {
	if label := strings.TrimSpace(t.TrendType); label != "" {
		return label
	}
	return "Trending"
}

// Sent reports whether the item was already emailed as a report.
func (t TrendItem) Sent() bool {
	return t.IsSent != 0
}

// ParsedTimestamp returns when the service last scored the item.
func (t TrendItem) ParsedTimestamp() time.Time {
	return parseTime(t.Timestamp)
}

// ParsedPublishedAt returns the upload time.
func (t TrendItem) ParsedPublishedAt() time.Time {
	return parseTime(t.PublishedAt)
}

// AnalyzeRequest is the body of POST /analyze.
type AnalyzeRequest struct {
	URL string `json:"url"`
}

// AnalysisResult mirrors the /analyze response.
type AnalysisResult struct {
	VideoID    string     `json:"video_id"`
	Title      string     `json:"title"`
	ViralScore int        `json:"viral_score"`
	Insights   AIInsights `json:"ai_insights"`
}

// AIInsights holds the qualitative part of an analysis.
type AIInsights struct {
	WhyTrending      string `json:"why_trending"`
	EmotionalTrigger string `json:"emotional_trigger"`
	Audience         string `json:"audience"`
	Sentiment        string `json:"sentiment"`
}

// SettingRequest is the body of POST /settings.
type SettingRequest struct {
	Key   string `json:"key"`
	Value string `json:"value"`
}

// Ack is the generic acknowledgement returned by write endpoints. No field is
// required.
type Ack struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

// BoolSetting encodes a boolean the way the service stores settings.
func BoolSetting(v bool) string {
	if v {
		return "1"
	}
	return "0"
}

// ParseBoolSetting is the inverse of BoolSetting.
func ParseBoolSetting(value string) (bool, error) {
	switch strings.TrimSpace(value) {
	case "1":
		return true, nil
	case "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean setting %q", value)
	}
}

func parseTime(value string) time.Time {
	if value == "" {
		return time.Time{}
	}
	for _, layout := range []string{time.RFC3339Nano, time.RFC3339, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, value); err == nil {
			return t
		}
	}
	// SQLite CURRENT_TIMESTAMP is UTC without a zone suffix.
	if t, err := time.ParseInLocation(serviceTimestampLayout, value, time.UTC); err == nil {
		return t
	}
	return time.Time{}
}
