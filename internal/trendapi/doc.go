// Package trendapi provides an HTTP client for the TrendIntel service API.
//
// # Overview
//
// The service continuously scores trending videos and runs a background
// automation bot. This package is the only place that knows its wire format:
// it handles HTTP communication, JSON serialization, and a small error
// taxonomy the controllers and UI rely on.
//
// # Architecture
//
//   - client.go: Client, the Service interface, request plumbing
//   - types.go: payload structs mirroring the service schema
//   - errors.go: NetworkError, RemoteError, DecodeError and Kind/Describe
//
// # Client Usage
//
//	client, err := trendapi.NewClient("http://localhost:8000")
//	if err != nil {
//		return err
//	}
//
//	stats, err := client.FetchStats(ctx)
//	items, err := client.FetchTrends(ctx, trendapi.TrendQuery{Category: "Gaming", Limit: 50})
//	err = client.WriteSetting(ctx, trendapi.SettingBotActive, trendapi.BoolSetting(false))
//
// # API Endpoints
//
//   - GET /stats: total_analyzed, emails_sent, virality_rate, bot_active
//   - GET /trends?category=&limit=: trend feed ordered by engagement score
//   - GET /reports?limit=: trends already sent as email reports
//   - POST /analyze {url}: AI assessment of a single video
//   - POST /settings {key, value}: write a setting ("1"/"0" for booleans)
//   - POST /run-cycle: start one analysis cycle in the background
//
// Category values are sent verbatim; "All" means no filter.
//
// # Error Handling
//
// Every failed request returns one of three error types:
//
//   - *NetworkError: the request could not complete (refused, timeout, DNS)
//   - *RemoteError: the service answered with status >= 400; Detail carries
//     FastAPI's "detail" message when present
//   - *DecodeError: the body did not match the expected JSON shape
//
// Kind classifies an error and Describe renders a short operator-facing
// message. Callers never branch recovery logic on the kind; it exists for
// display.
//
// # Request Handling
//
// All requests use the caller's context, set Accept and User-Agent headers,
// and carry a fresh X-Request-ID which is also written to the debug log so a
// slow poll can be matched against service logs.
//
// # Thread Safety
//
// Client is safe for concurrent use.
package trendapi
