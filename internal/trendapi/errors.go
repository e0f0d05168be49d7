package trendapi

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrKind classifies a failed request for display purposes. Recovery never
// depends on it: every kind is handled the same way by the controllers.
type ErrKind int

const (
	KindNone ErrKind = iota
	KindNetwork
	KindRemote
	KindDecode
)

func (k ErrKind) String() string {
	switch k {
	case KindNetwork:
		return "network"
	case KindRemote:
		return "remote"
	case KindDecode:
		return "decode"
	default:
		return "none"
	}
}

// NetworkError means the request could not complete.
type NetworkError struct {
	Op  string
	Err error
}

func (e *NetworkError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// RemoteError means the service was reachable but answered with a
// non-success status.
type RemoteError struct {
	Op         string
	StatusCode int
	Detail     string
}

func (e *RemoteError) Error() string {
	msg := fmt.Sprintf("api %s returned status %d", e.Op, e.StatusCode)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

// DecodeError means the response body did not match the expected shape.
type DecodeError struct {
	Op  string
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("decode response from %s: %v", e.Op, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// Kind returns the ErrKind of err, looking through wrapping.
func Kind(err error) ErrKind {
	if err == nil {
		return KindNone
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		return KindRemote
	}
	var decode *DecodeError
	if errors.As(err, &decode) {
		return KindDecode
	}
	return KindNetwork
}

// Describe returns a short operator-facing description of err.
func Describe(err error) string {
	if err == nil {
		return ""
	}
	var remote *RemoteError
	if errors.As(err, &remote) {
		if remote.Detail != "" {
			return remote.Detail
		}
		return fmt.Sprintf("Service error %d %s", remote.StatusCode, http.StatusText(remote.StatusCode))
	}
	if Kind(err) == KindDecode {
		return "Unexpected response"
	}
	errStr := err.Error()
	switch {
	case strings.Contains(errStr, "connection refused"):
		return "Service not running"
	case strings.Contains(errStr, "timeout"), strings.Contains(errStr, "deadline exceeded"):
		return "Connection timeout"
	case strings.Contains(errStr, "no such host"):
		return "Host not found"
	default:
		return "Service unreachable"
	}
}
