// Package logger provides structured logging based on Zap.
//
// It supports json (production) and console (CLI/development)
// encodings and is ray-id aware: WithRayID extracts the request id
// from a Fiber context and attaches it to every entry, so the logs of
// a single merge request can be correlated.
package logger
