// cmd/ping probes /healthz of a local geo-users server.
//
// Intended for Docker HEALTHCHECK:
//
//	HEALTHCHECK CMD ["/ping"]
//
// The exit code tells why a probe failed, so `docker inspect` output is
// enough to tell a dead process from a lost database.
package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"os"
	"strconv"
	"time"
)

const (
	defaultPort          = 8080
	healthEndpoint       = "/healthz"
	expectedHealthStatus = "ok"
	requestTimeout       = 2 * time.Second

	// exit codes
	codeRequestFailed     = 2
	codeBadHTTPStatus     = 3
	codeDecodeError       = 4
	codeReportedUnhealthy = 5
)

// healthResp mirrors { "status": "ok" | "down" }.
type healthResp struct {
	Status string `json:"status"`
}

// probeError carries the exit code for a failed probe.
type probeError struct {
	code int
	err  error
}

func (e *probeError) Error() string { return e.err.Error() }

func main() {
	port := detectPort(os.Getenv("APP_PORT"))
	url := fmt.Sprintf("http://localhost:%d%s", port, healthEndpoint)

	if err := probe(&http.Client{Timeout: requestTimeout}, url); err != nil {
		log.Print(err)
		var pe *probeError
		if errors.As(err, &pe) {
			os.Exit(pe.code)
		}
		os.Exit(1)
	}

	log.Printf("service healthy on port %d", port)
}

// probe GETs url and requires a 200 whose status, when present, is "ok".
func probe(client *http.Client, url string) error {
	resp, err := client.Get(url)
	if err != nil {
		return &probeError{codeRequestFailed, fmt.Errorf("request failed: %w", err)}
	}
	defer func() { _ = resp.Body.Close() }()

	// a "down" body comes with a 500, report it as unhealthy rather than a bad status
	var h healthResp
	if err := json.NewDecoder(resp.Body).Decode(&h); err != nil && !errors.Is(err, io.EOF) {
		if resp.StatusCode != http.StatusOK {
			return &probeError{codeBadHTTPStatus, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)}
		}
		return &probeError{codeDecodeError, fmt.Errorf("decode error: %w", err)}
	}
	if h.Status != "" && h.Status != expectedHealthStatus {
		return &probeError{codeReportedUnhealthy, fmt.Errorf("service reported unhealthy: %q", h.Status)}
	}
	if resp.StatusCode != http.StatusOK {
		return &probeError{codeBadHTTPStatus, fmt.Errorf("unexpected HTTP status %d", resp.StatusCode)}
	}

	return nil
}

// detectPort parses the APP_PORT value and falls back to defaultPort.
func detectPort(v string) int {
	if p, err := strconv.Atoi(v); err == nil && p > 0 && p <= 65535 {
		return p
	}
	return defaultPort
}
