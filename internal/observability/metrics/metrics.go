// Package metrics aggregates in-memory counters for inbound HTTP requests and
// outbound provider calls, rendered in Prometheus text format on /metrics.
package metrics

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"
	"sync"
	"time"
)

type requestLabel struct {
	method string
	path   string
	status string
}

type upstreamLabel struct {
	endpoint string
	outcome  string
}

// Recorder accumulates request and upstream-call totals. A RWMutex coordinates
// concurrent writers; the gateway has no other shared mutable state.
type Recorder struct {
	mu               sync.RWMutex
	requestCount     map[requestLabel]uint64
	requestDuration  map[requestLabel]time.Duration
	upstreamCount    map[upstreamLabel]uint64
	upstreamDuration map[upstreamLabel]time.Duration
}

var defaultRecorder = New()

// New constructs an empty Recorder.
func New() *Recorder {
	return &Recorder{
		requestCount:     make(map[requestLabel]uint64),
		requestDuration:  make(map[requestLabel]time.Duration),
		upstreamCount:    make(map[upstreamLabel]uint64),
		upstreamDuration: make(map[upstreamLabel]time.Duration),
	}
}

// Default returns the shared Recorder instance.
func Default() *Recorder {
	return defaultRecorder
}

// ObserveRequest accumulates totals by HTTP method, normalized path, and
// status code.
func (r *Recorder) ObserveRequest(method, path string, status int, duration time.Duration) {
	label := requestLabel{
		method: strings.ToUpper(method),
		path:   normalizePath(path),
		status: fmt.Sprintf("%d", status),
	}
	r.mu.Lock()
	r.requestCount[label]++
	r.requestDuration[label] += duration
	r.mu.Unlock()
}

// ObserveUpstream accumulates totals for outbound provider calls by remote
// endpoint and outcome (ok, provider_error, transport_error).
func (r *Recorder) ObserveUpstream(endpoint, outcome string, duration time.Duration) {
	label := upstreamLabel{endpoint: endpoint, outcome: outcome}
	r.mu.Lock()
	r.upstreamCount[label]++
	r.upstreamDuration[label] += duration
	r.mu.Unlock()
}

// Reset clears all recorded values. Intended for tests.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.requestCount = make(map[requestLabel]uint64)
	r.requestDuration = make(map[requestLabel]time.Duration)
	r.upstreamCount = make(map[upstreamLabel]uint64)
	r.upstreamDuration = make(map[upstreamLabel]time.Duration)
}

// Handler exposes the Recorder as an http.Handler writing Prometheus text
// exposition data.
func (r *Recorder) Handler() http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; version=0.0.4")
		r.Write(w)
	})
}

// Write renders the metrics, sorting label sets for stable output.
func (r *Recorder) Write(w io.Writer) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	requestLabels := r.sortedRequestLabels()
	upstreamLabels := r.sortedUpstreamLabels()

	fmt.Fprintln(w, "# HELP aurahub_http_requests_total Total number of HTTP requests handled by the gateway")
	fmt.Fprintln(w, "# TYPE aurahub_http_requests_total counter")
	for _, label := range requestLabels {
		fmt.Fprintf(w, "aurahub_http_requests_total{method=%q,path=%q,status=%q} %d\n", label.method, label.path, label.status, r.requestCount[label])
	}

	fmt.Fprintln(w, "# HELP aurahub_http_request_duration_seconds_sum Cumulative duration of HTTP requests in seconds")
	fmt.Fprintln(w, "# TYPE aurahub_http_request_duration_seconds_sum counter")
	for _, label := range requestLabels {
		fmt.Fprintf(w, "aurahub_http_request_duration_seconds_sum{method=%q,path=%q,status=%q} %f\n", label.method, label.path, label.status, r.requestDuration[label].Seconds())
	}

	fmt.Fprintln(w, "# HELP aurahub_upstream_requests_total Total number of outbound provider calls by endpoint and outcome")
	fmt.Fprintln(w, "# TYPE aurahub_upstream_requests_total counter")
	for _, label := range upstreamLabels {
		fmt.Fprintf(w, "aurahub_upstream_requests_total{endpoint=%q,outcome=%q} %d\n", label.endpoint, label.outcome, r.upstreamCount[label])
	}

	fmt.Fprintln(w, "# HELP aurahub_upstream_request_duration_seconds_sum Cumulative duration of outbound provider calls in seconds")
	fmt.Fprintln(w, "# TYPE aurahub_upstream_request_duration_seconds_sum counter")
	for _, label := range upstreamLabels {
		fmt.Fprintf(w, "aurahub_upstream_request_duration_seconds_sum{endpoint=%q,outcome=%q} %f\n", label.endpoint, label.outcome, r.upstreamDuration[label].Seconds())
	}
}

func (r *Recorder) sortedRequestLabels() []requestLabel {
	labels := make([]requestLabel, 0, len(r.requestCount))
	for label := range r.requestCount {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].path != labels[j].path {
			return labels[i].path < labels[j].path
		}
		if labels[i].method != labels[j].method {
			return labels[i].method < labels[j].method
		}
		return labels[i].status < labels[j].status
	})
	return labels
}

func (r *Recorder) sortedUpstreamLabels() []upstreamLabel {
	labels := make([]upstreamLabel, 0, len(r.upstreamCount))
	for label := range r.upstreamCount {
		labels = append(labels, label)
	}
	sort.Slice(labels, func(i, j int) bool {
		if labels[i].endpoint != labels[j].endpoint {
			return labels[i].endpoint < labels[j].endpoint
		}
		return labels[i].outcome < labels[j].outcome
	})
	return labels
}

// idRoutePrefixes are the local routes whose trailing segment is an opaque
// caller-supplied identifier; collapsing it keeps label cardinality bounded.
var idRoutePrefixes = []string{
	"/remote_upload/remove/",
	"/remote_upload/status/",
	"/file_manager/rename_folder/",
	"/file_manager/delete_folder/",
	"/file_manager/rename_file/",
	"/file_manager/move_file/",
	"/file_manager/delete_file/",
	"/thumbnail/",
	"/stream/ticket/",
	"/stream/link/",
	"/file_info/",
}

func normalizePath(path string) string {
	if path == "" || path == "/" {
		return "/"
	}
	for _, prefix := range idRoutePrefixes {
		if strings.HasPrefix(path, prefix) && len(path) > len(prefix) {
			return prefix + ":id"
		}
	}
	if len(path) > 1 {
		path = strings.TrimSuffix(path, "/")
	}
	return path
}
