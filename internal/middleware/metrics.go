package middleware

import (
	"encoding/json"
	"net/http"
	"runtime"
	"sync/atomic"
	"time"

	"github.com/bryanwahyu/critique/internal/domain/critique"
)

// Metrics stores application metrics
type Metrics struct {
	RequestsTotal      uint64
	RequestsInProgress uint64
	RequestsSuccess    uint64
	RequestsFailed     uint64
	AnalysesAI         uint64
	AnalysesSimulated  uint64
	ProviderAttempts   uint64
	ProviderFailures   uint64
	SharesCreated      uint64
	AuditsSaved        uint64
	StartTime          time.Time
}

var globalMetrics = &Metrics{
	StartTime: time.Now(),
}

func IncrementRequests() {
	atomic.AddUint64(&globalMetrics.RequestsTotal, 1)
}

func IncrementInProgress() {
	atomic.AddUint64(&globalMetrics.RequestsInProgress, 1)
}

func DecrementInProgress() {
	atomic.AddUint64(&globalMetrics.RequestsInProgress, ^uint64(0))
}

func IncrementSuccess() {
	atomic.AddUint64(&globalMetrics.RequestsSuccess, 1)
}

func IncrementFailed() {
	atomic.AddUint64(&globalMetrics.RequestsFailed, 1)
}

// RecordAnalysis counts a finished /analyze call by the mode it returned.
func RecordAnalysis(mode critique.Mode) {
	switch mode {
	case critique.ModeAI:
		atomic.AddUint64(&globalMetrics.AnalysesAI, 1)
	case critique.ModeSimulated:
		atomic.AddUint64(&globalMetrics.AnalysesSimulated, 1)
	}
}

// RecordProviderAttempt matches analysis.Service.OnAttempt.
func RecordProviderAttempt(_ string, err error) {
	atomic.AddUint64(&globalMetrics.ProviderAttempts, 1)
	if err != nil {
		atomic.AddUint64(&globalMetrics.ProviderFailures, 1)
	}
}

func IncrementShares() {
	atomic.AddUint64(&globalMetrics.SharesCreated, 1)
}

func IncrementAudits() {
	atomic.AddUint64(&globalMetrics.AuditsSaved, 1)
}

// GetMetrics returns current metrics
func GetMetrics() map[string]interface{} {
	var m runtime.MemStats
	runtime.ReadMemStats(&m)

	return map[string]interface{}{
		"requests_total":       atomic.LoadUint64(&globalMetrics.RequestsTotal),
		"requests_in_progress": atomic.LoadUint64(&globalMetrics.RequestsInProgress),
		"requests_success":     atomic.LoadUint64(&globalMetrics.RequestsSuccess),
		"requests_failed":      atomic.LoadUint64(&globalMetrics.RequestsFailed),
		"analyses_ai":          atomic.LoadUint64(&globalMetrics.AnalysesAI),
		"analyses_simulated":   atomic.LoadUint64(&globalMetrics.AnalysesSimulated),
		"provider_attempts":    atomic.LoadUint64(&globalMetrics.ProviderAttempts),
		"provider_failures":    atomic.LoadUint64(&globalMetrics.ProviderFailures),
		"shares_created":       atomic.LoadUint64(&globalMetrics.SharesCreated),
		"audits_saved":         atomic.LoadUint64(&globalMetrics.AuditsSaved),
		"uptime_seconds":       time.Since(globalMetrics.StartTime).Seconds(),
		"memory": map[string]interface{}{
			"alloc_bytes":       m.Alloc,
			"total_alloc_bytes": m.TotalAlloc,
			"sys_bytes":         m.Sys,
			"num_gc":            m.NumGC,
		},
		"goroutines": runtime.NumGoroutine(),
	}
}

// MetricsMiddleware tracks request metrics
func MetricsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		IncrementRequests()
		IncrementInProgress()
		defer DecrementInProgress()

		wrapped := wrapWriter(w)
		next.ServeHTTP(wrapped, r)

		if wrapped.statusCode >= 200 && wrapped.statusCode < 400 {
			IncrementSuccess()
		} else {
			IncrementFailed()
		}
	})
}

// MetricsHandler returns metrics as JSON
func MetricsHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(GetMetrics())
}
