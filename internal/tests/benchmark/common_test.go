package benchmark

import (
	"fmt"
	"runtime"
	"testing"
	"time"

	"github.com/yndnr/login-challenge-go/internal/core/domain"
	"github.com/yndnr/login-challenge-go/internal/core/service"
	"github.com/yndnr/login-challenge-go/internal/core/session"
	"github.com/yndnr/login-challenge-go/internal/telemetry/logger"
	"github.com/yndnr/login-challenge-go/internal/telemetry/metric"
)

// TokenSizes defines the token sizes for benchmarking.
var TokenSizes = []int{32, 1000, domain.SessionTokenBytes, 100000}

// noTimers never fires, so benchmarks measure bookkeeping only.
type noTimers struct{}

func (noTimers) AfterFunc(time.Duration, func()) session.Timer {
	return stoppedTimer{}
}

type stoppedTimer struct{}

func (stoppedTimer) Stop() bool { return true }

// newStore creates a store whose expiry timers never fire.
func newStore() *session.Store {
	return session.NewStore(
		session.WithScheduler(noTimers{}),
		session.WithLogger(logger.Discard()),
	)
}

// newController wires a controller with instant, always succeeding gateways.
func newController(b *testing.B, recorder service.Recorder) *service.Controller {
	b.Helper()
	store := newStore()
	opts := []service.GatewayOption{
		service.WithSleeper(service.NoSleep),
		service.WithOutcomes(service.SucceedingOutcomes()),
		service.WithGatewayLogger(logger.Discard()),
	}

	auth, err := service.NewAuthGateway(store, service.DefaultAuthConfig(), opts...)
	if err != nil {
		b.Fatalf("NewAuthGateway failed: %v", err)
	}
	users, err := service.NewUserGateway(store, nil, 0, opts...)
	if err != nil {
		b.Fatalf("NewUserGateway failed: %v", err)
	}

	ctrlOpts := []service.ControllerOption{service.WithLogger(logger.Discard())}
	if recorder != nil {
		ctrlOpts = append(ctrlOpts, service.WithRecorder(recorder))
	}
	ctrl, err := service.NewController(store, auth, users, ctrlOpts...)
	if err != nil {
		b.Fatalf("NewController failed: %v", err)
	}
	b.Cleanup(ctrl.Close)
	return ctrl
}

// newRegistry returns a fresh metrics registry.
func newRegistry() *metric.Registry {
	return metric.NewRegistry()
}

// reportMemory reports memory usage.
func reportMemory(b *testing.B, prefix string) {
	var m runtime.MemStats
	runtime.GC()
	runtime.ReadMemStats(&m)
	b.ReportMetric(float64(m.Alloc)/(1024*1024), prefix+"_MB")
	b.ReportMetric(float64(m.NumGC), prefix+"_GC")
}

// runWithTokenSizes runs a benchmark function for each token size.
func runWithTokenSizes(b *testing.B, benchFn func(b *testing.B, size int)) {
	for _, size := range TokenSizes {
		b.Run(fmt.Sprintf("bytes_%d", size), func(b *testing.B) {
			benchFn(b, size)
		})
	}
}
