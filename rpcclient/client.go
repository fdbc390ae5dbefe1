package rpcclient

import (
	"context"
	"encoding/json"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"go.uber.org/ratelimit"

	"github.com/coldtrail/utxotx/internal/clock"
)

var (
	requestsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "utxotx",
		Subsystem: "rpc_client",
		Name:      "operations_total",
		Help:      "Count of node RPC operations.",
	}, []string{"method", "status"})
	requestDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "utxotx",
		Subsystem: "rpc_client",
		Name:      "operation_duration_seconds",
		Help:      "Duration of node RPC operations.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "status"})
)

func observe(method string, err error, started time.Time) {
	status := "success"
	if err != nil {
		status = "error"
	}
	requestsTotal.WithLabelValues(method, status).Inc()
	requestDuration.WithLabelValues(method, status).Observe(time.Since(started).Seconds())
}

// Client wraps a Transport with Prometheus instrumentation, rate limiting
// and bounded retries, mirroring how the teacher layers RPCMetrics over a
// bare node RPC client.
type Client struct {
	transport  Transport
	limiter    ratelimit.Limiter
	maxRetries int
	retryWait  time.Duration
}

// New constructs a Client. rps<=0 disables throttling; maxRetries<=0
// disables retries.
func New(transport Transport, rps int, maxRetries int, retryWait time.Duration) *Client {
	var limiter ratelimit.Limiter
	if rps > 0 {
		limiter = ratelimit.New(rps)
	} else {
		limiter = ratelimit.NewUnlimited()
	}
	if maxRetries < 0 {
		maxRetries = 0
	}
	return &Client{
		transport:  transport,
		limiter:    limiter,
		maxRetries: maxRetries,
		retryWait:  retryWait,
	}
}

// Call invokes method with params, retrying up to maxRetries times on
// transport error with a fixed backoff between attempts.
func (c *Client) Call(ctx context.Context, method string, params any) (json.RawMessage, error) {
	c.limiter.Take()

	var (
		result json.RawMessage
		err    error
	)
	for attempt := 0; attempt <= c.maxRetries; attempt++ {
		started := time.Now()
		result, err = c.transport.Call(ctx, method, params)
		observe(method, err, started)
		if err == nil {
			return result, nil
		}
		if attempt == c.maxRetries {
			break
		}
		if sleepErr := clock.SleepWithContext(ctx, c.retryWait); sleepErr != nil {
			return nil, sleepErr
		}
	}
	return nil, err
}
