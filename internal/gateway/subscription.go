package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	sse "github.com/r3labs/sse/v2"
	"github.com/wheelibin/lumos/internal/constants"
	"gopkg.in/cenkalti/backoff.v1"
)

// Response is one pushed payload. Success is false for error events and empty pushes.
type Response struct {
	Success bool
	Payload []byte
}

type Subscription struct {
	ID       string
	Endpoint string

	cancel    func()
	cancelled atomic.Bool
}

func NewSubscription(endpoint string, cancel func()) *Subscription {
	return &Subscription{ID: uuid.NewString(), Endpoint: endpoint, cancel: cancel}
}

// Cancel stops delivery. Safe to call more than once.
func (s *Subscription) Cancel() {
	if s.cancelled.CompareAndSwap(false, true) && s.cancel != nil {
		s.cancel()
	}
}

func (s *Subscription) IsCancelled() bool {
	return s.cancelled.Load()
}

// Subscribe opens the event stream for an endpoint, e.g. "15001/65537". Pushes are
// delivered to handler one at a time on the stream's own goroutine, reconnecting with
// backoff until the subscription is cancelled.
func (c *Client) Subscribe(endpoint string, handler func(Response)) (*Subscription, error) {
	streamURL := fmt.Sprintf("%s/eventstream/%s", c.baseURL, strings.TrimPrefix(endpoint, "/"))
	if _, err := url.Parse(streamURL); err != nil {
		return nil, fmt.Errorf("invalid event stream url for %s: %w", endpoint, err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	sub := NewSubscription(endpoint, cancel)
	logger := c.logger.With("endpoint", endpoint, "subscription", sub.ID)

	client := sse.NewClient(streamURL)
	client.Connection = &http.Client{Transport: c.transport}
	client.Headers["gateway-application-key"] = c.key
	client.ReconnectStrategy = backoff.WithContext(retryForever(), ctx)

	client.OnConnect(func(_ *sse.Client) {
		logger.Debug("Connected to gateway event stream")
	})
	client.OnDisconnect(func(_ *sse.Client) {
		logger.Debug("Disconnected from gateway event stream")
	})

	go func() {
		// the stream ends without an error when the gateway closes it, keep resubscribing
		// until cancelled
		resubscribe := retryForever()
		for ctx.Err() == nil {
			err := client.SubscribeRawWithContext(ctx, func(msg *sse.Event) {
				if sub.IsCancelled() {
					return
				}
				resubscribe.Reset()
				handler(toResponse(msg))
			})
			if ctx.Err() != nil {
				return
			}
			if err != nil {
				logger.Warn("Event stream failed, resubscribing", "err", err)
			} else {
				logger.Debug("Event stream closed by gateway, resubscribing")
			}

			select {
			case <-ctx.Done():
				return
			case <-time.After(resubscribe.NextBackOff()):
			}
		}
	}()

	return sub, nil
}

func retryForever() *backoff.ExponentialBackOff {
	b := backoff.NewExponentialBackOff()
	b.MaxElapsedTime = 0
	return b
}

func toResponse(msg *sse.Event) Response {
	if msg == nil || len(msg.Data) == 0 || string(msg.Event) == constants.SSEEventError {
		return Response{Success: false}
	}
	return Response{Success: true, Payload: msg.Data}
}
