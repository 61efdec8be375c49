package observer

import (
	"context"
	"sync"
	"time"

	"github.com/charmbracelet/log"
	"github.com/wheelibin/lumos/internal/concurrency"
	"github.com/wheelibin/lumos/internal/constants"
	"github.com/wheelibin/lumos/internal/gateway"
)

type subscriber interface {
	Subscribe(endpoint string, handler func(gateway.Response)) (*gateway.Subscription, error)
}

// Observer keeps a subscription to one gateway endpoint open and hands every pushed
// payload to process, one at a time and no sooner than delay after it arrived.
type Observer struct {
	logger   *log.Logger
	client   subscriber
	endpoint string
	delay    time.Duration
	process  func(payload []byte)

	mu           sync.Mutex
	subscription *gateway.Subscription
	stopWorker   context.CancelFunc
}

func newObserver(logger *log.Logger, client subscriber, endpoint string, delay time.Duration, process func([]byte)) *Observer {
	return &Observer{
		logger:   logger,
		client:   client,
		endpoint: endpoint,
		delay:    delay,
		process:  process,
	}
}

// Start subscribes to the endpoint. Returns false when already observing or when the
// subscription could not be made.
func (o *Observer) Start() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.observing() {
		return false
	}

	ctx, cancel := context.WithCancel(context.Background())
	worker := concurrency.NewDelayedWorker(o.delay, constants.ObserverQueueSize, o.process)
	go worker.Run(ctx)

	sub, err := o.client.Subscribe(o.endpoint, func(resp gateway.Response) {
		if !resp.Success {
			o.logger.Debug("Ignoring failed response", "endpoint", o.endpoint)
			return
		}
		if !worker.Submit(resp.Payload) {
			o.logger.Warn("Too many pending updates, dropping one", "endpoint", o.endpoint)
		}
	})
	if err != nil {
		cancel()
		o.logger.Error("Error subscribing", "endpoint", o.endpoint, "err", err)
		return false
	}

	o.logger.Debug("Observing", "endpoint", o.endpoint, "subscription", sub.ID)
	o.subscription = sub
	o.stopWorker = cancel
	return true
}

// Stop cancels the subscription and drops any updates still waiting to be processed.
// Returns false when not observing.
func (o *Observer) Stop() bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.subscription == nil {
		return false
	}

	o.subscription.Cancel()
	o.stopWorker()
	o.logger.Debug("Stopped observing", "endpoint", o.endpoint, "subscription", o.subscription.ID)
	o.subscription = nil
	o.stopWorker = nil
	return true
}

func (o *Observer) IsObserving() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.observing()
}

func (o *Observer) observing() bool {
	return o.subscription != nil && !o.subscription.IsCancelled()
}
