package gateway_test

import (
	"fmt"
	"net/http"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/lumos/internal/gateway"
)

type responses struct {
	mu  sync.Mutex
	got []gateway.Response
}

func (r *responses) add(resp gateway.Response) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.got = append(r.got, resp)
}

func (r *responses) all() []gateway.Response {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]gateway.Response{}, r.got...)
}

func Test_Subscribe(t *testing.T) {

	t.Run("should deliver pushed payloads and error events", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.URL.Path != "/eventstream/15001/65537" {
				w.WriteHeader(http.StatusNotFound)
				return
			}
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			fmt.Fprint(w, "data: {\"3311\":[{\"5851\":10}]}\n\n")
			fmt.Fprint(w, "event: error\ndata: oops\n\n")
			w.(http.Flusher).Flush()
			<-r.Context().Done()
		}))

		rec := &responses{}
		sub, err := client.Subscribe("15001/65537", rec.add)
		require.NoError(t, err)
		defer sub.Cancel()

		assert.Eventually(t, func() bool { return len(rec.all()) == 2 }, 2*time.Second, 10*time.Millisecond)

		got := rec.all()
		assert.True(t, got[0].Success)
		assert.Equal(t, `{"3311":[{"5851":10}]}`, string(got[0].Payload))
		assert.False(t, got[1].Success)
	})

	t.Run("gateway closes the stream: should resubscribe and keep delivering", func(t *testing.T) {
		var connects atomic.Int32
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			n := connects.Add(1)
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			fmt.Fprintf(w, "data: {\"3311\":[{\"5851\":%d}]}\n\n", n)
			w.(http.Flusher).Flush()
			if n > 1 {
				<-r.Context().Done()
			}
		}))

		rec := &responses{}
		sub, err := client.Subscribe("15001/65537", rec.add)
		require.NoError(t, err)
		defer sub.Cancel()

		assert.Eventually(t, func() bool { return len(rec.all()) >= 2 }, 5*time.Second, 10*time.Millisecond)
		assert.GreaterOrEqual(t, connects.Load(), int32(2))
		assert.Equal(t, `{"3311":[{"5851":2}]}`, string(rec.all()[1].Payload))
		assert.False(t, sub.IsCancelled())
	})

	t.Run("cancel: should mark the subscription cancelled", func(t *testing.T) {
		client := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "text/event-stream")
			w.WriteHeader(http.StatusOK)
			w.(http.Flusher).Flush()
			<-r.Context().Done()
		}))

		sub, err := client.Subscribe("15001/65537", func(gateway.Response) {})
		require.NoError(t, err)
		assert.False(t, sub.IsCancelled())
		assert.NotEmpty(t, sub.ID)

		sub.Cancel()
		sub.Cancel()

		assert.True(t, sub.IsCancelled())
	})
}

func Test_NewSubscription(t *testing.T) {
	calls := 0
	sub := gateway.NewSubscription("15001", func() { calls++ })

	sub.Cancel()
	sub.Cancel()

	assert.Equal(t, 1, calls)
	assert.Equal(t, "15001", sub.Endpoint)
}
