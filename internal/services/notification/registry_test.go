package notification

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

type fakeConn struct {
	mu       sync.Mutex
	written  []interface{}
	writeErr error
}

func (f *fakeConn) WriteJSON(v interface{}) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.writeErr != nil {
		return f.writeErr
	}
	f.written = append(f.written, v)
	return nil
}

func TestSendToRegisteredConnection(t *testing.T) {
	r := NewRegistry()
	conn := &fakeConn{}
	r.Register(7, conn)

	delivered := r.Send(7, Push{Event: EventNewNotification, Data: "hi"})
	assert.True(t, delivered)
	assert.Len(t, conn.written, 1)
}

func TestSendWithoutConnectionIsNoop(t *testing.T) {
	r := NewRegistry()
	assert.False(t, r.Send(7, Push{}))
}

func TestWriteErrorDropsConnection(t *testing.T) {
	r := NewRegistry()
	conn := &fakeConn{writeErr: errors.New("broken pipe")}
	r.Register(7, conn)

	assert.False(t, r.Send(7, Push{}))
	assert.False(t, r.Send(7, Push{}), "connection is gone after the first failure")
}

func TestUnregisterIgnoresStaleConnection(t *testing.T) {
	r := NewRegistry()
	old := &fakeConn{}
	replacement := &fakeConn{}

	r.Register(7, old)
	r.Register(7, replacement)
	// The old connection's deferred cleanup fires after the replacement
	// registered; it must not evict the live connection.
	r.Unregister(7, old)

	assert.True(t, r.Send(7, Push{}))
	assert.Len(t, replacement.written, 1)
	assert.Empty(t, old.written)
}

// overlapConn trips when two WriteJSON calls run at the same time, which
// the websocket library forbids on a single connection.
type overlapConn struct {
	inWrite    int32
	overlapped int32
}

func (o *overlapConn) WriteJSON(interface{}) error {
	if atomic.AddInt32(&o.inWrite, 1) > 1 {
		atomic.StoreInt32(&o.overlapped, 1)
	}
	time.Sleep(time.Millisecond)
	atomic.AddInt32(&o.inWrite, -1)
	return nil
}

func TestSendSerializesWritesPerConnection(t *testing.T) {
	r := NewRegistry()
	conn := &overlapConn{}
	r.Register(7, conn)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.Send(7, Push{Event: EventNewNotification, Data: "hi"})
		}()
	}
	wg.Wait()

	assert.Zero(t, atomic.LoadInt32(&conn.overlapped), "writes to one connection must not interleave")
}

func TestRegistryConcurrentAccess(t *testing.T) {
	r := NewRegistry()
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(id uint) {
			defer wg.Done()
			conn := &fakeConn{}
			r.Register(id, conn)
			r.Send(id, Push{})
			r.Unregister(id, conn)
		}(uint(i % 10))
	}
	wg.Wait()
}
