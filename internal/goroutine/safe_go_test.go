package goroutine

import (
	"bytes"
	"context"
	"sync"
	"testing"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
)

type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestRecoveryHandler_LogsPanic(t *testing.T) {
	out := &syncBuffer{}
	log := logrus.New()
	log.SetOutput(out)
	rh := NewRecoveryHandler(log)

	done := make(chan struct{})
	rh.Go("hub.broadcast", func() {
		defer close(done)
		panic("сломалось")
	})
	<-done

	assert.Eventually(t, func() bool {
		return bytes.Contains([]byte(out.String()), []byte("hub.broadcast"))
	}, time.Second, 10*time.Millisecond)
	assert.Contains(t, out.String(), "сломалось")
}

func TestRecoveryHandler_PassesContext(t *testing.T) {
	type key struct{}
	ctx := context.WithValue(context.Background(), key{}, "v")

	got := make(chan any, 1)
	NewRecoveryHandler(logrus.New()).GoWithContext(ctx, "test", func(ctx context.Context) {
		got <- ctx.Value(key{})
	})

	select {
	case v := <-got:
		assert.Equal(t, "v", v)
	case <-time.After(time.Second):
		t.Fatal("горутина не запустилась")
	}
}
