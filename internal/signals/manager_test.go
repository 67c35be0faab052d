package signals

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestManagerShutdownCancelsContext(t *testing.T) {
	m := New()
	assert.False(t, m.IsShutdown())

	m.Shutdown(1)
	assert.True(t, m.IsShutdown())
	assert.Equal(t, 1, m.ExitCode())

	select {
	case <-m.Context().Done():
	case <-time.After(100 * time.Millisecond):
		t.Fatal("expected context to be cancelled after shutdown")
	}
}

func TestManagerShutdownIsIdempotent(t *testing.T) {
	m := New()
	m.Shutdown(1)
	m.Shutdown(2)
	assert.Equal(t, 1, m.ExitCode())
}

func TestManagerConcurrentShutdown(t *testing.T) {
	m := New()
	done := make(chan struct{})
	for i := 0; i < 10; i++ {
		go func(code int) {
			m.Shutdown(code)
			done <- struct{}{}
		}(i)
	}
	for i := 0; i < 10; i++ {
		<-done
	}
	assert.True(t, m.IsShutdown())
}
