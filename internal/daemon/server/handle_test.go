package server

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/watchfire-io/pingwatch/internal/models"
)

func TestHandleBeforeSet(t *testing.T) {
	quits := 0
	h := NewHandle(func() { quits++ })

	assert.Nil(t, h.Get())
	assert.Equal(t, 0, h.HTTPPort())
	assert.Equal(t, models.Status{}, h.Status())
	assert.False(t, h.ToggleSound())
	assert.False(t, h.Dismiss())
	assert.Equal(t, models.Status{}, h.Reset())

	h.RequestShutdown()
	assert.Equal(t, 1, quits)
}

func TestHandlePublishesServerToConcurrentReaders(t *testing.T) {
	srv := startServer(t, testSettings(), &countingPresenter{})
	h := NewHandle(nil)

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				if port := h.HTTPPort(); port != 0 {
					assert.Equal(t, srv.HTTPPort(), port)
				}
			}
		}()
	}
	h.Set(srv)
	wg.Wait()

	require.Same(t, srv, h.Get())
	srv.Trigger("erp", 1)
	assert.Equal(t, 1, h.Status().TotalCount)
	assert.Equal(t, 0, h.Acknowledge().PendingCount)
}
