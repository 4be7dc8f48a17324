package concurrency_test

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/wheelibin/lifxbridge/internal/concurrency"
)

func Test_SingleFlight(t *testing.T) {

	t.Run("overlapping callers share one execution and its result", func(t *testing.T) {
		t.Parallel()

		var guard concurrency.SingleFlight
		var calls int32
		sharedErr := errors.New("shared")
		release := make(chan struct{})

		fn := func() error {
			atomic.AddInt32(&calls, 1)
			<-release
			return sharedErr
		}

		var wg sync.WaitGroup
		errs := make([]error, 4)
		for i := 0; i < 4; i++ {
			i := i
			wg.Add(1)
			go func() {
				defer wg.Done()
				errs[i] = guard.Do(fn)
			}()
		}

		time.Sleep(50 * time.Millisecond)
		close(release)
		wg.Wait()

		assert.Equal(t, int32(1), atomic.LoadInt32(&calls))
		for _, err := range errs {
			assert.Equal(t, sharedErr, err)
		}
	})

	t.Run("sequential calls each run", func(t *testing.T) {
		t.Parallel()

		var guard concurrency.SingleFlight
		calls := 0

		fn := func() error {
			calls++
			return nil
		}

		assert.NoError(t, guard.Do(fn))
		assert.NoError(t, guard.Do(fn))
		assert.Equal(t, 2, calls)
	})
}
