package process

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func reset() *[]int {
	var codes []int
	mu.Lock()
	exiting = false
	handlers = nil
	exitFunc = func(code int) { codes = append(codes, code) }
	mu.Unlock()
	return &codes
}

func TestExitRunsHandlersInReverseOrder(t *testing.T) {
	codes := reset()
	var order []string
	SetExitHandler(func() { order = append(order, "first") })
	SetExitHandler(func() { order = append(order, "second") })
	Exit(1)
	require.Equal(t, []string{"second", "first"}, order)
	require.Equal(t, []int{1}, *codes)
}

func TestExitBlocksWhenAlreadyExiting(t *testing.T) {
	codes := reset()
	calls := 0
	SetExitHandler(func() { calls++ })
	Exit(1)
	returned := make(chan struct{})
	go func() {
		Exit(0)
		close(returned)
	}()
	select {
	case <-returned:
		t.Fatal("second call to Exit returned to its caller")
	case <-time.After(50 * time.Millisecond):
	}
	require.Equal(t, 1, calls)
	require.Equal(t, []int{1}, *codes)
}
