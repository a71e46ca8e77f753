package emulator

import (
	"testing"
	"time"

	"github.com/matryer/is"
)

func TestTimeHandler(t *testing.T) {
	is := is.New(t)
	th := NewTimeHandler()

	th.SetNextSyncDelta(SYNC_HOST_FRAME, 100)
	th.Tick(99)
	is.True(!th.NeedsSync(SYNC_HOST_FRAME))
	th.Tick(1)
	is.True(th.NeedsSync(SYNC_HOST_FRAME))

	is.Equal(th.Sync(SYNC_HOST_FRAME), uint64(100))
	th.Tick(20)
	is.Equal(th.Sync(SYNC_HOST_FRAME), uint64(20))
	is.Equal(th.Cycles, uint64(120))
}

func TestCPUTicksOncePerInstruction(t *testing.T) {
	is := is.New(t)
	cpu, _ := newTestCPU(t)

	cpu.Time.SetNextSyncDelta(SYNC_HOST_FRAME, CPU_FREQ_HZ/60)
	steps := 0
	for !cpu.Time.NeedsSync(SYNC_HOST_FRAME) {
		cpu.RunNextInstruction()
		steps++
	}
	is.Equal(uint64(steps), CPU_FREQ_HZ/60)
}

func TestTimeHandlerElapsed(t *testing.T) {
	is := is.New(t)
	th := NewTimeHandler()

	th.Tick(CPU_FREQ_HZ * 3)
	is.Equal(th.Elapsed(), 3*time.Second)
	th.Tick(CPU_FREQ_HZ / 2)
	is.Equal(th.Elapsed(), 3500*time.Millisecond)
}
