package emulator

import "time"

// CPU clock at 33.8685MHz (~29.525960700946ns per cycle)
const CPU_FREQ_HZ uint64 = 33868800

// Index of a TimeSheet in the TimeHandler
type SyncTarget uint32

const (
	SYNC_HOST_FRAME SyncTarget = iota // Frame boundary of the host driving the CPU
	syncTargetCount
)

// Cycle counter advanced by the CPU. Every instruction takes one cycle,
// memory access timings are not emulated
type TimeHandler struct {
	Cycles     uint64                      // Cycles since reset
	TimeSheets [syncTargetCount]*TimeSheet // One per SyncTarget
}

func NewTimeHandler() *TimeHandler {
	th := &TimeHandler{}
	for i := range th.TimeSheets {
		th.TimeSheets[i] = &TimeSheet{}
	}
	return th
}

func (th *TimeHandler) Tick(cycles uint64) {
	th.Cycles += cycles
}

// Returns the emulated time since reset
func (th *TimeHandler) Elapsed() time.Duration {
	sec := th.Cycles / CPU_FREQ_HZ
	rem := th.Cycles % CPU_FREQ_HZ
	return time.Duration(sec)*time.Second + time.Duration(rem*uint64(time.Second)/CPU_FREQ_HZ)
}

// Marks `target` as synchronized and returns the cycles elapsed since its
// previous sync
func (th *TimeHandler) Sync(target SyncTarget) uint64 {
	sheet := th.TimeSheets[target]
	delta := th.Cycles - sheet.LastSync
	sheet.LastSync = th.Cycles
	return delta
}

// Schedules the next sync of `target` `delta` cycles from now
func (th *TimeHandler) SetNextSyncDelta(target SyncTarget, delta uint64) {
	th.TimeSheets[target].NextSync = th.Cycles + delta
}

// Returns true once the scheduled sync of `target` is due
func (th *TimeHandler) NeedsSync(target SyncTarget) bool {
	return th.TimeSheets[target].NextSync <= th.Cycles
}

// Synchronization state of a single target
type TimeSheet struct {
	LastSync uint64 // Cycle count at the last Sync
	NextSync uint64 // Cycle count at which the next Sync is due
}
