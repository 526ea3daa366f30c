// This file is part of Espresso.
//
// Espresso is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Espresso is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Espresso.  If not, see <https://www.gnu.org/licenses/>.

package cpu

// Interrupt flags. More than one interrupt can be pending at the same time.
const (
	SystemResetInterrupt uint32 = 1 << iota
	GenericInterrupt
	AlarmInterrupt
	DebugBreakInterrupt
	GPUInterrupt
	IPCInterrupt

	// interrupts that are delivered regardless of the interrupt mask
	NonMaskableInterrupts = SystemResetInterrupt

	// all interrupt flags
	InterruptMask uint32 = 0xffffffff
)

// Interrupt raises interrupts on a core. It is safe to call from any
// goroutine, including the goroutine of another core. The interrupt is
// delivered at the next instruction boundary of the target core, if it is
// not masked.
func (sch *Scheduler) Interrupt(core int, flags uint32) error {
	c, err := sch.Core(core)
	if err != nil {
		return err
	}
	c.interrupts.Or(flags)
	c.signal()
	return nil
}

// SetInterruptMask sets which interrupts are delivered to the core. Returns
// the previous mask.
func (c *Core) SetInterruptMask(mask uint32) uint32 {
	old := c.mask.Swap(mask)
	c.signal()
	return old
}

// ClearInterrupt removes the flags from the pending interrupts of the core.
func (c *Core) ClearInterrupt(flags uint32) {
	c.interrupts.And(^flags)
}

// PendingInterrupts returns the interrupts that have been raised but not yet
// delivered, including those that are masked.
func (c *Core) PendingInterrupts() uint32 {
	return c.interrupts.Load()
}

// deliverable returns the pending interrupts that are not masked.
func (c *Core) deliverable() uint32 {
	return c.interrupts.Load() & (c.mask.Load() | NonMaskableInterrupts)
}

// SetNextAlarm sets the time base value at which the alarm interrupt is
// raised. A value of zero disables the alarm.
func (c *Core) SetNextAlarm(tb uint64) {
	c.nextAlarm.Store(tb)
	c.signal()
}

// checkAlarm raises the alarm interrupt if the deadline has passed.
func (c *Core) checkAlarm() {
	na := c.nextAlarm.Load()
	if na == 0 || c.sch.Timebase() < na {
		return
	}
	if c.nextAlarm.CompareAndSwap(na, 0) {
		c.interrupts.Or(AlarmInterrupt)
	}
}

// WaitForInterrupt blocks the core until an interrupt that is not masked is
// pending, or until the scheduler is halted. It should only be called by
// handlers running on the core.
func (c *Core) WaitForInterrupt() {
	c.setState(Halted)
	defer c.setState(Running)

	for {
		c.checkAlarm()
		if c.deliverable() != 0 || c.sch.halting.Load() {
			return
		}

		na := c.nextAlarm.Load()
		if na == 0 {
			<-c.wake
			continue
		}

		t := c.sch.untilTimebase(na)
		select {
		case <-c.wake:
		case <-t.C:
		}
		t.Stop()
	}
}
