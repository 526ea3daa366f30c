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

package memory_test

import (
	"math"
	"runtime/debug"
	"testing"
	"unsafe"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/memory"
	"github.com/jetsetilly/espresso/hardware/memory/memorymap"
	"github.com/jetsetilly/espresso/test"
)

func newMemory(t *testing.T) *memory.Memory {
	t.Helper()
	mem, err := memory.NewMemory()
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, mem.Destroy())
	})
	return mem
}

func TestEndianRoundTrip(t *testing.T) {
	mem := newMemory(t)
	addr := memorymap.OriginApplication

	mem.Write8(addr, 0xAB)
	test.ExpectEquality(t, mem.Read8(addr), 0xAB)

	mem.Write16(addr, 0x1234)
	test.ExpectEquality(t, mem.Read16(addr), 0x1234)
	test.ExpectEquality(t, mem.Slice(addr, 2)[0], 0x12)
	test.ExpectEquality(t, mem.Read16Reversed(addr), 0x3412)

	mem.Write32(addr, 0x12345678)
	test.ExpectEquality(t, mem.Read32(addr), 0x12345678)
	test.ExpectEquality(t, mem.Read32Reversed(addr), 0x78563412)

	// raw bytes are in guest (big-endian) order
	b := mem.Slice(addr, 4)
	test.ExpectEquality(t, b[0], 0x12)
	test.ExpectEquality(t, b[3], 0x78)

	mem.Write64(addr, 0x0102030405060708)
	test.ExpectEquality(t, mem.Read64(addr), 0x0102030405060708)
	test.ExpectEquality(t, mem.Read32(addr+4), 0x05060708)

	mem.Write32Reversed(addr, 0x12345678)
	test.ExpectEquality(t, mem.Read32(addr), 0x78563412)
	mem.Write16Reversed(addr, 0x1234)
	test.ExpectEquality(t, mem.Read16(addr), 0x3412)

	mem.WriteFloat32(addr, 1.0)
	test.ExpectEquality(t, mem.Read32(addr), 0x3F800000)
	test.ExpectEquality(t, mem.ReadFloat32(addr), 1.0)

	mem.WriteFloat64(addr, -2.0)
	test.ExpectEquality(t, mem.Read64(addr), math.Float64bits(-2.0))
	test.ExpectEquality(t, mem.ReadFloat64(addr), -2.0)

	// unaligned access
	mem.Write32(addr+1, 0xCAFEBABE)
	test.ExpectEquality(t, mem.Read32(addr+1), 0xCAFEBABE)
}

func TestTranslate(t *testing.T) {
	mem := newMemory(t)

	test.ExpectSuccess(t, mem.Translate(0) == nil)
	test.ExpectEquality(t, mem.Untranslate(nil), 0)

	for _, r := range memorymap.Ranges {
		for _, a := range []uint32{r.Origin, r.Origin + 4, r.Memtop} {
			test.ExpectEquality(t, mem.Untranslate(mem.Translate(a)), a)
		}
	}

	// the host pointer is the backing store of the guest address
	p := (*byte)(mem.Translate(memorymap.OriginMEM1 + 3))
	*p = 0x55
	test.ExpectEquality(t, mem.Read8(memorymap.OriginMEM1+3), 0x55)
}

func TestUntranslateOutsideRange(t *testing.T) {
	mem := newMemory(t)

	var v int
	defer func() {
		r := recover()
		err, ok := r.(error)
		test.DemandSuccess(t, ok)
		test.ExpectSuccess(t, curated.Is(err, memory.UntranslateRange))
	}()

	_ = mem.Untranslate(unsafe.Pointer(&v))
	t.Fatalf("expected panic")
}

func TestCompareAndSwap(t *testing.T) {
	mem := newMemory(t)
	addr := memorymap.OriginMEM1

	mem.Write32(addr, 100)
	test.ExpectFailure(t, mem.CompareAndSwap32(addr, 99, 200))
	test.ExpectEquality(t, mem.Read32(addr), 100)
	test.ExpectSuccess(t, mem.CompareAndSwap32(addr, 100, 200))
	test.ExpectEquality(t, mem.Read32(addr), 200)

	// unaligned
	mem.Write32(addr+2, 0x11223344)
	test.ExpectSuccess(t, mem.CompareAndSwap32(addr+2, 0x11223344, 0x55667788))
	test.ExpectEquality(t, mem.Read32(addr+2), 0x55667788)
}

func TestLoad(t *testing.T) {
	mem := newMemory(t)

	test.ExpectSuccess(t, mem.Load(memorymap.OriginCode, []byte{0x38, 0x60, 0x00, 0x05}))
	test.ExpectEquality(t, mem.Read32(memorymap.OriginCode), 0x38600005)

	test.ExpectFailure(t, mem.Load(0, []byte{0}))
	test.ExpectFailure(t, mem.Load(memorymap.MemtopCode, []byte{0, 0}))
}

func TestClear(t *testing.T) {
	mem := newMemory(t)
	mem.Write32(memorymap.OriginLockedCache, 0xFFFFFFFF)
	test.ExpectSuccess(t, mem.Clear(memorymap.LockedCache))
	test.ExpectEquality(t, mem.Read32(memorymap.OriginLockedCache), 0)
}

func TestFault(t *testing.T) {
	mem := newMemory(t)

	old := debug.SetPanicOnFault(true)
	defer debug.SetPanicOnFault(old)

	const unmapped = uint32(0x00001000)

	func() {
		defer func() {
			addr, ok := mem.FaultAddress(recover())
			test.ExpectSuccess(t, ok)
			test.ExpectEquality(t, addr, unmapped)
		}()
		_ = mem.Read32(unmapped)
	}()

	// multi-byte accesses that cross the end of the address space
	accesses := map[string]func(){
		"read16":  func() { _ = mem.Read16(0xffffffff) },
		"read32":  func() { _ = mem.Read32(0xfffffffe) },
		"read64":  func() { _ = mem.Read64(0xfffffffc) },
		"write32": func() { mem.Write32(0xfffffffd, 0) },
		"reverse": func() { mem.Write32Reversed(0xfffffffe, 0) },
		"slice":   func() { _ = mem.Slice(0xfffffff0, 0x20) },
	}
	for name, f := range accesses {
		t.Run(name, func(t *testing.T) {
			defer func() {
				r := recover()
				_, ok := mem.FaultAddress(r)
				test.ExpectSuccess(t, ok)
				_, ok = r.(error)
				test.ExpectSuccess(t, ok)
			}()
			f()
		})
	}

	func() {
		defer func() {
			addr, ok := mem.FaultAddress(recover())
			test.ExpectSuccess(t, ok)
			test.ExpectEquality(t, addr, uint32(0xfffffffe))
		}()
		_ = mem.Read32(0xfffffffe)
	}()

	// values that are not faults are not recognised
	_, ok := mem.FaultAddress("not a fault")
	test.ExpectFailure(t, ok)
}
