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

package memory

import (
	"encoding/binary"
	"fmt"
	"math"
	"sync/atomic"
	"unsafe"

	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/memory/memorymap"
	"golang.org/x/sys/unix"
)

// Sentinal errors.
const (
	ReserveFailed    = "memory: cannot reserve address space: %v"
	CommitFailed     = "memory: cannot commit %s: %v"
	UntranslateRange = "memory: host pointer %#x is outside of the guest address space"
	LoadRange        = "memory: load of %d bytes at %08x is outside of mapped memory"
)

// size of the guest address space.
const reservationSize = 1 << 32

// Memory is the guest address space.
type Memory struct {
	data []byte
	base uintptr
}

// NewMemory is the preferred method of initialisation for the Memory type.
func NewMemory() (*Memory, error) {
	data, err := unix.Mmap(-1, 0, reservationSize, unix.PROT_NONE,
		unix.MAP_PRIVATE|unix.MAP_ANON|unix.MAP_NORESERVE)
	if err != nil {
		return nil, curated.Errorf(ReserveFailed, err)
	}

	mem := &Memory{
		data: data,
		base: uintptr(unsafe.Pointer(&data[0])),
	}

	for _, r := range memorymap.Ranges {
		err = unix.Mprotect(mem.data[r.Origin:uint64(r.Memtop)+1], unix.PROT_READ|unix.PROT_WRITE)
		if err != nil {
			_ = mem.Destroy()
			return nil, curated.Errorf(CommitFailed, r.Area, err)
		}
	}

	return mem, nil
}

// Destroy releases the host memory. The Memory instance must not be used
// afterwards.
func (mem *Memory) Destroy() error {
	if mem.data == nil {
		return nil
	}
	err := unix.Munmap(mem.data)
	mem.data = nil
	mem.base = 0
	return err
}

// Clear zeroes an area of memory. The host pages are released and will be
// recommitted on next access.
func (mem *Memory) Clear(area memorymap.Area) error {
	for _, r := range memorymap.Ranges {
		if r.Area == area {
			return unix.Madvise(mem.data[r.Origin:uint64(r.Memtop)+1], unix.MADV_DONTNEED)
		}
	}
	return nil
}

// Translate a guest address to a host pointer. Address zero translates to
// nil.
func (mem *Memory) Translate(addr uint32) unsafe.Pointer {
	if addr == 0 {
		return nil
	}
	return unsafe.Pointer(&mem.data[addr])
}

// Untranslate a host pointer to a guest address. A nil pointer is address
// zero. Pointers outside the guest address space are an unrecoverable
// programming error and cause a panic.
func (mem *Memory) Untranslate(ptr unsafe.Pointer) uint32 {
	if ptr == nil {
		return 0
	}
	addr, ok := mem.guestAddress(uintptr(ptr))
	if !ok {
		panic(curated.Errorf(UntranslateRange, uintptr(ptr)))
	}
	return addr
}

func (mem *Memory) guestAddress(host uintptr) (uint32, bool) {
	if host < mem.base || host-mem.base >= reservationSize {
		return 0, false
	}
	return uint32(host - mem.base), true
}

// endFault is raised by an access that runs past the end of the guest address
// space.
type endFault struct {
	host uintptr
}

// Addr has the same signature as the Addr() function of the runtime error
// raised for memory faults.
func (f endFault) Addr() uintptr {
	return f.host
}

func (f endFault) Error() string {
	return fmt.Sprintf("memory: access at %#x runs past the end of the address space", f.host)
}

// span returns the n bytes of host memory at addr.
func (mem *Memory) span(addr uint32, n uint64) []byte {
	end := uint64(addr) + n
	if end > reservationSize {
		panic(endFault{host: mem.base + uintptr(addr)})
	}
	return mem.data[addr:end]
}

// FaultAddress examines a value recovered from a panic. If the panic was
// caused by a memory fault inside the guest address space then the guest
// address is returned.
func (mem *Memory) FaultAddress(r any) (uint32, bool) {
	f, ok := r.(interface{ Addr() uintptr })
	if !ok {
		return 0, false
	}
	return mem.guestAddress(f.Addr())
}

// IsMapped returns true if the access of size bytes at addr is entirely
// inside mapped memory.
func (mem *Memory) IsMapped(addr uint32, size uint32) bool {
	return memorymap.IsMapped(addr, size)
}

// Area returns the memory area the address is in.
func (mem *Memory) Area(addr uint32) memorymap.Area {
	a, _ := memorymap.MapAddress(addr)
	return a
}

// Slice returns the host memory backing n bytes starting at addr. The slice
// is in guest byte order.
func (mem *Memory) Slice(addr uint32, n uint32) []byte {
	return mem.span(addr, uint64(n))
}

// Load copies data into guest memory.
func (mem *Memory) Load(addr uint32, data []byte) error {
	if !mem.IsMapped(addr, uint32(len(data))) {
		return curated.Errorf(LoadRange, len(data), addr)
	}
	copy(mem.Slice(addr, uint32(len(data))), data)
	return nil
}

// Read8 returns the byte at addr.
func (mem *Memory) Read8(addr uint32) uint8 {
	return mem.data[addr]
}

// Read16 returns the big-endian 16 bit value at addr.
func (mem *Memory) Read16(addr uint32) uint16 {
	return binary.BigEndian.Uint16(mem.span(addr, 2))
}

// Read32 returns the big-endian 32 bit value at addr.
func (mem *Memory) Read32(addr uint32) uint32 {
	return binary.BigEndian.Uint32(mem.span(addr, 4))
}

// Read64 returns the big-endian 64 bit value at addr.
func (mem *Memory) Read64(addr uint32) uint64 {
	return binary.BigEndian.Uint64(mem.span(addr, 8))
}

// Read16Reversed returns the little-endian 16 bit value at addr.
func (mem *Memory) Read16Reversed(addr uint32) uint16 {
	return binary.LittleEndian.Uint16(mem.span(addr, 2))
}

// Read32Reversed returns the little-endian 32 bit value at addr.
func (mem *Memory) Read32Reversed(addr uint32) uint32 {
	return binary.LittleEndian.Uint32(mem.span(addr, 4))
}

// ReadFloat32 returns the bits of the single precision value at addr.
func (mem *Memory) ReadFloat32(addr uint32) float32 {
	return math.Float32frombits(mem.Read32(addr))
}

// ReadFloat64 returns the double precision value at addr.
func (mem *Memory) ReadFloat64(addr uint32) float64 {
	return math.Float64frombits(mem.Read64(addr))
}

// Write8 writes a byte to addr.
func (mem *Memory) Write8(addr uint32, v uint8) {
	mem.data[addr] = v
}

// Write16 writes a 16 bit value to addr in big-endian order.
func (mem *Memory) Write16(addr uint32, v uint16) {
	binary.BigEndian.PutUint16(mem.span(addr, 2), v)
}

// Write32 writes a 32 bit value to addr in big-endian order.
func (mem *Memory) Write32(addr uint32, v uint32) {
	binary.BigEndian.PutUint32(mem.span(addr, 4), v)
}

// Write64 writes a 64 bit value to addr in big-endian order.
func (mem *Memory) Write64(addr uint32, v uint64) {
	binary.BigEndian.PutUint64(mem.span(addr, 8), v)
}

// Write16Reversed writes a 16 bit value to addr in little-endian order.
func (mem *Memory) Write16Reversed(addr uint32, v uint16) {
	binary.LittleEndian.PutUint16(mem.span(addr, 2), v)
}

// Write32Reversed writes a 32 bit value to addr in little-endian order.
func (mem *Memory) Write32Reversed(addr uint32, v uint32) {
	binary.LittleEndian.PutUint32(mem.span(addr, 4), v)
}

// WriteFloat32 writes a single precision value to addr.
func (mem *Memory) WriteFloat32(addr uint32, v float32) {
	mem.Write32(addr, math.Float32bits(v))
}

// WriteFloat64 writes a double precision value to addr.
func (mem *Memory) WriteFloat64(addr uint32, v float64) {
	mem.Write64(addr, math.Float64bits(v))
}

// CompareAndSwap32 atomically replaces the big-endian 32 bit value at addr
// with new if it currently holds old. Unaligned addresses are not atomic.
func (mem *Memory) CompareAndSwap32(addr uint32, old uint32, new uint32) bool {
	if addr&3 != 0 {
		if mem.Read32(addr) != old {
			return false
		}
		mem.Write32(addr, new)
		return true
	}

	p := (*uint32)(unsafe.Pointer(&mem.data[addr]))
	return atomic.CompareAndSwapUint32(p, hostOrder(old), hostOrder(new))
}

// hostOrder converts a value to the representation that has the same bytes
// in host memory as the guest value has in guest memory.
func hostOrder(v uint32) uint32 {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	return binary.NativeEndian.Uint32(b[:])
}
