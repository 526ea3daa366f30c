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

package instructions

// Category groups instructions by the kind of work they do.
type Category int

// List of valid Category values.
const (
	Unknown Category = iota
	Arithmetic
	Compare
	Logical
	Rotate
	Shift
	Float
	FloatCompare
	FloatStatus
	Load
	Store
	LoadFloat
	StoreFloat
	Paired
	LoadPaired
	StorePaired
	Branch
	ConditionRegister
	System
	Cache
	Trap
)

func (c Category) String() string {
	switch c {
	case Arithmetic:
		return "Arithmetic"
	case Compare:
		return "Compare"
	case Logical:
		return "Logical"
	case Rotate:
		return "Rotate"
	case Shift:
		return "Shift"
	case Float:
		return "Float"
	case FloatCompare:
		return "FloatCompare"
	case FloatStatus:
		return "FloatStatus"
	case Load:
		return "Load"
	case Store:
		return "Store"
	case LoadFloat:
		return "LoadFloat"
	case StoreFloat:
		return "StoreFloat"
	case Paired:
		return "Paired"
	case LoadPaired:
		return "LoadPaired"
	case StorePaired:
		return "StorePaired"
	case Branch:
		return "Branch"
	case ConditionRegister:
		return "ConditionRegister"
	case System:
		return "System"
	case Cache:
		return "Cache"
	case Trap:
		return "Trap"
	}
	return "unknown category"
}

// AccessesMemory returns true for categories of instruction that read or
// write guest memory.
func (c Category) AccessesMemory() bool {
	switch c {
	case Load, Store, LoadFloat, StoreFloat, LoadPaired, StorePaired:
		return true
	}
	return false
}
