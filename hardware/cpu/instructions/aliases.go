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

// AliasConstraint is a requirement on the value of a field. If Other is not
// NoField then the value of Field must equal the value of Other, otherwise
// the value of Field must equal Value.
type AliasConstraint struct {
	Field Field
	Value uint32
	Other Field
}

// Match returns true if the instruction satisfies the constraint.
func (c AliasConstraint) Match(ins Instruction) bool {
	if c.Other != NoField {
		return c.Field.Value(ins) == c.Other.Value(ins)
	}
	return c.Field.Value(ins) == c.Value
}

// Alias is a simplified mnemonic for an instruction with particular operand
// values. For example, "or r3, r4, r4" is more usually written "mr r3, r4".
type Alias struct {
	Name string
	ID   ID

	// the constraints that must be satisfied for the alias to apply. the
	// constrained fields are not shown as operands when the alias is used
	Match []AliasConstraint

	// additional fields that are not shown as operands
	Hide []Field

	// additional test for rules that cannot be expressed as a constraint
	Test func(Instruction) bool

	// the condition register field selected by BI is shown as the first
	// operand, unless it is cr0
	CRField bool
}

func eq(f Field, v uint32) AliasConstraint {
	return AliasConstraint{Field: f, Value: v}
}

func same(f Field, o Field) AliasConstraint {
	return AliasConstraint{Field: f, Other: o}
}

// aliases are checked in order. the first match is used.
var aliases = append([]Alias{
	{Name: "nop", ID: Ori, Match: []AliasConstraint{eq(RA, 0), eq(RS, 0), eq(UIMM, 0)}},
	{Name: "li", ID: Addi, Match: []AliasConstraint{eq(RA, 0)}},
	{Name: "lis", ID: Addis, Match: []AliasConstraint{eq(RA, 0)}},
	{Name: "mr", ID: Or, Match: []AliasConstraint{same(RS, RB)}},
	{Name: "not", ID: Nor, Match: []AliasConstraint{same(RS, RB)}},
	{Name: "mtxer", ID: Mtspr, Match: []AliasConstraint{eq(SPR, 1)}},
	{Name: "mtlr", ID: Mtspr, Match: []AliasConstraint{eq(SPR, 8)}},
	{Name: "mtctr", ID: Mtspr, Match: []AliasConstraint{eq(SPR, 9)}},
	{Name: "mfxer", ID: Mfspr, Match: []AliasConstraint{eq(SPR, 1)}},
	{Name: "mflr", ID: Mfspr, Match: []AliasConstraint{eq(SPR, 8)}},
	{Name: "mfctr", ID: Mfspr, Match: []AliasConstraint{eq(SPR, 9)}},
	{Name: "mtcr", ID: Mtcrf, Match: []AliasConstraint{eq(CRM, 0xff)}},
	{Name: "cmpw", ID: Cmp, Match: []AliasConstraint{eq(L, 0)}},
	{Name: "cmpwi", ID: Cmpi, Match: []AliasConstraint{eq(L, 0)}},
	{Name: "cmplw", ID: Cmpl, Match: []AliasConstraint{eq(L, 0)}},
	{Name: "cmplwi", ID: Cmpli, Match: []AliasConstraint{eq(L, 0)}},
	{Name: "rotlwi", ID: Rlwinm, Match: []AliasConstraint{eq(MB, 0), eq(ME, 31)}},
	{Name: "clrlwi", ID: Rlwinm, Match: []AliasConstraint{eq(SH, 0), eq(ME, 31)}},
	{Name: "slwi", ID: Rlwinm, Match: []AliasConstraint{eq(MB, 0)}, Hide: []Field{ME},
		Test: func(ins Instruction) bool {
			return ins.ME() == 31-ins.SH()
		},
	},
	{Name: "srwi", ID: Rlwinm, Match: []AliasConstraint{eq(ME, 31)}, Hide: []Field{SH},
		Test: func(ins Instruction) bool {
			return ins.SH() != 0 && ins.SH() == 32-ins.MB()
		},
	},
	{Name: "rotlw", ID: Rlwnm, Match: []AliasConstraint{eq(MB, 0), eq(ME, 31)}},
	{Name: "crset", ID: Creqv, Match: []AliasConstraint{same(CRBA, CRBD), same(CRBB, CRBD)}},
	{Name: "crclr", ID: Crxor, Match: []AliasConstraint{same(CRBA, CRBD), same(CRBB, CRBD)}},
	{Name: "crmove", ID: Cror, Match: []AliasConstraint{same(CRBB, CRBA)}},
	{Name: "crnot", ID: Crnor, Match: []AliasConstraint{same(CRBB, CRBA)}},
}, branchAliases()...)

// branchAliases returns the simplified mnemonics for the three conditional
// branch instructions. only the BO values without a prediction hint have an
// alias.
func branchAliases() []Alias {
	conditions := []struct {
		name string
		bo   uint32
		bit  uint32
	}{
		{"lt", 12, 0}, {"gt", 12, 1}, {"eq", 12, 2}, {"so", 12, 3},
		{"ge", 4, 0}, {"le", 4, 1}, {"ne", 4, 2}, {"ns", 4, 3},
	}

	var a []Alias
	for _, b := range []struct {
		id     ID
		suffix string
	}{{Bc, ""}, {Bclr, "lr"}, {Bcctr, "ctr"}} {
		a = append(a,
			Alias{Name: "b" + b.suffix, ID: b.id, Match: []AliasConstraint{eq(BO, 20)}, Hide: []Field{BI}},
			Alias{Name: "bdnz" + b.suffix, ID: b.id, Match: []AliasConstraint{eq(BO, 16), eq(BI, 0)}},
			Alias{Name: "bdz" + b.suffix, ID: b.id, Match: []AliasConstraint{eq(BO, 18), eq(BI, 0)}},
		)
		for _, c := range conditions {
			bit := c.bit
			a = append(a, Alias{
				Name:    "b" + c.name + b.suffix,
				ID:      b.id,
				Match:   []AliasConstraint{eq(BO, c.bo)},
				Hide:    []Field{BI},
				CRField: true,
				Test: func(ins Instruction) bool {
					return ins.BI()&3 == bit
				},
			})
		}
	}
	return a
}

// FindAlias returns the first alias of the instruction that matches.
// Returns nil if there is no matching alias.
func FindAlias(defn *Definition, ins Instruction) *Alias {
	if defn == nil {
		return nil
	}
	for i := range aliases {
		a := &aliases[i]
		if a.ID != defn.ID {
			continue
		}
		if a.matches(ins) {
			return a
		}
	}
	return nil
}

func (a *Alias) matches(ins Instruction) bool {
	for _, c := range a.Match {
		if !c.Match(ins) {
			return false
		}
	}
	if a.Test != nil {
		return a.Test(ins)
	}
	return true
}

// Hides returns true if the field should not be shown as an operand when the
// alias is used.
func (a *Alias) Hides(f Field) bool {
	for _, c := range a.Match {
		if c.Field == f {
			return true
		}
	}
	for _, h := range a.Hide {
		if h == f {
			return true
		}
	}
	return false
}
