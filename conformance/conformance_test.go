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

package conformance_test

import (
	"math"
	"strings"
	"testing"

	"github.com/jetsetilly/espresso/conformance"
	"github.com/jetsetilly/espresso/curated"
	"github.com/jetsetilly/espresso/hardware/cpu/jit"
	"github.com/jetsetilly/espresso/logger"
	"github.com/jetsetilly/espresso/test"
)

func newRunner(t *testing.T) *conformance.Runner {
	t.Helper()
	r, err := conformance.NewRunner(jit.DefaultConfig(), logger.NewLogger(100))
	test.DemandSuccess(t, err)
	t.Cleanup(func() {
		test.ExpectSuccess(t, r.Destroy())
	})
	return r
}

func TestParse(t *testing.T) {
	src := `
# comment
first:
    7c642a14 4e800020   # add r3, r4, r5; blr
    # in r4 = -1
    # in f2 = 1.5
    # in f3 = 0.5f
    # in crf1 = Positive|SummaryOverflow
    # out r3 = 0x10
    # out xer.ca = 1

second:
    0x38600005
`
	tests, err := conformance.Parse(strings.NewReader(src), "src")
	test.DemandSuccess(t, err)
	test.DemandEquality(t, len(tests), 2)

	first := tests[0]
	test.ExpectEquality(t, first.Name, "first")
	test.ExpectEquality(t, first.Line, 3)
	test.DemandEquality(t, len(first.Code), 2)
	test.ExpectEquality(t, first.Code[0], uint32(0x7c642a14))
	test.ExpectEquality(t, first.Code[1], uint32(0x4e800020))

	test.ExpectEquality(t, first.In[conformance.GPR+4].Bits, uint64(0xffffffff))
	test.ExpectEquality(t, first.In[conformance.FPR+2].Bits, math.Float64bits(1.5))
	test.ExpectEquality(t, first.In[conformance.FPR+3].Bits, math.Float64bits(0.5))
	test.ExpectEquality(t, first.In[conformance.CRF+1].Bits, uint64(0x5))
	test.ExpectEquality(t, first.Out[conformance.GPR+3].Bits, uint64(0x10))
	test.ExpectEquality(t, first.Out[conformance.XERCA].Bits, uint64(1))

	test.ExpectEquality(t, tests[1].Name, "second")
	test.DemandEquality(t, len(tests[1].Code), 1)
	test.ExpectEquality(t, tests[1].Code[0], uint32(0x38600005))
}

func TestParseErrors(t *testing.T) {
	bad := []string{
		"7c642a14\n",
		"t:\n  xyz\n",
		"t:\n  # in r32 = 1\n",
		"t:\n  # in crf0 = Big\n",
		"t:\n  # out r3 = 0x100000000\n",
		"t:\n  # out r3\n",
		"# in r3 = 1\n",
	}
	for _, s := range bad {
		_, err := conformance.Parse(strings.NewReader(s), "bad")
		test.ExpectEquality(t, curated.Is(err, conformance.ParseError), true, s)
	}
}

func TestTargetNames(t *testing.T) {
	test.ExpectEquality(t, (conformance.GPR + 31).String(), "r31")
	test.ExpectEquality(t, (conformance.FPR + 0).String(), "f0")
	test.ExpectEquality(t, (conformance.CRF + 7).String(), "crf7")
	test.ExpectEquality(t, conformance.XERBC.String(), "xer.bc")
}

func TestNaNValue(t *testing.T) {
	tests, err := conformance.Parse(strings.NewReader("t:\n  # out f1 = nan\n"), "nan")
	test.DemandSuccess(t, err)
	v := tests[0].Out[conformance.FPR+1]
	test.ExpectEquality(t, v.Equal(0x7ff8000000000000), true)
	test.ExpectEquality(t, v.Equal(0x7ff0000000000001), true)
	test.ExpectEquality(t, v.Equal(0), false)
}

func TestRunDir(t *testing.T) {
	r := newRunner(t)

	w, err := test.NewCappedWriter(4096)
	test.DemandSuccess(t, err)

	res, err := r.RunDir("testdata", w)
	test.DemandSuccess(t, err)

	for _, f := range res.Failures {
		t.Error(f)
	}
	test.ExpectEquality(t, res.Failed, 0)
	test.ExpectEquality(t, res.Passed, 58)
	test.ExpectEquality(t, w.Dropped(), 0)
	test.ExpectEquality(t, strings.Contains(w.String(), "PASSED fmul\n"), true)
}

func TestRunFailures(t *testing.T) {
	r := newRunner(t)

	src := `
wrong_output:
    38600005    # li r3, 5
    # out r3 = 6

unexpected_change:
    38800006    # li r4, 6

system_call:
    44000002    # sc

unmapped:
    80601000    # lwz r3, 0x1000(0)
`
	tests, err := conformance.Parse(strings.NewReader(src), "src")
	test.DemandSuccess(t, err)

	w, err := test.NewCappedWriter(4096)
	test.DemandSuccess(t, err)

	res := r.Run(tests, w)
	test.ExpectEquality(t, res.Passed, 0)
	test.ExpectEquality(t, res.Failed, 4)

	// every run of every test fails
	test.DemandEquality(t, len(res.Failures), 16)
	test.ExpectEquality(t, strings.Contains(res.Failures[0].String(), "expected r3 to be 0x6 but got 0x5"), true)
	test.ExpectEquality(t, strings.Contains(res.Failures[4].String(), "expected r4 to be unchanged"), true)
	test.ExpectEquality(t, strings.Contains(res.Failures[8].String(), "unexpected system call"), true)
	test.ExpectEquality(t, strings.Contains(res.Failures[12].String(), "access violation at 00001000"), true)
	test.ExpectEquality(t, strings.Contains(w.String(), "FAILED unmapped\n"), true)
}

func TestLimitFailureLog(t *testing.T) {
	log := logger.NewLogger(100)
	r, err := conformance.NewRunner(jit.DefaultConfig(), log)
	test.DemandSuccess(t, err)
	defer func() {
		test.ExpectSuccess(t, r.Destroy())
	}()

	tests, err := conformance.Parse(strings.NewReader("wrong:\n    38600005\n    # out r3 = 6\n"), "src")
	test.DemandSuccess(t, err)

	count := func() int {
		var n int
		log.BorrowLog(func(ent []logger.Entry) {
			for _, e := range ent {
				if e.Tag == "test" {
					n++
				}
			}
		})
		return n
	}

	// one failure for each of the four runs
	res := r.Run(tests, nil)
	test.ExpectEquality(t, len(res.Failures), 4)
	test.ExpectEquality(t, count(), 4)

	log.Clear()
	r.LimitFailureLog(3)
	res = r.Run(tests, nil)
	test.ExpectEquality(t, len(res.Failures), 4)
	test.ExpectEquality(t, count(), 3)

	// the limit is spent
	log.Clear()
	res = r.Run(tests, nil)
	test.ExpectEquality(t, len(res.Failures), 4)
	test.ExpectEquality(t, count(), 0)
}

func TestNoTests(t *testing.T) {
	r := newRunner(t)
	_, err := r.RunDir(t.TempDir(), nil)
	test.ExpectEquality(t, curated.Is(err, conformance.NoTests), true)
}
