//go:build go1.18
// +build go1.18

package stackcalc_test

import (
	"testing"

	"github.com/zephyrtronium/stackcalc"
)

func FuzzParse(f *testing.F) {
	f.Add("1 + 2")
	f.Add("(-2) ** 3 ** -1\n")
	f.Add("1.1.1")
	f.Add("((")
	f.Fuzz(func(t *testing.T, s string) {
		prog, err := stackcalc.ParseString(s)
		if err != nil {
			return
		}
		pops := 0
		for _, in := range stackcalc.Compile(prog) {
			if in.Op == stackcalc.OpPop {
				pops++
			}
		}
		if pops != len(prog.Statements) {
			t.Errorf("%q: %d statements compiled to %d pops", s, len(prog.Statements), pops)
		}
	})
}
