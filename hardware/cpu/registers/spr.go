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

package registers

import "fmt"

// SPR numbers recognised by mfspr and mtspr.
const (
	SprXER    = 1
	SprLR     = 8
	SprCTR    = 9
	SprDSISR  = 18
	SprDAR    = 19
	SprDEC    = 22
	SprSDR1   = 25
	SprSRR0   = 26
	SprSRR1   = 27
	SprTBL    = 268
	SprTBU    = 269
	SprSPRG0  = 272
	SprSPRG1  = 273
	SprSPRG2  = 274
	SprSPRG3  = 275
	SprEAR    = 282
	SprTBLW   = 284
	SprTBUW   = 285
	SprPVR    = 287
	SprUGQR0  = 896
	SprUGQR7  = 903
	SprUMMCR0 = 936
	SprUPMC1  = 937
	SprUPMC2  = 938
	SprUSIA   = 939
	SprUMMCR1 = 940
	SprUPMC3  = 941
	SprUPMC4  = 942
	SprGQR0   = 912
	SprGQR7   = 919
	SprHID2   = 920
	SprWPAR   = 921
	SprDMAU   = 922
	SprDMAL   = 923
	SprMMCR0  = 952
	SprPMC1   = 953
	SprPMC2   = 954
	SprSIA    = 955
	SprMMCR1  = 956
	SprPMC3   = 957
	SprPMC4   = 958
	SprUPIR   = 1007
	SprHID0   = 1008
	SprHID1   = 1009
	SprIABR   = 1010
	SprHID4   = 1011
	SprDABR   = 1013
	SprL2CR   = 1017
	SprICTC   = 1019
	SprTHRM1  = 1020
	SprTHRM2  = 1021
	SprTHRM3  = 1022
)

// SprName returns the conventional name of the SPR. Unknown SPRs are
// returned as "sprN".
func SprName(n uint32) string {
	switch {
	case n >= SprGQR0 && n <= SprGQR7:
		return fmt.Sprintf("gqr%d", n-SprGQR0)
	case n >= SprUGQR0 && n <= SprUGQR7:
		return fmt.Sprintf("ugqr%d", n-SprUGQR0)
	case n >= SprSPRG0 && n <= SprSPRG3:
		return fmt.Sprintf("sprg%d", n-SprSPRG0)
	}

	switch n {
	case SprXER:
		return "xer"
	case SprLR:
		return "lr"
	case SprCTR:
		return "ctr"
	case SprDSISR:
		return "dsisr"
	case SprDAR:
		return "dar"
	case SprDEC:
		return "dec"
	case SprSDR1:
		return "sdr1"
	case SprSRR0:
		return "srr0"
	case SprSRR1:
		return "srr1"
	case SprTBL, SprTBLW:
		return "tbl"
	case SprTBU, SprTBUW:
		return "tbu"
	case SprEAR:
		return "ear"
	case SprPVR:
		return "pvr"
	case SprHID0:
		return "hid0"
	case SprHID1:
		return "hid1"
	case SprHID2:
		return "hid2"
	case SprHID4:
		return "hid4"
	case SprWPAR:
		return "wpar"
	case SprDMAU:
		return "dmau"
	case SprDMAL:
		return "dmal"
	case SprUPIR:
		return "upir"
	case SprL2CR:
		return "l2cr"
	case SprDABR:
		return "dabr"
	case SprIABR:
		return "iabr"
	case SprMMCR0, SprUMMCR0:
		return "mmcr0"
	case SprMMCR1, SprUMMCR1:
		return "mmcr1"
	case SprPMC1, SprUPMC1:
		return "pmc1"
	case SprPMC2, SprUPMC2:
		return "pmc2"
	case SprPMC3, SprUPMC3:
		return "pmc3"
	case SprPMC4, SprUPMC4:
		return "pmc4"
	case SprSIA, SprUSIA:
		return "sia"
	case SprICTC:
		return "ictc"
	case SprTHRM1:
		return "thrm1"
	case SprTHRM2:
		return "thrm2"
	case SprTHRM3:
		return "thrm3"
	}

	return fmt.Sprintf("spr%d", n)
}
