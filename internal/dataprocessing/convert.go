package dataprocessing

import (
	"github.com/jstetich/CBEP-OA-1/pkg/contracts/domain"
)

// Dissolved-oxygen conversion constants.
const (
	seawaterDensity = 1.027  // kg/L
	molarMassO      = 15.999 // g/mol
)

// DOMgPerL converts dissolved oxygen from umol/kg to mg/L. NA input
// yields NA output through ordinary NaN arithmetic.
func DOMgPerL(doUmolPerKg float64) float64 {
	return doUmolPerKg * seawaterDensity * molarMassO * 2 * 1000 / 1e6
}

// ApplyDOConversion fills the DOMgPerL column of every observation from
// its raw dissolved-oxygen reading, in place.
func ApplyDOConversion(obs []domain.Observation) {
	for i := range obs {
		obs[i].DOMgPerL = DOMgPerL(obs[i].DO)
	}
}
