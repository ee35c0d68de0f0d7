package gold

import (
	"fmt"
	"math"
	"math/big"

	"github.com/shopspring/decimal"

	"github.com/jsamuelsen11/gold-appraisal/internal/domain"
)

// purityPlaces is the number of decimal places purity is rounded to.
const purityPlaces = 4

// mantissaBits is the width of a float64 significand including the hidden bit.
const mantissaBits = 53

// Purity returns the ratio of gold mass to total mass rounded to four decimal
// places. The ratio is computed in float64 and its exact binary value is
// rounded half-to-even, so a quotient stored just above or below a decimal tie
// rounds the way it is stored. Returns domain.ErrUndefinedPurity when the
// total mass is zero.
func (p *Piece) Purity() (float64, error) {
	if p.totalMass == 0 {
		return 0, fmt.Errorf("%s: %w", p.name, domain.ErrUndefinedPurity)
	}

	ratio := float64(p.goldMass) / float64(p.totalMass)
	return exactDecimal(ratio).RoundBank(purityPlaces).InexactFloat64(), nil
}

// MustPurity is like Purity but panics when purity is undefined.
func (p *Piece) MustPurity() float64 {
	purity, err := p.Purity()
	if err != nil {
		panic(err)
	}
	return purity
}

// exactDecimal converts a finite float64 to the decimal with exactly the same
// value. f = m * 2^e, and for e < 0 that equals m * 5^-e * 10^e.
func exactDecimal(f float64) decimal.Decimal {
	frac, exp := math.Frexp(f)
	m := big.NewInt(int64(math.Ldexp(frac, mantissaBits)))
	e := exp - mantissaBits

	if e >= 0 {
		return decimal.NewFromBigInt(new(big.Int).Lsh(m, uint(e)), 0)
	}

	pow5 := new(big.Int).Exp(big.NewInt(5), big.NewInt(int64(-e)), nil)
	return decimal.NewFromBigInt(new(big.Int).Mul(m, pow5), int32(e))
}
