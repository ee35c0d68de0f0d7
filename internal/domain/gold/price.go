package gold

import "math"

// DefaultPerGram is the price of one gram of pure gold used when no rate is given.
const DefaultPerGram = 2000

// PriceOption configures a single Price call.
type PriceOption func(*priceOptions)

type priceOptions struct {
	perGram       int
	includeMarkup bool
	forcedPurity  *float64
}

// WithPerGram sets the price of one gram of pure gold.
func WithPerGram(perGram int) PriceOption {
	return func(o *priceOptions) {
		o.perGram = perGram
	}
}

// WithMarkupIncluded controls whether the piece's markup is added.
func WithMarkupIncluded(include bool) PriceOption {
	return func(o *priceOptions) {
		o.includeMarkup = include
	}
}

// WithoutMarkup leaves the piece's markup out of the price.
func WithoutMarkup() PriceOption {
	return WithMarkupIncluded(false)
}

// WithForcedPurity prices the whole mass at the given purity instead of
// using the measured gold mass. The value is not range-checked.
func WithForcedPurity(purity float64) PriceOption {
	return func(o *priceOptions) {
		o.forcedPurity = &purity
	}
}

// Price returns the appraised price of the piece, truncated toward zero.
//
// By default it is goldMass * DefaultPerGram + markup. With WithForcedPurity
// the gold content is taken as purity * totalMass, computed in floating point.
func (p *Piece) Price(opts ...PriceOption) int {
	o := priceOptions{
		perGram:       DefaultPerGram,
		includeMarkup: true,
	}
	for _, opt := range opts {
		opt(&o)
	}

	markup := 0
	if o.includeMarkup {
		markup = p.markup
	}

	if o.forcedPurity != nil {
		price := *o.forcedPurity*float64(p.totalMass)*float64(o.perGram) + float64(markup)
		return int(math.Trunc(price))
	}

	return p.goldMass*o.perGram + markup
}
