// Package gold models a physical artifact that may be partly gold and answers
// simple appraisal questions about it: price at a per-gram rate and purity.
//
// A Piece is a value: it carries no identity, and two pieces are equal when
// their gold mass, total mass and markup match. The name is a label only.
package gold

import (
	"fmt"

	"github.com/jsamuelsen11/gold-appraisal/internal/domain"
)

// DefaultName is used when a piece is created without a name.
const DefaultName = "Gold"

// Piece is an artifact with a gold content and a total mass, both in grams,
// plus a flat markup added to its appraised price.
//
// Add and Remove are the only ways to change the masses. Neither validates the
// sign of the amount, so the gold <= total invariant holds only for
// non-negative inputs and gold-only removals. Use Validate to check it.
type Piece struct {
	name      string
	goldMass  int
	totalMass int
	markup    int
}

// Option configures a Piece at construction.
type Option func(*Piece)

// WithName sets the piece's name. An empty name keeps DefaultName.
func WithName(name string) Option {
	return func(p *Piece) {
		if name != "" {
			p.name = name
		}
	}
}

// WithMarkup sets the flat amount added to the appraised price.
func WithMarkup(markup int) Option {
	return func(p *Piece) {
		p.markup = markup
	}
}

// New creates an empty piece named DefaultName with zero markup unless
// overridden by opts.
func New(opts ...Option) *Piece {
	p := &Piece{name: DefaultName}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Name returns the piece's label.
func (p *Piece) Name() string { return p.name }

// GoldMass returns the grams of pure gold in the piece.
func (p *Piece) GoldMass() int { return p.goldMass }

// TotalMass returns the grams of the whole piece, gold and non-gold.
func (p *Piece) TotalMass() int { return p.totalMass }

// Markup returns the flat amount added to the appraised price.
func (p *Piece) Markup() int { return p.markup }

// Add increases the total mass by amount, and the gold mass too when isGold
// is set. Negative amounts are applied as-is.
func (p *Piece) Add(isGold bool, amount int) {
	p.totalMass += amount
	if isGold {
		p.goldMass += amount
	}
}

// Remove takes up to amount grams out of the piece and returns how much was
// actually removed.
//
// Gold removal is capped at the gold mass and takes the same amount off the
// total. Non-gold removal is capped at the total mass and leaves the gold mass
// alone, so it can drop the total below the gold mass.
func (p *Piece) Remove(isGold bool, amount int) int {
	if isGold {
		removed := min(amount, p.goldMass)
		p.goldMass -= removed
		p.totalMass -= removed
		return removed
	}

	removed := min(amount, p.totalMass)
	p.totalMass -= removed
	return removed
}

// Equal reports whether both pieces hold the same gold mass, total mass and
// markup. Names are ignored.
func (p *Piece) Equal(other *Piece) bool {
	if p == nil || other == nil {
		return p == other
	}
	return p.goldMass == other.goldMass &&
		p.totalMass == other.totalMass &&
		p.markup == other.markup
}

// Validate checks the mass invariants that Add and Remove do not enforce.
// Returns a *domain.ValidationError (wrapping domain.ErrValidation) with
// per-field details, or nil if the piece is consistent.
func (p *Piece) Validate() error {
	fields := make(map[string]string)

	if p.goldMass < 0 {
		fields["gold_mass"] = domain.MsgNegative
	}
	if p.totalMass < 0 {
		fields["total_mass"] = domain.MsgNegative
	}
	if p.goldMass > p.totalMass {
		fields["invariant"] = fmt.Sprintf("gold mass exceeds total mass: %d > %d", p.goldMass, p.totalMass)
	}

	if len(fields) > 0 {
		return &domain.ValidationError{Fields: fields}
	}
	return nil
}

// String implements fmt.Stringer.
func (p *Piece) String() string {
	return fmt.Sprintf("Gold: %s, %d g / %d g", p.name, p.goldMass, p.totalMass)
}
