package selftest

import (
	"context"
	"errors"
	"fmt"

	"github.com/jsamuelsen11/gold-appraisal/internal/domain"
	"github.com/jsamuelsen11/gold-appraisal/internal/domain/gold"
	"github.com/jsamuelsen11/gold-appraisal/internal/ports"
)

// Examples returns the documented gold piece behaviors as runnable cases.
// The appraiser cases use whatever defaults it was configured with, so they
// only check values that do not depend on the configured rate.
func Examples(appraiser ports.Appraiser) []Case {
	return []Case{
		{Name: "new piece defaults", Run: newPieceDefaults},
		{Name: "named piece", Run: namedPiece},
		{Name: "ring scenario", Run: ringScenario},
		{Name: "price with and without markup", Run: priceMarkup},
		{Name: "forced purity price", Run: forcedPurityPrice},
		{Name: "equality ignores name", Run: equalityIgnoresName},
		{Name: "markup breaks equality", Run: markupBreaksEquality},
		{Name: "gold add/remove round trip", Run: goldRoundTrip},
		{Name: "removal is clamped", Run: removalClamped},
		{Name: "empty piece has undefined purity", Run: undefinedPurity},
		{Name: "appraiser reports ring", Run: appraiseRing(appraiser)},
		{Name: "appraiser tolerates empty piece", Run: appraiseEmpty(appraiser)},
	}
}

func expect[T comparable](what string, got, want T) error {
	if got != want {
		return fmt.Errorf("%s = %v, want %v", what, got, want)
	}
	return nil
}

func newRing() *gold.Piece {
	g := gold.New(gold.WithName("Ring"), gold.WithMarkup(50))
	g.Add(true, 10)
	g.Add(false, 5)
	return g
}

func newPieceDefaults(context.Context) error {
	p := gold.New()
	return errors.Join(
		expect("name", p.Name(), "Gold"),
		expect("gold mass", p.GoldMass(), 0),
		expect("total mass", p.TotalMass(), 0),
		expect("markup", p.Markup(), 0),
	)
}

func namedPiece(context.Context) error {
	return expect("name", gold.New(gold.WithName("a")).Name(), "a")
}

func ringScenario(context.Context) error {
	g := newRing()
	purity, err := g.Purity()
	if err != nil {
		return err
	}
	return errors.Join(
		expect("gold mass", g.GoldMass(), 10),
		expect("total mass", g.TotalMass(), 15),
		expect("purity", purity, 0.6667),
		expect("price", g.Price(), 20050),
		expect("text", g.String(), "Gold: Ring, 10 g / 15 g"),
	)
}

func priceMarkup(context.Context) error {
	p := gold.New(gold.WithMarkup(100))
	p.Add(true, 5)
	return errors.Join(
		expect("price", p.Price(gold.WithPerGram(2000)), 10100),
		expect("price without markup", p.Price(gold.WithPerGram(2000), gold.WithoutMarkup()), 10000),
	)
}

func forcedPurityPrice(context.Context) error {
	g := newRing()
	return errors.Join(
		expect("forced price", g.Price(gold.WithForcedPurity(0.5)), 15050),
		expect("forced price without markup", g.Price(gold.WithForcedPurity(1), gold.WithoutMarkup()), 30000),
	)
}

func equalityIgnoresName(context.Context) error {
	a := gold.New(gold.WithName("Ring"), gold.WithMarkup(10))
	b := gold.New(gold.WithName("Coin"), gold.WithMarkup(10))
	a.Add(true, 3)
	b.Add(true, 3)
	return expect("equal", a.Equal(b), true)
}

func markupBreaksEquality(context.Context) error {
	a := gold.New(gold.WithMarkup(10))
	b := gold.New(gold.WithMarkup(11))
	return expect("equal", a.Equal(b), false)
}

func goldRoundTrip(context.Context) error {
	var errs []error
	for _, amount := range []int{0, 1, 10, 2500} {
		g := newRing()
		g.Add(true, amount)
		removed := g.Remove(true, amount)
		errs = append(errs,
			expect(fmt.Sprintf("removed(%d)", amount), removed, amount),
			expect(fmt.Sprintf("piece after %d", amount), g.Equal(newRing()), true),
		)
	}
	return errors.Join(errs...)
}

func removalClamped(context.Context) error {
	g := newRing()
	goldRemoved := g.Remove(true, 25)
	otherRemoved := g.Remove(false, 25)
	return errors.Join(
		expect("gold removed", goldRemoved, 10),
		expect("non-gold removed", otherRemoved, 5),
		expect("text", g.String(), "Gold: Ring, 0 g / 0 g"),
	)
}

func undefinedPurity(context.Context) error {
	_, err := gold.New().Purity()
	if !errors.Is(err, domain.ErrUndefinedPurity) {
		return fmt.Errorf("purity error = %v, want %v", err, domain.ErrUndefinedPurity)
	}
	return nil
}

func appraiseRing(appraiser ports.Appraiser) func(context.Context) error {
	return func(ctx context.Context) error {
		perGram := gold.DefaultPerGram
		a, err := appraiser.Appraise(ctx, ports.AppraisalRequest{Piece: newRing(), PerGram: &perGram})
		if err != nil {
			return err
		}
		return errors.Join(
			expect("piece", a.Piece, "Ring"),
			expect("purity", a.Purity, 0.6667),
			expect("purity defined", a.PurityDefined, true),
		)
	}
}

func appraiseEmpty(appraiser ports.Appraiser) func(context.Context) error {
	return func(ctx context.Context) error {
		a, err := appraiser.Appraise(ctx, ports.AppraisalRequest{Piece: gold.New()})
		if err != nil {
			return err
		}
		return expect("purity defined", a.PurityDefined, false)
	}
}
