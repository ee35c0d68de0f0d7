package gold_test

import (
	"errors"
	"fmt"

	"github.com/jsamuelsen11/gold-appraisal/internal/domain"
	"github.com/jsamuelsen11/gold-appraisal/internal/domain/gold"
)

func ExampleNew() {
	fmt.Println(gold.New(gold.WithName("a")).Name())
	p := gold.New()
	fmt.Println(p.Name(), p.GoldMass(), p.TotalMass(), p.Markup())
	// Output:
	// a
	// Gold 0 0 0
}

func ExamplePiece_Price() {
	p := gold.New(gold.WithMarkup(100))
	p.Add(true, 5)

	fmt.Println(p.Price())
	fmt.Println(p.Price(gold.WithoutMarkup()))
	fmt.Println(p.Price(gold.WithPerGram(1500), gold.WithForcedPurity(0.5)))
	// Output:
	// 10100
	// 10000
	// 3850
}

func ExamplePiece_Purity() {
	ring := gold.New(gold.WithName("Ring"), gold.WithMarkup(50))
	ring.Add(true, 10)
	ring.Add(false, 5)

	purity, _ := ring.Purity()
	fmt.Println(ring)
	fmt.Println(purity)

	_, err := gold.New().Purity()
	fmt.Println(errors.Is(err, domain.ErrUndefinedPurity))
	// Output:
	// Gold: Ring, 10 g / 15 g
	// 0.6667
	// true
}

func ExamplePiece_Remove() {
	p := gold.New()
	p.Add(true, 10)
	p.Add(false, 5)

	fmt.Println(p.Remove(true, 25))
	fmt.Println(p)
	// Output:
	// 10
	// Gold: Gold, 0 g / 5 g
}

func ExamplePiece_Equal() {
	a := gold.New(gold.WithName("Ring"), gold.WithMarkup(10))
	b := gold.New(gold.WithName("Coin"), gold.WithMarkup(10))
	fmt.Println(a.Equal(b))

	c := gold.New(gold.WithMarkup(11))
	fmt.Println(a.Equal(c))
	// Output:
	// true
	// false
}
