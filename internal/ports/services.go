package ports

import (
	"context"

	"github.com/jsamuelsen11/gold-appraisal/internal/domain/gold"
)

// Appraiser defines the service port for appraising gold pieces with the
// configured defaults. Implemented by the application layer; called by the
// self-test runner and the command entry point.
type Appraiser interface {
	// Appraise prices the piece and reports its purity. A piece with zero
	// total mass is appraised with PurityDefined=false rather than an error.
	// Returns domain.ErrValidation if the request carries no piece.
	Appraise(ctx context.Context, req AppraisalRequest) (*Appraisal, error)
}

// AppraisalRequest carries a piece and optional per-call overrides of the
// configured appraisal defaults.
type AppraisalRequest struct {
	Piece *gold.Piece

	// PerGram overrides the configured rate when non-nil. Zero and negative
	// rates are applied as given.
	PerGram *int

	// IncludeMarkup overrides the configured markup policy when non-nil.
	IncludeMarkup *bool

	// ForcedPurity prices the total mass at this purity when non-nil.
	ForcedPurity *float64

	// Owner identifies who the piece is appraised for. It is logged under
	// the redacted "owner" key and never appears in the Appraisal.
	Owner string
}

// Appraisal is the outcome of a single appraisal.
type Appraisal struct {
	Piece         string
	Price         int
	Purity        float64
	PurityDefined bool
	Forced        bool
}
