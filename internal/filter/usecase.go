package filter

import (
	"context"

	"github.com/towfit/towbar-filter-service/internal/filter/dto"
)

// UseCase is the cascading filter resolver: each call maps a partial
// selection to the next candidate set, or the full selection to one product.
// All operations are side-effect-free reads.
type UseCase interface {
	ListBrands(ctx context.Context) ([]dto.TermDTO, error)
	ListModels(ctx context.Context, brandID int64) ([]dto.TermDTO, error)
	ListYearRanges(ctx context.Context, modelID int64) ([]dto.YearRangeDTO, error)
	ResolveProduct(ctx context.Context, input *dto.ResolveProductInput) (*dto.ProductSummary, error)

	// InvalidateTermCache drops the cached brand/model lists. Driven by the
	// catalog event listener.
	InvalidateTermCache(ctx context.Context) error
}
