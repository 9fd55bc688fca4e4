package catalog

import (
	"context"

	"github.com/towfit/towbar-filter-service/internal/catalog/dto"
	"github.com/towfit/towbar-filter-service/internal/model"
)

// Repository is the read contract against the catalog replica. All methods
// are single best-effort reads; absence is reported as nil/empty, never as an
// error, so the resolver decides what absence means per operation.
type Repository interface {
	RootTerms(ctx context.Context) ([]model.Term, error)
	ChildTerms(ctx context.Context, parentID int64) ([]model.Term, error)
	TermByID(ctx context.Context, id int64) (*model.Term, error)
	FindProducts(ctx context.Context, filters *dto.ProductFilters) ([]model.Product, error)
	ProductFields(ctx context.Context, productID int64) (*model.ProductFields, error)
	ProductImages(ctx context.Context, productID int64) ([]string, error)
	Permalink(ctx context.Context, productID int64) (string, error)
}
