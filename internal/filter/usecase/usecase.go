package usecase

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"time"

	"github.com/towfit/towbar-filter-service/config"
	"github.com/towfit/towbar-filter-service/internal/apperr"
	"github.com/towfit/towbar-filter-service/internal/catalog"
	catdto "github.com/towfit/towbar-filter-service/internal/catalog/dto"
	"github.com/towfit/towbar-filter-service/internal/currency"
	"github.com/towfit/towbar-filter-service/internal/filter"
	"github.com/towfit/towbar-filter-service/internal/filter/dto"
	"github.com/towfit/towbar-filter-service/internal/model"
	"github.com/towfit/towbar-filter-service/pkg/cache"
	"github.com/towfit/towbar-filter-service/pkg/logger"
	"go.uber.org/zap"
)

const (
	cachePrefix    = "catalog:"
	brandsCacheKey = cachePrefix + "brands"
	modelsCacheFmt = cachePrefix + "models:%d"
	cacheTTL       = 5 * time.Minute
)

type filterUseCase struct {
	repo   catalog.Repository
	cache  *cache.RedisClient
	widget config.WidgetConfig
	logger logger.ZapLogger
}

// NewFilterUseCase builds the resolver. The cache may be nil; every cache
// miss or cache failure falls through to the catalog.
func NewFilterUseCase(repo catalog.Repository, c *cache.RedisClient, widget config.WidgetConfig, log logger.ZapLogger) filter.UseCase {
	return &filterUseCase{
		repo:   repo,
		cache:  c,
		widget: widget,
		logger: log,
	}
}

func (uc *filterUseCase) ListBrands(ctx context.Context) ([]dto.TermDTO, error) {
	if terms, ok := uc.cachedTerms(ctx, brandsCacheKey); ok {
		return terms, nil
	}

	brands, err := uc.repo.RootTerms(ctx)
	if err != nil {
		uc.logger.Error("failed to fetch brands", zap.Error(err))
		return nil, apperr.CatalogUnavailable("Error fetching brands", err)
	}

	out := mapTerms(brands)
	uc.setCachedTerms(ctx, brandsCacheKey, out)
	return out, nil
}

func (uc *filterUseCase) ListModels(ctx context.Context, brandID int64) ([]dto.TermDTO, error) {
	if brandID <= 0 {
		return nil, apperr.InvalidArgument("Brand ID is required")
	}

	key := fmt.Sprintf(modelsCacheFmt, brandID)
	if terms, ok := uc.cachedTerms(ctx, key); ok {
		return terms, nil
	}

	models, err := uc.repo.ChildTerms(ctx, brandID)
	if err != nil {
		uc.logger.Error("failed to fetch models", zap.Int64("brand_id", brandID), zap.Error(err))
		return nil, apperr.CatalogUnavailable("Error fetching models", err)
	}

	out := mapTerms(models)
	uc.setCachedTerms(ctx, key, out)
	return out, nil
}

func (uc *filterUseCase) ListYearRanges(ctx context.Context, modelID int64) ([]dto.YearRangeDTO, error) {
	if modelID <= 0 {
		return nil, apperr.InvalidArgument("Model ID is required")
	}

	products, err := uc.repo.FindProducts(ctx, &catdto.ProductFilters{
		TermID:       modelID,
		RequireYears: true,
	})
	if err != nil {
		uc.logger.Error("failed to fetch products for model", zap.Int64("model_id", modelID), zap.Error(err))
		return nil, apperr.CatalogUnavailable("Error fetching year ranges", err)
	}
	if len(products) == 0 {
		return nil, apperr.NotFound("No products found for this model")
	}

	// Dedup by display key: a key keeps its first-seen position but the last
	// product encountered wins the slot, so duplicated ranges point at the
	// product latest in store order.
	keys := make([]string, 0, len(products))
	byKey := make(map[string]model.YearRange, len(products))

	for _, p := range products {
		fields, err := uc.repo.ProductFields(ctx, p.ID)
		if err != nil {
			uc.logger.Warn("skipping product with unreadable fields", zap.Int64("product_id", p.ID), zap.Error(err))
			continue
		}
		if !presentYear(fields.YearStart) || !presentYear(fields.YearEnd) {
			continue
		}

		start, end := *fields.YearStart, *fields.YearEnd
		display := fmt.Sprintf("%d-%d", start, end)
		if _, seen := byKey[display]; !seen {
			keys = append(keys, display)
		}
		byKey[display] = model.YearRange{
			Display:   display,
			Start:     start,
			End:       end,
			ProductID: p.ID,
		}
	}

	ranges := make([]dto.YearRangeDTO, 0, len(keys))
	for _, k := range keys {
		yr := byKey[k]
		ranges = append(ranges, dto.YearRangeDTO{
			Display:   yr.Display,
			Start:     yr.Start,
			End:       yr.End,
			ProductID: yr.ProductID,
		})
	}

	// Equal starts keep the dedup order from above.
	sort.SliceStable(ranges, func(i, j int) bool {
		return ranges[i].Start < ranges[j].Start
	})

	return ranges, nil
}

func (uc *filterUseCase) ResolveProduct(ctx context.Context, input *dto.ResolveProductInput) (*dto.ProductSummary, error) {
	if input.BrandID == 0 || input.ModelID == 0 || input.YearStart == 0 || input.YearEnd == 0 {
		return nil, apperr.InvalidArgument("All parameters are required")
	}

	yearStart, yearEnd := input.YearStart, input.YearEnd
	products, err := uc.repo.FindProducts(ctx, &catdto.ProductFilters{
		TermID:    input.ModelID,
		YearStart: &yearStart,
		YearEnd:   &yearEnd,
		Limit:     1,
	})
	if err != nil {
		uc.logger.Error("failed to resolve product", zap.Int64("model_id", input.ModelID), zap.Error(err))
		return nil, apperr.CatalogUnavailable("Error fetching product details", err)
	}
	if len(products) == 0 {
		return nil, apperr.NotFound("No matching product found")
	}
	product := products[0]

	// Display names degrade to empty rather than failing the resolution.
	brandName := uc.termName(ctx, input.BrandID)
	modelName := uc.termName(ctx, input.ModelID)

	images, err := uc.repo.ProductImages(ctx, product.ID)
	if err != nil {
		uc.logger.Warn("failed to load product images", zap.Int64("product_id", product.ID), zap.Error(err))
		images = nil
	}
	if len(images) == 0 {
		images = []string{uc.widget.DefaultCarImage}
	}

	fields, err := uc.repo.ProductFields(ctx, product.ID)
	if err != nil {
		uc.logger.Warn("failed to load product fields", zap.Int64("product_id", product.ID), zap.Error(err))
		fields = &model.ProductFields{ProductID: product.ID}
	}

	towbarPrice := floatOrZero(fields.TowbarPrice)
	electricalPrice := floatOrZero(fields.ElectricalPrice)
	ratingKg := floatOrZero(fields.RatingKg)
	totalPrice := towbarPrice + electricalPrice

	productURL, err := uc.repo.Permalink(ctx, product.ID)
	if err != nil {
		uc.logger.Warn("failed to build product permalink", zap.Int64("product_id", product.ID), zap.Error(err))
		productURL = ""
	}

	return &dto.ProductSummary{
		ProductID:         product.ID,
		ProductName:       product.Name,
		BrandName:         brandName,
		ModelName:         modelName,
		YearRange:         fmt.Sprintf("%d-%d", input.YearStart, input.YearEnd),
		CarImages:         images,
		CarImage:          images[0],
		TowbarPrice:       towbarPrice,
		ElectricalPrice:   electricalPrice,
		TotalPrice:        totalPrice,
		TotalPriceDisplay: currency.Format(uc.widget.Currency, totalPrice),
		RatingKg:          ratingKg,
		TowbarImage:       uc.widget.DefaultTowbarImage,
		ProductURL:        productURL,
	}, nil
}

func (uc *filterUseCase) InvalidateTermCache(ctx context.Context) error {
	if uc.cache == nil {
		return nil
	}
	return uc.cache.DeleteByPrefix(ctx, cachePrefix)
}

func (uc *filterUseCase) termName(ctx context.Context, id int64) string {
	term, err := uc.repo.TermByID(ctx, id)
	if err != nil {
		uc.logger.Warn("failed to load term name", zap.Int64("term_id", id), zap.Error(err))
		return ""
	}
	if term == nil {
		return ""
	}
	return term.Name
}

func (uc *filterUseCase) cachedTerms(ctx context.Context, key string) ([]dto.TermDTO, bool) {
	if uc.cache == nil {
		return nil, false
	}
	val, err := uc.cache.Client.Get(ctx, key).Result()
	if err != nil {
		return nil, false
	}
	var terms []dto.TermDTO
	if err := json.Unmarshal([]byte(val), &terms); err != nil {
		return nil, false
	}
	return terms, true
}

func (uc *filterUseCase) setCachedTerms(ctx context.Context, key string, terms []dto.TermDTO) {
	if uc.cache == nil {
		return
	}
	data, err := json.Marshal(terms)
	if err != nil {
		return
	}
	uc.cache.Client.Set(ctx, key, data, cacheTTL)
}

func mapTerms(terms []model.Term) []dto.TermDTO {
	out := make([]dto.TermDTO, len(terms))
	for i, t := range terms {
		out[i] = dto.TermDTO{ID: t.ID, Name: t.Name, Slug: t.Slug}
	}
	return out
}

func presentYear(v *int) bool {
	return v != nil && *v != 0
}

func floatOrZero(v *float64) float64 {
	if v == nil {
		return 0
	}
	return *v
}
