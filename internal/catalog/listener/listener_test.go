package listener

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/towfit/towbar-filter-service/internal/filter/dto"
	"github.com/towfit/towbar-filter-service/pkg/logger"
)

type stubUseCase struct {
	invalidations int
}

func (s *stubUseCase) ListBrands(ctx context.Context) ([]dto.TermDTO, error) { return nil, nil }

func (s *stubUseCase) ListModels(ctx context.Context, brandID int64) ([]dto.TermDTO, error) {
	return nil, nil
}

func (s *stubUseCase) ListYearRanges(ctx context.Context, modelID int64) ([]dto.YearRangeDTO, error) {
	return nil, nil
}

func (s *stubUseCase) ResolveProduct(ctx context.Context, input *dto.ResolveProductInput) (*dto.ProductSummary, error) {
	return nil, nil
}

func (s *stubUseCase) InvalidateTermCache(ctx context.Context) error {
	s.invalidations++
	return nil
}

func TestProcessMessage(t *testing.T) {
	tests := []struct {
		name          string
		payload       string
		invalidations int
	}{
		{"product updated", `{"event_id":"e1","event_type":"ProductUpdated"}`, 1},
		{"term deleted", `{"event_id":"e2","event_type":"TermDeleted"}`, 1},
		{"unrelated event ignored", `{"event_id":"e3","event_type":"OrderCreated"}`, 0},
		{"garbage ignored", `{not json`, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			uc := &stubUseCase{}
			l := NewCatalogListener(nil, uc, logger.NewNop())
			l.processMessage(context.Background(), []byte(tt.payload))
			assert.Equal(t, tt.invalidations, uc.invalidations)
		})
	}
}
