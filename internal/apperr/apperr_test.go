package apperr_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/towfit/towbar-filter-service/internal/apperr"
)

func TestKindOf(t *testing.T) {
	assert.Equal(t, apperr.KindNotFound, apperr.KindOf(apperr.NotFound("No matching product found")))
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(errors.New("plain")))
	assert.Equal(t, apperr.KindUnknown, apperr.KindOf(nil))

	// Tag survives wrapping.
	wrapped := fmt.Errorf("dispatch: %w", apperr.InvalidArgument("Brand ID is required"))
	assert.Equal(t, apperr.KindInvalidArgument, apperr.KindOf(wrapped))
}

func TestMessageAndCause(t *testing.T) {
	cause := errors.New("dial tcp: connection refused")
	err := apperr.CatalogUnavailable("Error fetching brands", cause)

	assert.Equal(t, "Error fetching brands", err.Error())
	assert.True(t, errors.Is(err, cause))
}
