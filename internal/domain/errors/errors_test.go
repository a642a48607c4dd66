package errors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConfigError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		innerErr := errors.New("inner error")
		err := NewConfigError("gemini_api_key", "clave inválida", innerErr)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "gemini_api_key")
		assert.Contains(t, err.Error(), "clave inválida")
		assert.Contains(t, err.Error(), "inner error")

		assert.Equal(t, innerErr, errors.Unwrap(err))
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewConfigError("giphy_api_key", "clave faltante", nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "giphy_api_key")
		assert.Contains(t, err.Error(), "clave faltante")
		assert.Nil(t, errors.Unwrap(err))
	})
}

func TestUpstreamError(t *testing.T) {
	t.Run("with wrapped error", func(t *testing.T) {
		innerErr := errors.New("rate limit exceeded")
		err := NewUpstreamError("gemini", "generate_roast", innerErr)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "gemini")
		assert.Contains(t, err.Error(), "generate_roast")
		assert.Contains(t, err.Error(), "rate limit exceeded")
		assert.Equal(t, innerErr, errors.Unwrap(err))
	})

	t.Run("without wrapped error", func(t *testing.T) {
		err := NewUpstreamError("gemini", "generate_roast", nil)

		assert.Error(t, err)
		assert.Contains(t, err.Error(), "respuesta inusable")
		assert.Nil(t, errors.Unwrap(err))
	})

	t.Run("errors.As", func(t *testing.T) {
		var upstreamErr *UpstreamError
		err := NewUpstreamError("github", "get_diff", errors.New("boom"))

		assert.True(t, errors.As(err, &upstreamErr))
		assert.Equal(t, "github", upstreamErr.Provider)
	})
}

func TestDeliveryError(t *testing.T) {
	innerErr := errors.New("403 Forbidden")
	err := NewDeliveryError("truss", "roaster", 42, innerErr)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "truss/roaster#42")
	assert.Contains(t, err.Error(), "403 Forbidden")
	assert.Equal(t, innerErr, errors.Unwrap(err))

	var deliveryErr *DeliveryError
	assert.True(t, errors.As(err, &deliveryErr))
	assert.Equal(t, 42, deliveryErr.Number)
}

func TestErrorTypeAssertions(t *testing.T) {
	upstream := NewUpstreamError("gemini", "generate_roast", nil)
	delivery := NewDeliveryError("truss", "roaster", 1, errors.New("x"))

	var upstreamErr *UpstreamError
	assert.True(t, errors.As(upstream, &upstreamErr))
	assert.False(t, errors.As(delivery, &upstreamErr))

	var deliveryErr *DeliveryError
	assert.True(t, errors.As(delivery, &deliveryErr))
	assert.False(t, errors.As(upstream, &deliveryErr))
}
