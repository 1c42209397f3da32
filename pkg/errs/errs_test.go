package errs

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, HTTPStatus(NotFound(CodeOrderNotFound, "gone")))
	assert.Equal(t, http.StatusBadRequest, HTTPStatus(Business(CodeInsufficientStock, "nope")))
	assert.Equal(t, http.StatusUnauthorized, HTTPStatus(Unauthorized(CodeInvalidEmailOrPassword, "nope")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(Internal("boom")))
	assert.Equal(t, http.StatusInternalServerError, HTTPStatus(errors.New("foreign")))
}

func TestCodeOf(t *testing.T) {
	assert.Equal(t, CodeCartNotFound, CodeOf(NotFound(CodeCartNotFound, "no cart")))
	assert.Equal(t, CodeUnexpected, CodeOf(errors.New("foreign")))
}

func TestHasCode_SeesThroughWrapping(t *testing.T) {
	err := fmt.Errorf("checkout: %w", Business(CodeEmptyCartOrder, "Cannot create order with empty cart"))

	assert.True(t, HasCode(err, CodeEmptyCartOrder))
	assert.False(t, HasCode(err, CodeCartNotFound))
}

func TestErrorMessageFormatting(t *testing.T) {
	err := NotFound(CodeProductNotFoundByID, "Product not found with id: %d", 42)

	assert.Equal(t, "Product not found with id: 42", err.Error())
}
