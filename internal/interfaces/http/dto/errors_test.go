package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(ErrCodeNotFound))
	assert.Equal(t, http.StatusUnauthorized, GetHTTPStatus(ErrCodeInvalidCredentials))
	assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(ErrCodeEmptyCart))
	assert.Equal(t, http.StatusInternalServerError, GetHTTPStatus("ERR_NO_SUCH_CODE"))
}

func TestNormalizeErrorCode(t *testing.T) {
	t.Run("maps domain codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
		assert.Equal(t, ErrCodeInvalidCredentials, NormalizeErrorCode("INVALID_CREDENTIALS"))
		assert.Equal(t, ErrCodePaymentDeclined, NormalizeErrorCode("PAYMENT_DECLINED"))
	})

	t.Run("passes through API codes", func(t *testing.T) {
		assert.Equal(t, ErrCodeForbidden, NormalizeErrorCode(ErrCodeForbidden))
	})

	t.Run("unknown domain codes become business rule violations", func(t *testing.T) {
		code := NormalizeErrorCode("INVALID_QUANTITY")
		assert.Equal(t, ErrCodeBusinessRule, code)
		assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(code))
	})
}
