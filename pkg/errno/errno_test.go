package errno

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestKindHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{KindInvalidInput, http.StatusBadRequest},
		{KindUnauthenticated, http.StatusUnauthorized},
		{KindForbidden, http.StatusForbidden},
		{KindNotFound, http.StatusNotFound},
		{KindConflict, http.StatusConflict},
		{KindUnavailable, http.StatusServiceUnavailable},
		{KindInternal, http.StatusInternalServerError},
		{Kind("unknown"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.HTTPStatus(), string(tt.kind))
	}
}

func TestDecode(t *testing.T) {
	code, msg := Decode(nil)
	assert.Equal(t, OK.Code, code)
	assert.Equal(t, OK.Message, msg)

	code, msg = Decode(ErrClaimNotApproved)
	assert.Equal(t, ErrClaimNotApproved.Code, code)
	assert.Equal(t, ErrClaimNotApproved.Message, msg)

	code, msg = Decode(errors.New("boom"))
	assert.Equal(t, InternalServerError.Code, code)
	assert.Equal(t, "boom", msg)
}

func TestKindOf(t *testing.T) {
	assert.Equal(t, KindConflict, KindOf(ErrClaimExists))
	assert.Equal(t, KindInternal, KindOf(errors.New("boom")))
}

func TestErrnoIsMatchesByCode(t *testing.T) {
	assert.True(t, errors.Is(ErrClaimExists, ErrClaimExists))
	assert.True(t, errors.Is(error(ErrClaimExists), &ErrClaimExists))
	assert.False(t, errors.Is(ErrClaimExists, ErrClaimNotFound))
}
