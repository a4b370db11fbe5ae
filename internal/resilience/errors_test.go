package resilience

import (
	"context"
	"errors"
	"fmt"
	"syscall"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsTransient(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want bool
	}{
		{"nil", nil, false},
		{"explicit transient", NewTransientError(errors.New("status 503"), 503), true},
		{"wrapped transient", fmt.Errorf("mirror: %w", NewTransientError(errors.New("x"), 502)), true},
		{"permanent", NewPermanentError(errors.New("status 400"), 400), false},
		{"connection refused", fmt.Errorf("dial: %w", syscall.ECONNREFUSED), true},
		{"timeout string", errors.New("dial tcp: i/o timeout"), true},
		{"dns string", errors.New("lookup api.example.com: no such host"), true},
		{"plain error", errors.New("something else"), false},
		{"context canceled", context.Canceled, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, IsTransient(tt.err))
		})
	}
}

func TestIsPermanent(t *testing.T) {
	assert.True(t, IsPermanent(NewPermanentError(errors.New("status 404"), 404)))
	assert.True(t, IsPermanent(fmt.Errorf("wrap: %w", NewPermanentError(errors.New("x"), 400))))
	assert.False(t, IsPermanent(NewTransientError(errors.New("status 500"), 500)))
	assert.False(t, IsPermanent(errors.New("plain")))
}

func TestIsTransientHTTPStatus(t *testing.T) {
	for _, code := range []int{408, 429, 500, 502, 503, 504} {
		assert.Truef(t, IsTransientHTTPStatus(code), "status %d", code)
	}
	for _, code := range []int{200, 301, 400, 401, 403, 404, 422} {
		assert.Falsef(t, IsTransientHTTPStatus(code), "status %d", code)
	}
}

func TestClassifyHTTPStatus(t *testing.T) {
	err := errors.New("upstream")

	assert.True(t, IsPermanent(ClassifyHTTPStatus(err, 400)))
	assert.True(t, IsPermanent(ClassifyHTTPStatus(err, 404)))
	// 429 is a rate limit, not a bad request: transient.
	assert.False(t, IsPermanent(ClassifyHTTPStatus(err, 429)))
	assert.True(t, IsTransient(ClassifyHTTPStatus(err, 429)))
	assert.True(t, IsTransient(ClassifyHTTPStatus(err, 503)))
}
