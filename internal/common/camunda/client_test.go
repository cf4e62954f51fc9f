// internal/common/camunda/client_test.go
package camunda

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestIsRetryableZeebeError(t *testing.T) {
	assert.True(t, isRetryableZeebeError(errors.New("rpc error: code = Unavailable desc = connection refused")))
	assert.True(t, isRetryableZeebeError(errors.New("context deadline exceeded")))
	assert.False(t, isRetryableZeebeError(errors.New("rpc error: code = PermissionDenied")))
}

func TestBackoff(t *testing.T) {
	rc := &RetryConfig{BaseDelay: time.Second, MaxDelay: 5 * time.Second}

	assert.Equal(t, time.Second, backoff(rc, 0))
	assert.Equal(t, 4*time.Second, backoff(rc, 2))
	assert.Equal(t, 5*time.Second, backoff(rc, 3))
}
