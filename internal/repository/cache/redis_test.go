package cache

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestCacheKeys(t *testing.T) {
	id := uuid.MustParse("0190a5d8-7c1e-7b3a-9f00-0123456789ab")

	assert.Equal(t, "customer:0190a5d8-7c1e-7b3a-9f00-0123456789ab:revenue", customerRevenueKey(id))
	assert.Equal(t, "report:best:limit:5", bestCustomersKey(5))
}
