package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestWindow(t *testing.T) {
	cases := []struct {
		limit, offset       int
		wantLimit, wantOffs int
	}{
		{limit: 0, offset: 0, wantLimit: 10, wantOffs: 0},
		{limit: 25, offset: 50, wantLimit: 25, wantOffs: 50},
		{limit: 500, offset: -3, wantLimit: 10, wantOffs: 0},
	}
	for _, tc := range cases {
		l, o := Window(tc.limit, tc.offset)
		assert.Equal(t, tc.wantLimit, l)
		assert.Equal(t, tc.wantOffs, o)
	}
}

func TestCalculate(t *testing.T) {
	from, limit := Calculate(3, 20)
	assert.Equal(t, 40, from)
	assert.Equal(t, 20, limit)

	from, limit = Calculate(0, 0)
	assert.Equal(t, 0, from)
	assert.Equal(t, 10, limit)
}
