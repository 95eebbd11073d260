package collection_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shashiranjanraj/showroom/pkg/collection"
)

type line struct {
	Vehicle string
	Qty     int
}

var lines = []line{
	{"Camry", 2},
	{"CR-V", 1},
	{"X5", 3},
}

func TestMap(t *testing.T) {
	names := collection.Map(lines, func(l line) string { return l.Vehicle })
	assert.Equal(t, []string{"Camry", "CR-V", "X5"}, names)

	empty := collection.Map([]line{}, func(l line) string { return l.Vehicle })
	assert.Empty(t, empty)
}

func TestFilter(t *testing.T) {
	bulk := collection.Filter(lines, func(l line) bool { return l.Qty > 1 })
	assert.Len(t, bulk, 2)

	none := collection.Filter(lines, func(l line) bool { return l.Qty > 10 })
	assert.Empty(t, none)
}

func TestFirst(t *testing.T) {
	got, ok := collection.First(lines, func(l line) bool { return l.Qty == 1 })
	assert.True(t, ok)
	assert.Equal(t, "CR-V", got.Vehicle)

	zero, ok := collection.First(lines, func(l line) bool { return l.Qty == 99 })
	assert.False(t, ok)
	assert.Equal(t, line{}, zero)
}

func TestContains(t *testing.T) {
	assert.True(t, collection.Contains(lines, func(l line) bool { return l.Vehicle == "X5" }))
	assert.False(t, collection.Contains(lines, func(l line) bool { return l.Vehicle == "F-150" }))
}

func TestGroupBy(t *testing.T) {
	groups := collection.GroupBy(lines, func(l line) string {
		if l.Qty > 1 {
			return "bulk"
		}
		return "single"
	})
	assert.Len(t, groups["bulk"], 2)
	assert.Len(t, groups["single"], 1)
}

func TestReduce(t *testing.T) {
	total := collection.Reduce(lines, 0, func(sum int, l line) int { return sum + l.Qty })
	assert.Equal(t, 6, total)

	initOnly := collection.Reduce([]line{}, 10, func(sum int, l line) int { return sum + l.Qty })
	assert.Equal(t, 10, initOnly)
}
