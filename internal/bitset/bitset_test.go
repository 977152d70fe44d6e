package bitset

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBitsetSetTestClear(t *testing.T) {
	b := New(130)
	assert.False(t, b.Test(65))
	b.Set(65)
	assert.True(t, b.Test(65))
	b.Clear(65)
	assert.False(t, b.Test(65))
}

func TestBitsetAny(t *testing.T) {
	b := New(10)
	assert.False(t, b.Any())
	b.Set(3)
	assert.True(t, b.Any())
	b.Reset()
	assert.False(t, b.Any())
}

func TestBitsetForEachAscending(t *testing.T) {
	b := New(200)
	for _, i := range []int{199, 64, 0, 130} {
		b.Set(i)
	}
	var got []int
	b.ForEach(func(i int) { got = append(got, i) })
	assert.Equal(t, []int{0, 64, 130, 199}, got)
}

func TestBitsetResetClearsAllWords(t *testing.T) {
	b := New(256)
	for i := 0; i < 256; i += 7 {
		b.Set(i)
	}
	b.Reset()
	assert.False(t, b.Any())
	count := 0
	b.ForEach(func(i int) { count++ })
	assert.Equal(t, 0, count)
}
