package domain

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAverageRating_Rounding(t *testing.T) {
	a, err := NewAverageRating(4.76543)
	require.NoError(t, err)
	assert.Equal(t, 4.8, a.Value())
	assert.Equal(t, "4.8", a.String())

	again, err := NewAverageRating(a.Value())
	require.NoError(t, err)
	assert.True(t, a.Equals(again))
}

func TestAverageRating_Invalid(t *testing.T) {
	_, err := NewAverageRating(math.NaN())
	assert.EqualError(t, err, "Average rating must be a number")

	_, err = NewAverageRating(-0.1)
	assert.EqualError(t, err, "Average rating must be between 0 and 5")

	_, err = NewAverageRating(5.01)
	assert.EqualError(t, err, "Average rating must be between 0 and 5")

	assert.True(t, IsValidAverageRating(0))
	assert.True(t, IsValidAverageRating(5))
}

func TestAverageOf(t *testing.T) {
	assert.Equal(t, 0.0, AverageOf(nil).Value())

	ratings := make([]Rating, 0, 3)
	for _, v := range []int{5, 4, 4} {
		r, err := NewRating(v)
		require.NoError(t, err)
		ratings = append(ratings, r)
	}
	assert.Equal(t, 4.3, AverageOf(ratings).Value())
}

func TestReviewCount(t *testing.T) {
	assert.Equal(t, 0, ZeroReviewCount().Decrement().Value())

	c, err := NewReviewCount(2)
	require.NoError(t, err)
	assert.Equal(t, 3, c.Increment().Value())
	assert.Equal(t, 1, c.Decrement().Value())
	assert.Equal(t, 2, c.Value(), "original is unchanged")

	_, err = NewReviewCount(-1)
	assert.EqualError(t, err, "Review count must be a non-negative integer")

	_, err = ReviewCountFromNumber(1.5)
	assert.EqualError(t, err, "Review count must be a non-negative integer")

	got, err := ReviewCountFromNumber(7)
	require.NoError(t, err)
	assert.Equal(t, "7", got.String())
}
