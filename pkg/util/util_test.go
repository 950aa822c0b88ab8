package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRemoveDuplicateStrings(t *testing.T) {
	assert.Equal(t, []string{"PC", "SR"}, RemoveDuplicateStrings([]string{"PC", "", "SR", "PC", "TB"}, []string{"TB"}))
}

func TestContainsFold(t *testing.T) {
	assert.True(t, ContainsFold("Ana Muñoz", "muñ"))
	assert.True(t, ContainsFold("12345", ""))
	assert.False(t, ContainsFold("Ana", "pere"))
}

func TestInPlaceFilter(t *testing.T) {
	values := []int{1, 2, 3, 4, 5}
	InPlaceFilter(&values, func(value int) bool {
		return value%2 == 1
	})
	assert.Equal(t, []int{1, 3, 5}, values)
}

func TestTrimString(t *testing.T) {
	assert.Equal(t, "abc", TrimString("abcdef", 3))
	assert.Equal(t, "ab", TrimString("ab", 3))
}
