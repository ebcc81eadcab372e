package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFoldSearchTerm(t *testing.T) {
	assert.Equal(t, "hanuman chalisa", FoldSearchTerm("Hanumān Chālīsā"))
	assert.Equal(t, "bhagavad gita", FoldSearchTerm("  Bhagavad Gītā  "))
	assert.Equal(t, "shiva", FoldSearchTerm("SHIVA"))
	assert.Equal(t, "", FoldSearchTerm("   "))
}

func TestLikePattern(t *testing.T) {
	assert.Equal(t, "%ganesha%", LikePattern("Ganesha"))
	assert.Equal(t, "%rama%", LikePattern(" Rāma "))
}

func TestDisplayLabel(t *testing.T) {
	assert.Equal(t, "Lord Hanuman", DisplayLabel("lord hanuman"))
	assert.Equal(t, "Daily Puja", DisplayLabel("  daily puja "))
}
