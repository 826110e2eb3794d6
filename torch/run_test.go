package torch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOptionsDefaults(t *testing.T) {
	opts := Options{}.withDefaults()

	assert.Equal(t, 800, opts.WindowWidth)
	assert.Equal(t, 600, opts.WindowHeight)
	assert.Equal(t, "Lumen", opts.WindowTitle)
}

func TestOptionsKeepExplicitValues(t *testing.T) {
	opts := Options{WindowWidth: 1024, WindowHeight: 768, WindowTitle: "Triangle"}.withDefaults()

	assert.Equal(t, 1024, opts.WindowWidth)
	assert.Equal(t, 768, opts.WindowHeight)
	assert.Equal(t, "Triangle", opts.WindowTitle)
}
