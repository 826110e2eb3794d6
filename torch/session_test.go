package torch

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSessionClosesOnceInReverseOrder(t *testing.T) {
	session := &Session{}

	var order []string
	session.Defer(func() { order = append(order, "window") })
	session.Defer(func() { order = append(order, "device") })
	session.Defer(func() { order = append(order, "buffer") })

	session.Close()
	session.Close()

	assert.Equal(t, []string{"buffer", "device", "window"}, order)
}

func TestSessionCloseEmpty(t *testing.T) {
	session := &Session{}

	assert.NotPanics(t, session.Close)
}
