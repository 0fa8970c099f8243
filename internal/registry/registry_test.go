package registry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type greeter struct{ name string }

func TestRegistry_SetGet(t *testing.T) {
	r := New(nil)
	key := Key[*greeter]("test.greeter")

	_, ok := Get(r, key)
	assert.False(t, ok)

	Set(r, key, &greeter{name: "ada"})
	got, ok := Get(r, key)
	assert.True(t, ok)
	assert.Equal(t, "ada", got.name)
	assert.Same(t, got, MustGet(r, key))
}

func TestRegistry_WrongTypeIsMissing(t *testing.T) {
	r := New(nil)
	Set(r, Key[string]("shared"), "text")

	_, ok := Get(r, Key[int]("shared"))
	assert.False(t, ok)
	assert.Panics(t, func() { MustGet(r, Key[int]("shared")) })
}
