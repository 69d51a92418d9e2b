package handle

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSlugify(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Blue Shoe", "blue-shoe"},
		{"  Ridstövel   Läder ", "ridstövel-läder"},
		{"Hjälm (svart) 2.0", "hjälm-svart-20"},
		{"Ÿes & No", "es-no"},
		{"!!!", ""},
		{"Pre-made", "pre-made"},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Slugify(tt.in))
		})
	}
}

func TestBase(t *testing.T) {
	assert.Equal(t, "blue-shoe", Base("Blue Shoe - X"))
	assert.Equal(t, "blue-shoe", Base("Blue Shoe - 38"))
	assert.Equal(t, "pre", Base("Pre-made saddle"))
	assert.Equal(t, "", Base("- only suffix"))
}

func TestAllocator_Allocate(t *testing.T) {
	a := NewAllocator()

	assert.Equal(t, "shoe", a.Allocate("shoe"))
	assert.Equal(t, "shoe-1", a.Allocate("shoe"))
	assert.Equal(t, "shoe-2", a.Allocate("shoe"))
	assert.Equal(t, "shoe-1-1", a.Allocate("shoe-1"))
	assert.Equal(t, "boot", a.Allocate("boot"))

	assert.True(t, a.Contains("shoe-2"))
	assert.False(t, a.Contains("shoe-3"))
	assert.Equal(t, 5, a.Len())
	assert.Equal(t, []string{"shoe", "shoe-1", "shoe-2", "shoe-1-1", "boot"}, a.Handles())
}

func TestAllocator_NeverRepeats(t *testing.T) {
	a := NewAllocator()
	seen := make(map[string]bool)

	for i := range 300 {
		h := a.Allocate(fmt.Sprintf("p-%d", i%7))
		require.False(t, seen[h], "handle %q returned twice", h)
		seen[h] = true
	}
	assert.Equal(t, 300, a.Len())
}

func TestAllocator_Deterministic(t *testing.T) {
	bases := []string{"a", "a", "a-1", "b", "a"}

	run := func() []string {
		a := NewAllocator()
		for _, b := range bases {
			a.Allocate(b)
		}
		return a.Handles()
	}

	assert.Equal(t, run(), run())
}
