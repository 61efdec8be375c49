package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/wheelibin/lumos/internal/colour"
)

func Test_parseColour(t *testing.T) {

	t.Run("palette name: should return the preset", func(t *testing.T) {
		hex, _, err := parseColour("warm glow")

		require.NoError(t, err)
		assert.Equal(t, colour.WarmGlow, hex)
	})

	t.Run("rgb triple: should return the rgb colour", func(t *testing.T) {
		hex, rgb, err := parseColour("255, 128,0")

		require.NoError(t, err)
		assert.Empty(t, hex)
		assert.Equal(t, colour.RGB{R: 255, G: 128}, rgb)
	})

	t.Run("out of range channel: should return an error", func(t *testing.T) {
		_, _, err := parseColour("256,0,0")

		assert.Error(t, err)
	})

	t.Run("unknown name: should return an error", func(t *testing.T) {
		_, _, err := parseColour("ultraviolet")

		assert.ErrorContains(t, err, "unknown colour")
	})
}

func Test_parseFlags(t *testing.T) {

	t.Run("should only mark given flags as changed", func(t *testing.T) {
		fs, o, err := parseFlags([]string{"-l", "Desk", "--on", "-b", "100"})

		require.NoError(t, err)
		assert.Equal(t, "Desk", o.light)
		assert.True(t, o.on)
		assert.True(t, fs.Changed("brightness"))
		assert.False(t, fs.Changed("hue"))
		assert.Equal(t, -1, o.transition)
		assert.False(t, o.hs)
	})

	t.Run("hs: should be read with a colour", func(t *testing.T) {
		fs, o, err := parseFlags([]string{"-l", "Desk", "-c", "255,0,0", "--hs"})

		require.NoError(t, err)
		assert.True(t, o.hs)
		assert.True(t, fs.Changed("colour"))
	})

	t.Run("on and off: should return an error", func(t *testing.T) {
		_, _, err := parseFlags([]string{"--on", "--off"})

		assert.Error(t, err)
	})
}
