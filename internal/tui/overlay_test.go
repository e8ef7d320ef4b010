package tui

import (
	"strings"
	"testing"

	"github.com/charmbracelet/x/ansi"
	"github.com/stretchr/testify/assert"
)

func TestSpliceRowKeepsBothSides(t *testing.T) {
	got := ansi.Strip(spliceRow("abcdefghij", "XY", 3))
	assert.Equal(t, "abcXYfghij", got)

	// An insert running past the row end drops the right side.
	got = ansi.Strip(spliceRow("abcd", "XYZ", 2))
	assert.Equal(t, "abXYZ", got)
}

func TestPlaceModalCentres(t *testing.T) {
	screen := strings.Repeat("..........\n", 5) + ".........."
	out := strings.Split(ansi.Strip(placeModal(screen, "##\n##", 10, 6)), "\n")

	assert.Len(t, out, 6)
	assert.Equal(t, "..........", out[0])
	assert.Equal(t, "....##....", out[2])
	assert.Equal(t, "....##....", out[3])
	assert.Equal(t, "..........", out[4])
}

func TestPlaceModalClipsBelowScreen(t *testing.T) {
	out := strings.Split(ansi.Strip(placeModal("....\n....", "a\nb\nc\nd", 4, 2)), "\n")
	assert.Equal(t, []string{"....", ".a.."}, out)
}
