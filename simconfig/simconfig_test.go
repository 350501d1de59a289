package simconfig

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseImageType(t *testing.T) {
	cases := []struct {
		in   string
		want ImageType
	}{
		{"binary", Binary},
		{"graySynthetic", GraySynthetic},
		{"phaseContrast", PhaseContrast},
	}
	for _, c := range cases {
		got, err := ParseImageType(c.in)
		require.NoError(t, err)
		assert.Equal(t, c.want, got)
	}
}

func TestParseImageTypeRejectsUnknown(t *testing.T) {
	_, err := ParseImageType("grayscale")
	assert.Error(t, err)
}

func TestImageTypeString(t *testing.T) {
	assert.Equal(t, "binary", Binary.String())
	assert.Equal(t, "graySynthetic", GraySynthetic.String())
	assert.Equal(t, "phaseContrast", PhaseContrast.String())
}

func TestConfigCopyIsIndependent(t *testing.T) {
	c := Config{ImageType: GraySynthetic, BackgroundColor: 0.39}
	c2 := c.Copy()
	c2.BackgroundColor = 0.5
	assert.Equal(t, 0.39, c.BackgroundColor)
	assert.Equal(t, 0.5, c2.BackgroundColor)
}
