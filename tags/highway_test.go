package tags

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseHighwayTag(t *testing.T) {
	t.Run("KnownValues", func(t *testing.T) {
		tag, err := ParseHighwayTag("service")
		require.NoError(t, err)
		assert.Equal(t, HighwayService, tag)

		tag, err = ParseHighwayTag("Motorway")
		require.NoError(t, err)
		assert.Equal(t, HighwayMotorway, tag)

		tag, err = ParseHighwayTag("  residential ")
		require.NoError(t, err)
		assert.Equal(t, HighwayResidential, tag)
	})

	t.Run("UnknownValue", func(t *testing.T) {
		_, err := ParseHighwayTag("hyperloop")
		require.Error(t, err)

		var unknown *ErrUnknownHighwayTag
		require.True(t, errors.As(err, &unknown))
		assert.Equal(t, "hyperloop", unknown.Value)
	})
}

func TestHighwayOrdering(t *testing.T) {
	assert.True(t, HighwayMotorway.AtLeast(HighwayService))
	assert.True(t, HighwayService.AtLeast(HighwayService))
	assert.False(t, HighwayFootway.AtLeast(HighwayService))
	assert.True(t, HighwayResidential.AtLeast(HighwayTrack))
}

func TestNavigability(t *testing.T) {
	assert.True(t, HighwayService.IsCarNavigable())
	assert.True(t, HighwayMotorway.IsCarNavigable())
	assert.False(t, HighwayFootway.IsCarNavigable())
	assert.False(t, HighwayUnknown.IsCarNavigable())

	assert.True(t, HighwayFootway.IsPedestrianNavigable())
	assert.True(t, HighwaySteps.IsPedestrianNavigable())
	assert.False(t, HighwayService.IsPedestrianNavigable())
}

func TestIsExcludedAmenity(t *testing.T) {
	assert.True(t, IsExcludedAmenity(AmenityParking))
	assert.True(t, IsExcludedAmenity(AmenityParkingEntrance))
	assert.False(t, IsExcludedAmenity("fuel"))
	assert.False(t, IsExcludedAmenity(""))
}
