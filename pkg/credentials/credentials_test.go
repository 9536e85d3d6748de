package credentials

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCredentials_binary(t *testing.T) {
	given := Credentials{
		HueBridge:           "192.168.1.2",
		HueUser:             "abc",
		HomeAssistantServer: "http://ha.local:8123",
	}

	b, err := given.MarshalBinary()
	require.NoError(t, err)

	var actual Credentials
	require.NoError(t, actual.UnmarshalBinary(b))
	assert.Equal(t, given, actual)
	assert.False(t, actual.IsHueZero())
	assert.True(t, actual.IsHomeAssistantZero())
	assert.False(t, actual.IsZero())
}
