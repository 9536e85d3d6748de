package hue

import (
	"testing"

	"github.com/amimof/huego"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/transcriber/pkg/signal"
	"github.com/blaubaer/transcriber/pkg/session"
)

func TestHue_targetStateFor(t *testing.T) {
	conf := NewConfiguration()
	instance := Hue{conf: &conf}

	off := target{KindLight, 1, "OnAir", &huego.State{On: false}}
	on := target{KindLight, 2, "OnAir 2", &huego.State{On: true, Bri: 254, Hue: 65535, Sat: 254}}
	dimmed := target{KindGroup, 3, "OnAir Room", &huego.State{On: true, Bri: 10, Hue: 65535, Sat: 254}}

	actual, err := instance.targetStateFor(signal.StateOn, off)
	require.NoError(t, err)
	assert.Equal(t, &huego.State{On: true, Bri: 254, Hue: 65535, Sat: 254}, actual)

	actual, err = instance.targetStateFor(signal.StateOn, on)
	require.NoError(t, err)
	assert.Nil(t, actual)

	actual, err = instance.targetStateFor(signal.StateOn, dimmed)
	require.NoError(t, err)
	assert.NotNil(t, actual)

	actual, err = instance.targetStateFor(signal.StateOff, on)
	require.NoError(t, err)
	assert.Equal(t, &huego.State{On: false}, actual)

	actual, err = instance.targetStateFor(signal.StateOff, off)
	require.NoError(t, err)
	assert.Nil(t, actual)

	_, err = instance.targetStateFor(signal.StateUnknown, off)
	assert.Error(t, err)
}

func TestHue_Ensure_leavesLightsAloneIfUnknown(t *testing.T) {
	conf := NewConfiguration()
	// Not paired: any access of the bridge would fail.
	instance := Hue{conf: &conf}

	err := instance.Ensure(signal.NewContext(session.Snapshot{Activity: session.ActivityUnknown}, session.Config{}))
	assert.NoError(t, err)

	err = instance.Ensure(signal.NewContext(session.Snapshot{Activity: session.ActivityActive}, session.Config{}))
	assert.EqualError(t, err, "not paired with hue bridge")
}

func TestHue_appendIfMatches(t *testing.T) {
	conf := NewConfiguration()
	instance := Hue{conf: &conf}

	actual := instance.appendIfMatches(nil, KindLight, 1, "Kitchen", nil)
	assert.Empty(t, actual)

	actual = instance.appendIfMatches(actual, KindLight, 2, "OnAir Desk", nil)
	require.Len(t, actual, 1)
	assert.Equal(t, `light "OnAir Desk"#2`, actual[0].String())
	assert.NotNil(t, actual[0].state)
}

func TestKinds(t *testing.T) {
	var actual Kinds
	assert.True(t, actual.Has(KindGroup))

	require.NoError(t, actual.Set("room, light"))
	assert.Equal(t, Kinds{KindGroup, KindLight}, actual)
	assert.Equal(t, "group,light", actual.String())
	assert.Error(t, actual.Set("lamp"))
}
