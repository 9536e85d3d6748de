package common

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestPattern(t *testing.T) {
	var instance Pattern
	assert.True(t, instance.IsZero())
	assert.True(t, instance.MatchString("anything"))

	require.NoError(t, instance.Set("^OnAir"))
	assert.True(t, instance.MatchString("OnAir Lamp"))
	assert.False(t, instance.MatchString("Kitchen"))

	assert.Error(t, instance.Set("(("))
}

func TestPattern_yaml(t *testing.T) {
	type holder struct {
		Name Pattern `yaml:"name"`
	}

	var actual holder
	require.NoError(t, yaml.Unmarshal([]byte("name: ^Office\n"), &actual))
	assert.Equal(t, "^Office", actual.Name.String())

	b, err := yaml.Marshal(actual)
	require.NoError(t, err)
	assert.Equal(t, "name: ^Office\n", string(b))
}
