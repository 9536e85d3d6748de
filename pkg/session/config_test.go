package session

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/blaubaer/transcriber/pkg/common"
)

func TestConfig_RequestMissing_nothingMissing(t *testing.T) {
	given := Config{Monitors: "1, 2", Speakers: 2, BotId: "bot"}
	actual := given

	require.NoError(t, actual.RequestMissing(common.Prompter{}))
	assert.Equal(t, given, actual)
}
