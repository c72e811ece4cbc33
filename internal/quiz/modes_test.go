package quiz

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestParseModeRoundTrip(t *testing.T) {
	for _, mode := range []Mode{ModeTranslationInput, ModePinyinInput, ModeHanziChoice, ModeTranslationChoice} {
		parsed, err := ParseMode(mode.String())
		assert.NoError(t, err)
		assert.Equal(t, mode, parsed)
	}
}

func TestParseModeUnknown(t *testing.T) {
	_, err := ParseMode("freestyle")
	assert.ErrorIs(t, err, ErrUnknownMode)

	_, err = ParseMode("")
	assert.ErrorIs(t, err, ErrUnknownMode)
}

func TestModeChoice(t *testing.T) {
	assert.False(t, ModeTranslationInput.Choice())
	assert.False(t, ModePinyinInput.Choice())
	assert.True(t, ModeHanziChoice.Choice())
	assert.True(t, ModeTranslationChoice.Choice())
}

func TestModeJSON(t *testing.T) {
	data, err := json.Marshal(ModePinyinInput)
	assert.NoError(t, err)
	assert.Equal(t, `"pinyin_input"`, string(data))

	var mode Mode
	assert.NoError(t, json.Unmarshal([]byte(`"hanzi_choice"`), &mode))
	assert.Equal(t, ModeHanziChoice, mode)

	assert.Error(t, json.Unmarshal([]byte(`"nope"`), &mode))

	_, err = json.Marshal(Mode(0))
	assert.Error(t, err)
}
