package quiz

import (
	"errors"
	"fmt"
)

// ErrUnknownMode marks a mode value outside the closed enumeration.
// Passing one to Build is a programming error, not a user mistake.
var ErrUnknownMode = errors.New("unknown answer mode")

// Mode is the closed set of answer-format policies. The zero value is
// invalid so an unset mode is always caught by Build.
type Mode uint8

const (
	// ModeTranslationInput shows the hanzi and expects a free-text
	// translation, synonyms accepted.
	ModeTranslationInput Mode = iota + 1
	// ModePinyinInput shows the hanzi and expects the pinyin
	// transcription, tone-marked or digit-marked.
	ModePinyinInput
	// ModeHanziChoice shows the translation and offers hanzi choices.
	ModeHanziChoice
	// ModeTranslationChoice shows the hanzi and offers translation
	// choices.
	ModeTranslationChoice
)

const (
	modeTranslationInput  = "translation_input"
	modePinyinInput       = "pinyin_input"
	modeHanziChoice       = "hanzi_choice"
	modeTranslationChoice = "translation_choice"
)

// String returns the wire name of the mode.
func (m Mode) String() string {
	switch m {
	case ModeTranslationInput:
		return modeTranslationInput
	case ModePinyinInput:
		return modePinyinInput
	case ModeHanziChoice:
		return modeHanziChoice
	case ModeTranslationChoice:
		return modeTranslationChoice
	default:
		return fmt.Sprintf("mode(%d)", uint8(m))
	}
}

// Choice reports whether the mode offers a fixed choice list instead of
// free-text input.
func (m Mode) Choice() bool {
	return m == ModeHanziChoice || m == ModeTranslationChoice
}

// ParseMode resolves a wire name to a Mode.
func ParseMode(name string) (Mode, error) {
	switch name {
	case modeTranslationInput:
		return ModeTranslationInput, nil
	case modePinyinInput:
		return ModePinyinInput, nil
	case modeHanziChoice:
		return ModeHanziChoice, nil
	case modeTranslationChoice:
		return ModeTranslationChoice, nil
	default:
		return 0, fmt.Errorf("%w: %q", ErrUnknownMode, name)
	}
}

// MarshalText implements encoding.TextMarshaler so sessions serialize
// with readable mode names.
func (m Mode) MarshalText() ([]byte, error) {
	if m < ModeTranslationInput || m > ModeTranslationChoice {
		return nil, fmt.Errorf("%w: %d", ErrUnknownMode, uint8(m))
	}
	return []byte(m.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (m *Mode) UnmarshalText(text []byte) error {
	parsed, err := ParseMode(string(text))
	if err != nil {
		return err
	}
	*m = parsed
	return nil
}
