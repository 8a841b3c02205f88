package descriptor

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestResult_AnswerAndDecline(t *testing.T) {
	t.Parallel()

	answered := Answer([]Badge{{Text: "hi"}})
	assert.True(t, answered.Answered())
	assert.False(t, answered.Declined())
	assert.NotNil(t, answered.Value())

	declined := Decline()
	assert.True(t, declined.Declined())
	assert.False(t, declined.Answered())
	assert.Nil(t, declined.Value())
}

func TestResult_AnswerNilIsStillAnswered(t *testing.T) {
	t.Parallel()

	// Popup-opening hooks answer with no payload; that must not read as
	// a decline.
	r := Answer(nil)
	assert.True(t, r.Answered())
	assert.Nil(t, r.Value())
}

func TestResult_ZeroValueIsDeclined(t *testing.T) {
	t.Parallel()

	var r Result
	assert.True(t, r.Declined())
}
