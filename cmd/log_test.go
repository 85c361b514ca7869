package cmd

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEntryFormClockValidators(t *testing.T) {
	assert.NoError(t, validateClock("09:30"))
	assert.Error(t, validateClock("24:00"))
	assert.Error(t, validateClock("9h"))

	assert.NoError(t, validateOptionalClock(""))
	assert.NoError(t, validateOptionalClock("24:00"))
	assert.Error(t, validateOptionalClock("24:01"))
}
