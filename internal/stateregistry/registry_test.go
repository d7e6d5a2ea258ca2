package stateregistry

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsSupported(t *testing.T) {
	assert.True(t, IsSupported("CA"))
	assert.True(t, IsSupported("TX"))
	assert.False(t, IsSupported("ZZ"))
}

func TestSupportedCodesIsSorted(t *testing.T) {
	codes := SupportedCodes()
	assert.Equal(t, []string{"CA", "FL", "NY", "TX"}, codes)
}

func TestInfo(t *testing.T) {
	row, ok := Info("CA")
	assert.True(t, ok)
	assert.Equal(t, "California", row.HumanName)

	_, ok = Info("ZZ")
	assert.False(t, ok)
}

func TestList(t *testing.T) {
	rows := List()
	assert.Len(t, rows, 4)
	assert.Equal(t, "CA", rows[0].Code)
}

func TestCreateRules(t *testing.T) {
	rules := CreateRules("TX", nil)
	assert.NotEmpty(t, rules)

	assert.Nil(t, CreateRules("ZZ", nil))
}

func TestCreateMultiStateRules_SkipsUnregistered(t *testing.T) {
	rules := CreateMultiStateRules([]string{"CA", "ZZ", "TX"}, nil)
	assert.NotEmpty(t, rules)
}
