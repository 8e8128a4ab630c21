package validator

import (
	"testing"

	"carrental/internal/domain"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string  `validate:"required"`
	Price float64 `validate:"gt=0"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(sample{Name: "x", Price: 1}))

	fields := Validate(sample{})
	assert.Equal(t, "required", fields["Name"])
	assert.Equal(t, "gt", fields["Price"])
}

func TestCheck(t *testing.T) {
	assert.NoError(t, Check(sample{Name: "x", Price: 1}))

	err := Check(sample{Price: 5})
	assert.ErrorIs(t, err, domain.ErrValidation)
	assert.Contains(t, err.Error(), "Name (required)")
}
