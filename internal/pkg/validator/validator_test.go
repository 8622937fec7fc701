package validator

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type sample struct {
	Name  string `json:"name" validate:"notblank,max=10"`
	Email string `json:"email" validate:"omitempty,email"`
}

func TestValidate(t *testing.T) {
	assert.Nil(t, Validate(&sample{Name: "Ana"}))
	assert.Equal(t, map[string]string{"name": "notblank"}, Validate(&sample{Name: "   "}))
	assert.Equal(t, map[string]string{"email": "email"}, Validate(&sample{Name: "Ana", Email: "nope"}))
}
