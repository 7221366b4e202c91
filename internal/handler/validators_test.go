package handler

import (
	"testing"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterProvinceValidation(t *testing.T) {
	v := validator.New()
	require.NoError(t, registerProvinceValidation(v))

	type payload struct {
		Province string `validate:"province"`
	}
	assert.NoError(t, v.Struct(payload{Province: "Chiang Mai"}))
	assert.Error(t, v.Struct(payload{Province: "Atlantis"}))
}

func TestRegisterValidatorsIsIdempotent(t *testing.T) {
	require.NotPanics(t, RegisterValidators)
	require.NotPanics(t, RegisterValidators)

	v, ok := binding.Validator.Engine().(*validator.Validate)
	require.True(t, ok)
	assert.NoError(t, v.Var("Bangkok", "province"))
	assert.Error(t, v.Var("Gotham", "province"))
}
