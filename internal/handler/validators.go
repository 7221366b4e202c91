package handler

import (
	"fmt"
	"sync"

	"thaitravel/internal/model"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the custom binding tags used by request DTOs to
// gin's validator engine. Safe to call more than once. It panics when the
// tags cannot be registered, since every request using them would fail.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			panic(fmt.Sprintf("handler: unexpected validator engine %T", binding.Validator.Engine()))
		}
		if err := registerProvinceValidation(v); err != nil {
			panic(fmt.Sprintf("handler: register province validator: %v", err))
		}
	})
}

func registerProvinceValidation(v *validator.Validate) error {
	return v.RegisterValidation("province", func(fl validator.FieldLevel) bool {
		return model.IsProvince(fl.Field().String())
	})
}
