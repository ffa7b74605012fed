package application

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/riyanshibariyaa/jp5/internal/ats"
)

// Register the pipeline enums with gin's validator so malformed transition
// payloads are rejected at binding time with a field-level message.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	_ = v.RegisterValidation("appstatus", func(fl validator.FieldLevel) bool {
		return ats.ValidStatus(fl.Field().String())
	})
	_ = v.RegisterValidation("atsstage", func(fl validator.FieldLevel) bool {
		return ats.ValidStage(fl.Field().String())
	})
}
