package validators

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/BruksfildServices01/tattoo-scheduler/internal/domain/availability"
)

// TagTimeOfDay valida strings "HH:MM" (00:00 a 24:00).
const TagTimeOfDay = "hhmm"

func isTimeOfDay(fl validator.FieldLevel) bool {
	_, err := availability.ParseTimeOfDay(fl.Field().String())
	return err == nil
}

// Register instala as validações próprias no validator usado pelo gin.
func Register() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return nil
	}
	return RegisterOn(v)
}

func RegisterOn(v *validator.Validate) error {
	return v.RegisterValidation(TagTimeOfDay, isTimeOfDay)
}
