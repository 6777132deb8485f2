package handler

import (
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/altynbek8/ServiceApp/internal/model"
)

// Grid-aware binding tags: "slot" accepts only work-hour labels,
// "calendardate" accepts YYYY-MM-DD.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	must(v.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
		return model.IsWorkHour(fl.Field().String())
	}))
	must(v.RegisterValidation("calendardate", func(fl validator.FieldLevel) bool {
		_, err := model.ParseDate(fl.Field().String())
		return err == nil
	}))
}

func must(err error) {
	if err != nil {
		panic(err)
	}
}
