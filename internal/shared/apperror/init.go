package apperror

import (
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// ISODateLayout is the calendar date layout used in JSON payloads.
const ISODateLayout = "2006-01-02"

var initOnce sync.Once

func Init() {
	initOnce.Do(registerValidator)
}

func registerValidator() {
	// Daftarkan fungsi kustom ke validator bawaan Gin
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			// Mengambil nama dari tag json (contoh: `json:"employeeId"`)
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "" {
				// query string DTO hanya punya tag form
				name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
			}
			if name == "-" {
				return ""
			}
			return name
		})
		_ = v.RegisterValidation("isodate", isISODate)
	}
}

// ParseISODate accepts a plain date or a full RFC3339 timestamp and
// truncates the result to the calendar date.
func ParseISODate(s string) (time.Time, error) {
	if t, err := time.Parse(ISODateLayout, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

func isISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := ParseISODate(s)
	return err == nil
}
