package util

import (
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"gopkg.in/guregu/null.v3"
)

// DateLayouts are the accepted input layouts for activity dates, most specific first.
var DateLayouts = []string{
	time.RFC3339Nano,
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
	"2006-01-02",
}

func NewValidator() *validator.Validate {
	validate := validator.New()
	validate.RegisterValidation("caseinsensitiveoneof", caseInsensitiveOneOf)
	validate.RegisterValidation("activitydate", activityDate)
	validate.RegisterCustomTypeFunc(nullIntValuer, null.Int{})
	validate.RegisterCustomTypeFunc(nullStringValuer, null.String{})
	validate.RegisterTagNameFunc(fieldTagName)

	return validate
}

// ParseDate parses s with the first matching layout of DateLayouts.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	for _, layout := range DateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

func caseInsensitiveOneOf(fl validator.FieldLevel) bool {
	val := strings.ToLower(fl.Field().String())
	candidates := strings.Split(strings.ToLower(fl.Param()), " ")
	for _, v := range candidates {
		if val == v {
			return true
		}
	}
	return false
}

func activityDate(fl validator.FieldLevel) bool {
	val := fl.Field().String()
	if val == "" {
		return true
	}
	_, ok := ParseDate(val)
	return ok
}

// fieldTagName names fields after their json tag, or their query tag for
// query structs.
func fieldTagName(fld reflect.StructField) string {
	for _, key := range []string{"json", "query"} {
		name := strings.SplitN(fld.Tag.Get(key), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return ""
}

func nullIntValuer(field reflect.Value) any {
	if valuer, ok := field.Interface().(null.Int); ok {
		return valuer.Int64
	}

	return nil
}

func nullStringValuer(field reflect.Value) any {
	if valuer, ok := field.Interface().(null.String); ok {
		return valuer.String
	}

	return nil
}
