// Package validator adapts go-playground/validator to echo and renders field
// errors keyed by JSON name.
package validator

import (
	"fmt"
	"math"
	"reflect"
	"regexp"
	"strings"
	"unicode"

	domainerrors "pharmacy/internal/domain/errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var (
	maPattern         = regexp.MustCompile(`^[A-Z]{2}\d{6}$`)
	ndcPattern        = regexp.MustCompile(`^\d{4}-\d{4}-\d{2}$`)
	atcPattern        = regexp.MustCompile(`^[A-Z]\d{2}[A-Z]{2}\d{2}$`)
	controlledPattern = regexp.MustCompile(`^C-[IV]{1,3}$`)
	imageURLPattern   = regexp.MustCompile(`^(http|https)://.*\.(jpeg|jpg|gif|png|bmp|svg)(\?.*)?$`)
)

// Messages for the custom tags.
var tagMessages = map[string]string{
	"ma":         "must be in format AA123456",
	"ndc":        "must be in format 1234-5678-90",
	"atc":        "must follow the format A00AA00",
	"controlled": "must follow the format C-I, C-II, etc.",
	"imageurl":   "must be a valid image URL",
	"price":      "must be a valid number with up to 2 decimal places",
	"datetime":   "must follow the format YYYY-MM-dd",
}

// CustomValidator implements echo.Validator.
type CustomValidator struct {
	validate *validator.Validate
}

// New creates a validator with the catalog's custom tags registered.
func New() *CustomValidator {
	validate := validator.New(validator.WithRequiredStructEnabled())

	validate.RegisterTagNameFunc(func(field reflect.StructField) string {
		name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}

		return name
	})

	mustRegister(validate, "ma", matchString(maPattern))
	mustRegister(validate, "ndc", matchString(ndcPattern))
	mustRegister(validate, "atc", matchString(atcPattern))
	mustRegister(validate, "controlled", matchString(controlledPattern))
	mustRegister(validate, "imageurl", matchString(imageURLPattern))
	mustRegister(validate, "price", twoDecimalPlaces)

	return &CustomValidator{validate: validate}
}

// Validate returns a *domainerrors.ValidationError listing every failed field.
func (cv *CustomValidator) Validate(i any) error {
	err := cv.validate.Struct(i)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return errors.Wrap(err, "validate request")
	}

	fields := make(map[string]string, len(fieldErrs))
	for _, fe := range fieldErrs {
		// Keep the first failure per field.
		if _, seen := fields[fe.Field()]; !seen {
			fields[fe.Field()] = message(fe)
		}
	}

	return domainerrors.NewValidationError(objectName(i), fields)
}

func message(fe validator.FieldError) string {
	if msg, ok := tagMessages[fe.Tag()]; ok {
		return msg
	}

	switch fe.Tag() {
	case "required":
		return "must not be blank"
	case "max":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("cannot exceed %s characters", fe.Param())
		}

		return "cannot exceed " + fe.Param()
	case "min":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}

		return "must be at least " + fe.Param()
	case "gte":
		return "must be at least " + fe.Param()
	case "lte":
		return "cannot exceed " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return "is invalid"
	}
}

// objectName renders the request type the way it is reported to clients, e.g. createDrugRequest.
func objectName(i any) string {
	t := reflect.TypeOf(i)
	for t.Kind() == reflect.Pointer {
		t = t.Elem()
	}

	name := []rune(t.Name())
	if len(name) == 0 {
		return "request"
	}
	name[0] = unicode.ToLower(name[0])

	return string(name)
}

func matchString(pattern *regexp.Regexp) validator.Func {
	return func(fl validator.FieldLevel) bool {
		return pattern.MatchString(fl.Field().String())
	}
}

func twoDecimalPlaces(fl validator.FieldLevel) bool {
	field := fl.Field()
	if field.Kind() != reflect.Float64 && field.Kind() != reflect.Float32 {
		return false
	}

	cents := field.Float() * 100

	return math.Abs(cents-math.Round(cents)) < 1e-6
}

func mustRegister(validate *validator.Validate, tag string, fn validator.Func) {
	if err := validate.RegisterValidation(tag, fn); err != nil {
		panic(errors.Wrapf(err, "register validation %q", tag))
	}
}
