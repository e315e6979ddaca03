package users

import (
	"errors"
	"math"
	"reflect"
	"strconv"
	"strings"

	"geo-users/internal/utils/sanitize"

	"github.com/go-playground/validator/v10"
)

// RegisterRequest is the raw registration payload. Coordinates are decoded
// as "any" so that a non-numeric value surfaces as a field error instead of
// a body decoding failure.
type RegisterRequest struct {
	Name      string `json:"name" validate:"required" example:"Jane Doe"`
	Email     string `json:"email" validate:"required,email" example:"jane@example.com"`
	Password  string `json:"password" validate:"required" example:"secret"`
	Address   string `json:"address" validate:"required" example:"221B Baker Street, London"`
	Latitude  any    `json:"latitude" validate:"required,float" swaggertype:"number" example:"51.5237"`
	Longitude any    `json:"longitude" validate:"required,float" swaggertype:"number" example:"-0.1585"`
}

// Validator checks registration payloads field by field, in declaration
// order, and reports only the first failure.
type Validator struct {
	v *validator.Validate
}

// NewValidator builds a Validator whose errors use JSON field names.
func NewValidator() *Validator {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// float: a JSON number or a string strconv.ParseFloat accepts, e.g. "1e2"; finite only
	_ = v.RegisterValidation("float", func(fl validator.FieldLevel) bool {
		_, ok := parseNumber(fl.Field())
		return ok
	})
	return &Validator{v: v}
}

// Check normalizes req and validates it. It has no side effects on req.
func (v *Validator) Check(req RegisterRequest) (Registration, error) {
	req.Name = sanitize.Line(req.Name)
	req.Address = sanitize.Line(req.Address)
	req.Email = NormalizeEmail(req.Email)

	if err := v.v.Struct(req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return Registration{}, &ValidationError{
				Field:   verrs[0].Field(),
				Message: fieldMessage(verrs[0]),
			}
		}
		return Registration{}, err
	}

	return Registration{
		Name:      req.Name,
		Email:     req.Email,
		Password:  req.Password,
		Address:   req.Address,
		Latitude:  toFloat(req.Latitude),
		Longitude: toFloat(req.Longitude),
	}, nil
}

// NormalizeEmail trims and lower-cases an address for storage and lookup.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "float":
		return fe.Field() + " must be a number"
	default:
		return fe.Field() + " is invalid"
	}
}

// toFloat converts a value that already passed the "float" rule.
func toFloat(v any) float64 {
	f, _ := parseNumber(reflect.ValueOf(v))
	return f
}

func parseNumber(v reflect.Value) (float64, bool) {
	var f float64
	switch v.Kind() {
	case reflect.Float32, reflect.Float64:
		f = v.Float()
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		f = float64(v.Int())
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		f = float64(v.Uint())
	case reflect.String:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
		if err != nil {
			return 0, false
		}
		f = parsed
	default:
		return 0, false
	}
	if math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
