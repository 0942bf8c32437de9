package handler

import (
	"errors"
	"fmt"
	"reflect"
	"regexp"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"restoapi/internal/http/middleware"
	"restoapi/internal/service"
)

var hhmmPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d$`)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		for _, tag := range []string{"json", "query", "form"} {
			name := strings.SplitN(f.Tag.Get(tag), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name != "" {
				return name
			}
		}
		return f.Name
	})
	_ = v.RegisterValidation("ymd", func(fl validator.FieldLevel) bool {
		_, err := time.Parse(time.DateOnly, fl.Field().String())
		return err == nil
	})
	_ = v.RegisterValidation("hhmm", func(fl validator.FieldLevel) bool {
		return hhmmPattern.MatchString(fl.Field().String())
	})
	return v
}

type fieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type validationError struct {
	fields []fieldError
}

func (e *validationError) Error() string {
	parts := make([]string, 0, len(e.fields))
	for _, f := range e.fields {
		parts = append(parts, f.Field+" "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "email":
		return "must be a valid email address"
	case "uuid":
		return "must be a valid id"
	case "ymd":
		return "must be a date in YYYY-MM-DD format"
	case "hhmm":
		return "must be a time in HH:mm format"
	case "oneof":
		return "must be one of " + fe.Param()
	case "min", "gte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at least %s characters", fe.Param())
		}
		return "must be at least " + fe.Param()
	case "max", "lte":
		if fe.Kind() == reflect.String {
			return fmt.Sprintf("must be at most %s characters", fe.Param())
		}
		return "must be at most " + fe.Param()
	}
	return "is invalid"
}

// validateStruct runs the struct tags of v and converts failures into a *validationError.
func validateStruct(v any) error {
	err := validate.Struct(v)
	if err == nil {
		return nil
	}
	var errs validator.ValidationErrors
	if !errors.As(err, &errs) {
		return err
	}
	out := &validationError{}
	for _, fe := range errs {
		out.fields = append(out.fields, fieldError{Field: fe.Field(), Message: fieldMessage(fe)})
	}
	return out
}

// bindJSON decodes the request body into dst and validates it. An empty body
// decodes to the zero value so optional bodies need no special casing.
func bindJSON(c *fiber.Ctx, dst any) error {
	if body := c.Body(); len(body) > 0 {
		if err := c.App().Config().JSONDecoder(body, dst); err != nil {
			return errInvalidBody
		}
	}
	return validateStruct(dst)
}

func bindQuery(c *fiber.Ctx, dst any) error {
	if err := c.QueryParser(dst); err != nil {
		return errInvalidQuery
	}
	return validateStruct(dst)
}

// pathID returns the named route parameter after checking it is a UUID.
func pathID(c *fiber.Ctx, name string) (string, error) {
	id := c.Params(name)
	if _, err := uuid.Parse(id); err != nil {
		return "", errInvalidID
	}
	return id, nil
}

// caller converts verified token claims into the service-level identity.
func caller(c *fiber.Ctx) *service.Caller {
	claims := middleware.Claims(c)
	if claims == nil {
		return nil
	}
	return &service.Caller{UserID: claims.UserID, Email: claims.Email, Role: claims.Role}
}

// requireCaller is used on routes behind middleware.Auth.
func requireCaller(c *fiber.Ctx) (*service.Caller, error) {
	cl := caller(c)
	if cl == nil {
		return nil, fiber.NewError(fiber.StatusUnauthorized, "missing bearer token")
	}
	return cl, nil
}
