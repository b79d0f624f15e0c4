package usecase

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

const dateLayout = "2006-01-02"

var inputValidator = newInputValidator()

func newInputValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(field reflect.StructField) string {
		name := strings.SplitN(field.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			return field.Name
		}
		return name
	})
	return v
}

// validateInput runs struct validation and turns the result into a client error.
// Missing fields are reported together, in declaration order.
func validateInput(ctx context.Context, payload any) error {
	err := inputValidator.StructCtx(ctx, payload)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return invalidInput("Invalid request")
	}

	missing := make([]string, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		if fe.Tag() == "required" {
			missing = append(missing, fieldPath(fe))
		}
	}
	if len(missing) > 0 {
		return missingParams(missing...)
	}

	fe := fieldErrs[0]
	switch fe.Tag() {
	case "datetime":
		return invalidInput("Invalid %s, expected YYYY-MM-DD", fieldPath(fe))
	case "gt", "gte":
		return invalidInput("%s must be greater than %s", fieldPath(fe), zeroIfEmpty(fe.Param()))
	case "max":
		return invalidInput("%s must be at most %s characters", fieldPath(fe), fe.Param())
	default:
		return invalidInput("Invalid %s", fieldPath(fe))
	}
}

func missingParams(names ...string) error {
	return invalidInput("Missing required parameters: %s", strings.Join(names, ", "))
}

// requireIDs reports every non-positive id as a missing parameter.
// Ids are checked before any lookup so that existence and ownership can be evaluated.
func requireIDs(ids ...namedID) error {
	var missing []string
	for _, id := range ids {
		if id.value <= 0 {
			missing = append(missing, id.name)
		}
	}
	if len(missing) > 0 {
		return missingParams(missing...)
	}
	return nil
}

type namedID struct {
	name  string
	value int64
}

func idParam(name string, value int64) namedID {
	return namedID{name: name, value: value}
}

func parseDate(field, value string) (time.Time, error) {
	t, err := time.Parse(dateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, invalidInput("Invalid %s, expected YYYY-MM-DD", field)
	}
	return t, nil
}

// fieldPath drops the struct name from the namespace, keeping nested paths like score_categories[0].name.
func fieldPath(fe validator.FieldError) string {
	ns := fe.Namespace()
	if i := strings.IndexByte(ns, '.'); i >= 0 {
		return ns[i+1:]
	}
	return fe.Field()
}

func zeroIfEmpty(param string) string {
	if param == "" {
		return "0"
	}
	return param
}
