package validator

import (
	"fmt"
	"reflect"
	"slices"
	"strings"
)

type validatorFunc func(field string, value reflect.Value, params []string) Rule

// Supported rules. Unknown rule names in a tag are ignored.
var registry = map[string]validatorFunc{
	"required": requiredValidator,
	"in":       inValidator,
}

// ValidateStruct validates a struct based on its field tags.
func ValidateStruct(v any) error {
	rv := reflect.ValueOf(v)
	if rv.Kind() != reflect.Pointer {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	rv = rv.Elem()
	if rv.Kind() != reflect.Struct {
		return fmt.Errorf("validator: must pass a pointer to struct")
	}

	var errs ValidationErrors
	validateStructRecursive(rv, "", &errs)

	if errs.IsEmpty() {
		return nil
	}
	return errs
}

func validateStructRecursive(rv reflect.Value, prefix string, errs *ValidationErrors) {
	rt := rv.Type()

	for i := 0; i < rv.NumField(); i++ {
		field := rv.Field(i)
		if !field.CanSet() {
			continue
		}

		structField := rt.Field(i)
		tag := structField.Tag.Get("validate")
		if tag == "-" {
			continue
		}

		fieldPath := fieldName(structField)
		if prefix != "" {
			fieldPath = prefix + "." + fieldPath
		}

		if field.Kind() == reflect.Struct && tag == "" {
			validateStructRecursive(field, fieldPath, errs)
			continue
		}

		if field.Kind() == reflect.Pointer && !field.IsNil() {
			field = field.Elem()
			if field.Kind() == reflect.Struct && tag == "" {
				validateStructRecursive(field, fieldPath, errs)
				continue
			}
		}

		if tag == "" {
			continue
		}
		validateField(fieldPath, field, tag, errs)
	}
}

func fieldName(sf reflect.StructField) string {
	if name, _, _ := strings.Cut(sf.Tag.Get("json"), ","); name != "" && name != "-" {
		return name
	}
	return sf.Name
}

func validateField(fieldPath string, field reflect.Value, tag string, errs *ValidationErrors) {
	for _, ruleStr := range strings.Split(tag, ";") {
		ruleStr = strings.TrimSpace(ruleStr)
		if ruleStr == "" {
			continue
		}

		name, paramStr, _ := strings.Cut(ruleStr, ":")
		var params []string
		if paramStr = strings.TrimSpace(paramStr); paramStr != "" {
			params = strings.Split(paramStr, ",")
			for i := range params {
				params[i] = strings.TrimSpace(params[i])
			}
		}

		if fn, ok := registry[strings.TrimSpace(name)]; ok {
			rule := fn(fieldPath, field, params)
			if !rule.Check() {
				errs.Add(rule.Error)
			}
		}
	}
}

func pass() Rule {
	return Rule{Check: func() bool { return true }}
}

func requiredValidator(field string, value reflect.Value, params []string) Rule {
	return Rule{
		Check: func() bool {
			switch value.Kind() {
			case reflect.String:
				return strings.TrimSpace(value.String()) != ""
			case reflect.Slice, reflect.Map, reflect.Array:
				return value.Len() > 0
			case reflect.Pointer, reflect.Interface:
				return !value.IsNil()
			default:
				return !value.IsZero()
			}
		},
		Error: ValidationError{Field: field, Message: "field is required"},
	}
}

func inValidator(field string, value reflect.Value, params []string) Rule {
	if value.Kind() != reflect.String {
		return pass()
	}
	s := value.String()
	return Rule{
		Check: func() bool { return slices.Contains(params, s) },
		Error: ValidationError{Field: field, Message: "must be one of: " + strings.Join(params, ", ")},
	}
}
