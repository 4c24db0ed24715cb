package validation

import (
	"fmt"

	errors "github.com/gatherhub/community/internal"
)

type ValidatorFunc func(interface{}) *errors.ValidationError

type FieldValidator struct {
	FieldName  string
	Value      interface{}
	Validators []ValidatorFunc
}

type ValidationBuilder struct {
	fields []FieldValidator
}

func NewValidator() *ValidationBuilder {
	return &ValidationBuilder{
		fields: make([]FieldValidator, 0),
	}
}

func (v *ValidationBuilder) Field(name string, value interface{}) *FieldValidator {
	fv := FieldValidator{
		FieldName:  name,
		Value:      value,
		Validators: make([]ValidatorFunc, 0),
	}
	v.fields = append(v.fields, fv)
	return &v.fields[len(v.fields)-1]
}

func (fv *FieldValidator) Required() *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		switch v := value.(type) {
		case string:
			if v == "" {
				return &errors.ValidationError{
					Field:   fv.FieldName,
					Message: fmt.Sprintf("%s is required", fv.FieldName),
					Code:    string(errors.ErrCodeValidationFailed),
				}
			}
		case int64:
			if v == 0 {
				return &errors.ValidationError{
					Field:   fv.FieldName,
					Message: fmt.Sprintf("%s is required", fv.FieldName),
					Code:    string(errors.ErrCodeValidationFailed),
				}
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) MaxLength(max int) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		if v, ok := value.(string); ok && len(v) > max {
			return &errors.ValidationError{
				Field:   fv.FieldName,
				Message: fmt.Sprintf("%s must be at most %d characters", fv.FieldName, max),
				Code:    string(errors.ErrCodeValidationFailed),
			}
		}
		return nil
	})
	return fv
}

func (fv *FieldValidator) OneOf(allowed ...string) *FieldValidator {
	fv.Validators = append(fv.Validators, func(value interface{}) *errors.ValidationError {
		v, ok := value.(string)
		if !ok || v == "" {
			return nil
		}
		for _, a := range allowed {
			if v == a {
				return nil
			}
		}
		return &errors.ValidationError{
			Field:   fv.FieldName,
			Message: fmt.Sprintf("%s must be one of %v", fv.FieldName, allowed),
			Code:    string(errors.ErrCodeValidationFailed),
		}
	})
	return fv
}

// Validate runs every field's validators and collects failures into a
// single AppError, or returns nil when everything passes. The caller gets
// the failed record back for re-display instead of a hard failure.
func (v *ValidationBuilder) Validate() *errors.AppError {
	var failures []errors.ValidationError
	for _, field := range v.fields {
		for _, validator := range field.Validators {
			if ve := validator(field.Value); ve != nil {
				failures = append(failures, *ve)
			}
		}
	}
	if len(failures) > 0 {
		return errors.NewValidationFieldErrors(failures)
	}
	return nil
}
