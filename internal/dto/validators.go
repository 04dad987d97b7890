package dto

import (
	"github.com/SscSPs/kasbook/internal/core/domain"
	"github.com/go-playground/validator/v10"
)

// RegisterValidators adds the enum validators used in request binding tags.
func RegisterValidators(v *validator.Validate) error {
	validators := map[string]validator.Func{
		"direction": func(fl validator.FieldLevel) bool {
			return domain.Direction(fl.Field().String()).Valid()
		},
		"approval_status": func(fl validator.FieldLevel) bool {
			return domain.ApprovalStatus(fl.Field().String()).Valid()
		},
		"payment_method": func(fl validator.FieldLevel) bool {
			return domain.PaymentMethod(fl.Field().String()).Valid()
		},
		"sub_category_kind": func(fl validator.FieldLevel) bool {
			return domain.SubCategoryKind(fl.Field().String()).Valid()
		},
		"feature": func(fl validator.FieldLevel) bool {
			return domain.Feature(fl.Field().String()).Valid()
		},
	}
	for tag, fn := range validators {
		if err := v.RegisterValidation(tag, fn); err != nil {
			return err
		}
	}
	return nil
}
