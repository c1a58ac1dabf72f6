// Package validator provides tag-based validation for request structs.
//
// Rules are declared in a `validate` struct tag, separated by semicolons,
// with optional comma-separated parameters after a colon:
//
//	type CheckoutRequest struct {
//		PaymentType string `json:"payment_type" validate:"required;in:course,consultation"`
//		ItemID      string `json:"item_id" validate:"required"`
//	}
//
//	if err := validator.ValidateStruct(&req); err != nil {
//		var verrs validator.ValidationErrors
//		if errors.As(err, &verrs) {
//			fmt.Println(verrs.Fields())
//		}
//	}
//
// Supported rules are required and in.
// Field names in errors come from the json tag when present, else the Go field name.
// Every ValidationErrors value matches ErrValidation with errors.Is.
package validator
