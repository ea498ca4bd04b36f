package domain

import (
	"errors"
	"reflect"
	"regexp"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

// Validation message identifiers. They are translation keys, not display text.
const (
	MsgRequired                   = "validation.required"
	MsgInvalidEmail               = "validation.invalidEmail"
	MsgIssueDateRequired          = "validation.issueDateRequired"
	MsgDueDateRequired            = "validation.dueDateRequired"
	MsgAtLeastOneItem             = "validation.atLeastOneItem"
	MsgAtLeastOneItemWithQuantity = "validation.atLeastOneItemWithQuantity"
	MsgNonNegative                = "validation.nonNegative"
	MsgInvalidLanguage            = "validation.invalidLanguage"
	MsgInvalid                    = "validation.invalid"
)

// FormPath is the path used for errors that belong to no single field.
const FormPath = "form"

// FieldError is one failed rule: a dotted JSON path and a message identifier.
type FieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

// String renders the error as "path: message".
func (e FieldError) String() string {
	path := e.Path
	if path == "" {
		path = FormPath
	}
	return path + ": " + e.Message
}

// ValidationResult is returned by Validate. Errors is empty when Valid is true.
type ValidationResult struct {
	Valid  bool         `json:"valid"`
	Errors []FieldError `json:"errors,omitempty"`
}

var (
	validate     *validator.Validate
	validateOnce sync.Once
	indexPattern = regexp.MustCompile(`\[(\d+)\]`)
)

func invoiceValidator() *validator.Validate {
	validateOnce.Do(func() {
		v := validator.New()
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			return name
		})
		// Item level rules must still run when no item has a quantity, so
		// this check is struct level rather than a tag ahead of dive.
		v.RegisterStructValidation(detailsLevelValidation, InvoiceDetails{})
		validate = v
	})
	return validate
}

// detailsLevelValidation reports details.items when no line item has a
// positive quantity. An empty list is left to the min rule.
func detailsLevelValidation(sl validator.StructLevel) {
	details := sl.Current().Interface().(InvoiceDetails)
	if len(details.Items) == 0 || hasQuantity(details.Items) {
		return
	}
	sl.ReportError(details.Items, "items", "Items", "has_quantity", "")
}

// hasQuantity reports whether at least one line item has a positive quantity.
func hasQuantity(items []LineItem) bool {
	for _, item := range items {
		if item.Quantity > 0 {
			return true
		}
	}
	return false
}

// Validate decides whether inv is complete enough to export or print.
// Failures are returned as data, never as an error.
func Validate(inv Invoice) ValidationResult {
	err := invoiceValidator().Struct(inv)
	if err == nil {
		return ValidationResult{Valid: true}
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) {
		return ValidationResult{Errors: []FieldError{{Path: FormPath, Message: MsgInvalid}}}
	}

	out := make([]FieldError, 0, len(fieldErrs))
	for _, fe := range fieldErrs {
		path := fieldPath(fe.Namespace())
		out = append(out, FieldError{Path: path, Message: messageFor(path, fe.Tag())})
	}
	return ValidationResult{Errors: out}
}

// fieldPath turns "Invoice.details.items[0].quantity" into "details.items.0.quantity".
func fieldPath(namespace string) string {
	i := strings.IndexByte(namespace, '.')
	if i < 0 {
		return FormPath
	}
	return indexPattern.ReplaceAllString(namespace[i+1:], ".$1")
}

func messageFor(path, tag string) string {
	switch tag {
	case "required":
		switch path {
		case "details.invoiceDate":
			return MsgIssueDateRequired
		case "details.dueDate":
			return MsgDueDateRequired
		}
		return MsgRequired
	case "email":
		return MsgInvalidEmail
	case "min":
		return MsgAtLeastOneItem
	case "has_quantity":
		return MsgAtLeastOneItemWithQuantity
	case "gte":
		return MsgNonNegative
	case "oneof":
		return MsgInvalidLanguage
	}
	return MsgInvalid
}

// JoinValidationErrors renders errors one per line as "path: message".
// translate, when non-nil, is applied to message identifiers under "validation.".
func JoinValidationErrors(errs []FieldError, translate func(key string) string) string {
	lines := make([]string, 0, len(errs))
	for _, e := range errs {
		if translate != nil && strings.HasPrefix(e.Message, "validation.") {
			e.Message = translate(e.Message)
		}
		lines = append(lines, e.String())
	}
	return strings.Join(lines, "\n")
}
