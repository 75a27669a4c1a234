package service

import (
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"

	"github.com/alexanderramin/archivio/internal/domain"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// validateInput runs struct-tag validation and reports every failing field
// as a single ErrValidation.
func validateInput(in any) error {
	err := validate.Struct(in)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return domain.Invalidf("%v", err)
	}
	msgs := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		msgs = append(msgs, fieldMessage(fe))
	}
	return domain.Invalidf("%s", strings.Join(msgs, "; "))
}

func fieldMessage(fe validator.FieldError) string {
	field := strings.ToLower(fe.Field())
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_with":
		return fmt.Sprintf("%s is required when %s is set", field, strings.ToLower(fe.Param()))
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s characters", field, fe.Param())
	case "numeric":
		return field + " must be a number"
	default:
		return fmt.Sprintf("%s failed %s", field, fe.Tag())
	}
}

func formatValidationErrors(errs []error) error {
	msg := fmt.Sprintf("import validation failed (%d errors):", len(errs))
	for _, e := range errs {
		msg += "\n  - " + e.Error()
	}
	return fmt.Errorf("%w: %s", domain.ErrValidation, msg)
}

// parseKindFilter maps "", "all", "general" and "invoice" to the kinds to
// search, in display order.
func parseKindFilter(s string) ([]domain.DocKind, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", domain.FilterAll:
		return []domain.DocKind{domain.DocGeneral, domain.DocInvoice}, nil
	case string(domain.DocGeneral):
		return []domain.DocKind{domain.DocGeneral}, nil
	case string(domain.DocInvoice):
		return []domain.DocKind{domain.DocInvoice}, nil
	default:
		return nil, domain.Invalidf("document type filter %q: expected all, general or invoice", s)
	}
}

// parseEntityFilter returns nil for "" and "all".
func parseEntityFilter(s string) (*domain.EntityType, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" || s == domain.FilterAll {
		return nil, nil
	}
	if !domain.ValidEntityTypes[s] {
		return nil, domain.Invalidf("entity type filter %q: expected all, supplier, client or staff", s)
	}
	et := domain.EntityType(s)
	return &et, nil
}

// folder performs Unicode case folding so "ÉTÉ" matches "été". A Caser is
// stateful, so each search builds its own.
type folder struct {
	caser cases.Caser
}

func newFolder() *folder {
	return &folder{caser: cases.Fold()}
}

func (f *folder) fold(s string) string {
	return f.caser.String(s)
}

// matches reports whether any candidate contains the folded needle. An
// empty needle matches everything.
func (f *folder) matches(needle string, candidates ...string) bool {
	if needle == "" {
		return true
	}
	for _, c := range candidates {
		if strings.Contains(f.fold(c), needle) {
			return true
		}
	}
	return false
}

// trimInput normalises free-text fields before validation.
func trimInput(fields ...*string) {
	for _, f := range fields {
		*f = strings.TrimSpace(*f)
	}
}
