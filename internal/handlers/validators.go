package handlers

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var (
	personalFiscalCode = regexp.MustCompile(`^[A-Z]{6}[0-9LMNPQRSTUV]{2}[ABCDEHLMPRST][0-9LMNPQRSTUV]{2}[A-Z][0-9LMNPQRSTUV]{3}[A-Z]$`)
	elevenDigits       = regexp.MustCompile(`^[0-9]{11}$`)
)

// RegisterValidators installs the custom binding tags on gin's validator engine.
func RegisterValidators() error {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return fmt.Errorf("unexpected validator engine %T", binding.Validator.Engine())
	}
	if err := v.RegisterValidation("fiscalcode", validateFiscalCode); err != nil {
		return err
	}
	return v.RegisterValidation("vatnumber", validateVATNumber)
}

// validateFiscalCode accepts a 16-character personal code or an 11-digit
// company code.
func validateFiscalCode(fl validator.FieldLevel) bool {
	code := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	if personalFiscalCode.MatchString(code) {
		return true
	}
	return elevenDigits.MatchString(code) && validVATChecksum(code)
}

// validateVATNumber accepts an 11-digit VAT number, optionally prefixed with IT.
func validateVATNumber(fl validator.FieldLevel) bool {
	vat := strings.ToUpper(strings.TrimSpace(fl.Field().String()))
	vat = strings.TrimPrefix(vat, "IT")
	return elevenDigits.MatchString(vat) && validVATChecksum(vat)
}

// validVATChecksum verifies the control digit of an 11-digit VAT number.
func validVATChecksum(digits string) bool {
	sum := 0
	for i, r := range digits {
		d := int(r - '0')
		if i%2 == 1 {
			d *= 2
			if d > 9 {
				d -= 9
			}
		}
		sum += d
	}
	return sum%10 == 0
}
