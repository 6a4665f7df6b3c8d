// Файл: pkg/customvalidator/validator.go

package customvalidator

import (
	"regexp"
	"slices"
	"time"

	"asset-tracker/pkg/constants"

	"github.com/go-playground/validator/v10"
	"github.com/shopspring/decimal"
)

var (
	moneyCleaner = regexp.MustCompile(`[,\s]|Rp`)
	refCodeRegex = regexp.MustCompile(`^[A-Za-z0-9]{1,10}$`)
)

// RegisterCustomValidations регистрирует правила для полей активов и справочников.
func RegisterCustomValidations(v *validator.Validate) error {
	if err := v.RegisterValidation("asset_status", isAssetStatus); err != nil {
		return err
	}
	if err := v.RegisterValidation("iso_date", isISODate); err != nil {
		return err
	}
	if err := v.RegisterValidation("money", isMoney); err != nil {
		return err
	}
	if err := v.RegisterValidation("ref_code", isRefCode); err != nil {
		return err
	}

	return nil
}

func isAssetStatus(fl validator.FieldLevel) bool {
	return slices.Contains(constants.AssetStatuses, fl.Field().String())
}

// Пустая дата допустима: синхронизация подставит текущий год.
func isISODate(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	if s == "" {
		return true
	}
	_, err := time.Parse(constants.PurchaseDateLayout, s)
	return err == nil
}

func isMoney(fl validator.FieldLevel) bool {
	s := moneyCleaner.ReplaceAllString(fl.Field().String(), "")
	if s == "" {
		return true
	}
	d, err := decimal.NewFromString(s)
	return err == nil && !d.IsNegative()
}

func isRefCode(fl validator.FieldLevel) bool {
	s := fl.Field().String()
	return s == "" || refCodeRegex.MatchString(s)
}
