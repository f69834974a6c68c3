package validate

import "github.com/go-playground/validator/v10"

var v = validator.New(validator.WithRequiredStructEnabled())

// Struct проверяет входные структуры репозиториев до какой-либо записи.
func Struct(s any) error { return v.Struct(s) }
