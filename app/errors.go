package app

import (
	"errors"

	"edaviz/adapters/excel"
	"edaviz/domain/chart"
	"edaviz/domain/dataset"
	apperrors "edaviz/internal/errors"
)

// classify attaches an AppError code to a domain error so transports can map
// it to a status without knowing the domain types
func classify(err error) error {
	if err == nil || apperrors.IsAppError(err) {
		return err
	}

	var (
		unsupported  *excel.UnsupportedFormatError
		parseErr     *excel.ParseError
		insufficient *chart.InsufficientColumnsError
		bindingErr   *chart.BindingError
		schemaErr    *dataset.SchemaError
	)
	switch {
	case errors.As(err, &unsupported):
		return apperrors.Coded(apperrors.CodeUnsupportedFormat, err)
	case errors.As(err, &parseErr):
		return apperrors.Coded(apperrors.CodeParseFailure, err)
	case errors.Is(err, excel.ErrTooLarge), errors.Is(err, excel.ErrTooManyRows):
		return apperrors.Coded(apperrors.CodeTooLarge, err)
	case errors.As(err, &insufficient):
		return apperrors.Coded(apperrors.CodeInsufficientColumns, err)
	case errors.As(err, &bindingErr), errors.As(err, &schemaErr):
		return apperrors.Coded(apperrors.CodeSchemaMismatch, err)
	case errors.Is(err, chart.ErrUnknownKind):
		return apperrors.Coded(apperrors.CodeInvalidInput, err)
	}
	return apperrors.Wrap(err, "unexpected failure")
}
