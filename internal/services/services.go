package services

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/yukikurage/task-manager/internal/utils"
	"github.com/yukikurage/task-manager/internal/validation"
	"gorm.io/gorm"
)

// ErrForbidden is returned when the acting worker may not perform an action.
var ErrForbidden = errors.New("permission denied")

const (
	msgRequired      = "This field is required."
	msgInvalidChoice = "Select a valid choice. That choice is not one of the available choices."
)

// allRows lists every row; gorm drops a negative limit.
var allRows = utils.PaginationParams{Page: 1, Limit: -1}

// Page is one page of a list together with its pagination metadata.
type Page[T any] struct {
	Items      []T
	Pagination utils.PaginationResponse
}

// paginate counts the filtered rows, resolves the raw page value against the
// count and loads that page. utils.ErrInvalidPage is returned unwrapped.
func paginate[T any](rawPage string, limit int, count func() (int64, error), list func(utils.PaginationParams) ([]T, error)) (*Page[T], error) {
	total, err := count()
	if err != nil {
		return nil, fmt.Errorf("failed to count rows: %w", err)
	}

	params, err := utils.ResolvePage(strings.TrimSpace(rawPage), total, limit)
	if err != nil {
		return nil, err
	}

	items, err := list(params)
	if err != nil {
		return nil, fmt.Errorf("failed to list rows: %w", err)
	}

	return &Page[T]{
		Items:      items,
		Pagination: utils.NewPaginationResponse(params, total),
	}, nil
}

// resolveRef parses an optional reference to an existing row.
// An empty value resolves to nil. ok is false when the value is not an id or
// names no row; err carries storage failures only.
func resolveRef(raw string, find func(id uint64) error) (id *uint64, ok bool, err error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, true, nil
	}

	n, parseErr := strconv.ParseUint(raw, 10, 64)
	if parseErr != nil {
		return nil, false, nil
	}

	if err := find(n); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, false, nil
		}
		return nil, false, err
	}
	return &n, true, nil
}

// checkRef resolves raw into a reference and records a choice error on field.
func checkRef(errs validation.Errors, field, raw string, required bool, find func(id uint64) error) (*uint64, error) {
	if required && strings.TrimSpace(raw) == "" {
		errs.Add(field, msgRequired)
		return nil, nil
	}

	id, ok, err := resolveRef(raw, find)
	if err != nil {
		return nil, err
	}
	if !ok {
		errs.Add(field, msgInvalidChoice)
	}
	return id, nil
}

// modelErrors runs the model rules and adds their messages for fields the
// form checks have not already rejected.
func modelErrors(errs validation.Errors, model any) error {
	err := validation.Struct(model)
	if err == nil {
		return nil
	}

	fieldErrs, ok := validation.As(err)
	if !ok {
		return err
	}
	for field, messages := range fieldErrs {
		if _, seen := errs[field]; !seen {
			errs[field] = messages
		}
	}
	return nil
}

// saveError turns write failures that describe bad input into field errors.
// A duplicate key is reported on uniqueField when one is given.
func saveError(err error, uniqueField, uniqueMessage string) error {
	if fieldErrs, ok := validation.As(err); ok {
		return fieldErrs
	}
	if uniqueField != "" && errors.Is(err, gorm.ErrDuplicatedKey) {
		return validation.Errors{uniqueField: {uniqueMessage}}
	}
	return err
}

// existsBy adapts a FindByID lookup to resolveRef.
func existsBy[T any](find func(id uint64) (T, error)) func(uint64) error {
	return func(id uint64) error {
		_, err := find(id)
		return err
	}
}
