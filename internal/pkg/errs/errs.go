package errs

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

var (
	ErrIllegalTransition = errors.New("illegal transition")
	ErrInsufficientStock = errors.New("insufficient stock")
	ErrInvalidState      = errors.New("invalid state")
	ErrConflict          = errors.New("conflict")
	ErrNotFound          = errors.New("not found")
	ErrValidation        = errors.New("validation failed")
)

// StateError отказ в переходе с деталями для вызывающей стороны.
// Kind один из ErrIllegalTransition, ErrInvalidState, ErrConflict.
type StateError struct {
	Kind      error
	Entity    string
	EntityID  int64
	Current   string
	Attempted string
	Command   string
	Detail    string
}

func (e *StateError) Error() string {
	msg := fmt.Sprintf("%s: %s %d: %s from %q to %q", e.Kind, e.Entity, e.EntityID, e.Command, e.Current, e.Attempted)
	if e.Detail != "" {
		msg += ": " + e.Detail
	}
	return msg
}

func (e *StateError) Unwrap() error {
	return e.Kind
}

func IllegalTransition(entity string, id int64, current, attempted, command string) *StateError {
	return &StateError{
		Kind:      ErrIllegalTransition,
		Entity:    entity,
		EntityID:  id,
		Current:   current,
		Attempted: attempted,
		Command:   command,
	}
}

func InvalidState(entity string, id int64, current, attempted, command string) *StateError {
	return &StateError{
		Kind:      ErrInvalidState,
		Entity:    entity,
		EntityID:  id,
		Current:   current,
		Attempted: attempted,
		Command:   command,
	}
}

func Conflict(entity string, id int64, current, attempted, command, detail string) *StateError {
	return &StateError{
		Kind:      ErrConflict,
		Entity:    entity,
		EntityID:  id,
		Current:   current,
		Attempted: attempted,
		Command:   command,
		Detail:    detail,
	}
}

// StockError резерв превысил доступный остаток.
type StockError struct {
	ProductID   int64
	WarehouseID int64
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *StockError) Error() string {
	return fmt.Sprintf("%s: product %d at warehouse %d: requested %s, available %s",
		ErrInsufficientStock, e.ProductID, e.WarehouseID, e.Requested, e.Available)
}

func (e *StockError) Unwrap() error {
	return ErrInsufficientStock
}

func InsufficientStock(productID, warehouseID int64, requested, available decimal.Decimal) *StockError {
	return &StockError{
		ProductID:   productID,
		WarehouseID: warehouseID,
		Requested:   requested,
		Available:   available,
	}
}

// NotFoundError неизвестный идентификатор сущности.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s %s", e.Entity, e.ID, ErrNotFound)
}

func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

func NotFound(entity string, id any) *NotFoundError {
	return &NotFoundError{
		Entity: entity,
		ID:     fmt.Sprint(id),
	}
}

// Validation оборачивает описание некорректного ввода в ErrValidation.
func Validation(msg string) error {
	return fmt.Errorf("%w: %s", ErrValidation, msg)
}
