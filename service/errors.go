package service

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidRequest     = errors.New("invalid request")
	ErrUnknownProduct     = errors.New("unknown product")
	ErrInvalidPayTerm     = errors.New("pay term not offered by product")
	ErrInsufficientBudget = errors.New("budget below product minimum face amount")
	ErrNonConvergence     = errors.New("irr solver did not converge")
)

// InsufficientBudgetError carries the face amount the budget could buy and
// the product minimum it fell short of.
type InsufficientBudgetError struct {
	Product    string
	FaceAmount int64
	MinFace    int64
}

func (e *InsufficientBudgetError) Error() string {
	return fmt.Sprintf("%s: budget buys face %d, product minimum is %d",
		e.Product, e.FaceAmount, e.MinFace)
}

func (e *InsufficientBudgetError) Unwrap() error {
	return ErrInsufficientBudget
}

func invalidf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInvalidRequest, fmt.Sprintf(format, args...))
}
