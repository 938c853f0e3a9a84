package service

import "errors"

var (
	ErrValidation  = errors.New("validation")     // 400
	ErrNotFound    = errors.New("not found")      // 404
	ErrConflict    = errors.New("conflict")       // 409
	ErrEmptyBasket = errors.New("basket is empty or missing") // 400 at checkout
)
