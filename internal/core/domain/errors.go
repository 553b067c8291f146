package domain

import "errors"

var (
	ErrCompanyNotFound    = errors.New("company not found")
	ErrWatchlistNotFound  = errors.New("watchlist not found")
	ErrWatchlistNameTaken = errors.New("watchlist name already taken")

	ErrUserNotFound       = errors.New("user not found")
	ErrUserExists         = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrInvalidToken       = errors.New("invalid or expired token")

	ErrForbidden  = errors.New("access forbidden")
	ErrValidation = errors.New("validation failed")
)
