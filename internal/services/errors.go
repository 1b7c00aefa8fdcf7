package services

import "errors"

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrNotVerified        = errors.New("account not verified")
	ErrAlreadyVerified    = errors.New("account already verified")
	ErrTokenMismatch      = errors.New("verification token mismatch")
	ErrTokenExpired       = errors.New("verification token expired")
	ErrEmailImmutable     = errors.New("email cannot be changed")
	ErrNoFields           = errors.New("no updatable fields provided")
	ErrPictureExists      = errors.New("profile picture already exists")
	ErrPictureNotFound    = errors.New("profile picture not found")
	ErrStorage            = errors.New("blob storage failure")
)
