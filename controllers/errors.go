package controllers

import "errors"

var (
	errInvalidCredentials = errors.New("invalid credentials")
	errInvalidLimit       = errors.New("limit must be a positive integer")
	errEmailTaken         = errors.New("email already registered")
)
