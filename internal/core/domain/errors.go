package domain

import "errors"

var ErrUnauthenticated = errors.New("could not validate credentials")
var ErrInvalidCredentials = errors.New("incorrect email or password")
var ErrForbidden = errors.New("admin privileges required")
var ErrUserNotFound = errors.New("user not found")
var ErrEmailTaken = errors.New("email already registered")
var ErrTooManyAttempts = errors.New("too many login attempts")

var ErrCompanyNotFound = errors.New("company not found")
var ErrCompanyExists = errors.New("company already exists")
var ErrCompanyNotApproved = errors.New("company not approved")
var ErrRequestNotFound = errors.New("company request not found")

var ErrInvalidReference = errors.New("invalid company id")
var ErrInvalidRating = errors.New("rating must be 1-5")
var ErrNoCompanyAssigned = errors.New("user has no company assigned")
var ErrInvalidInput = errors.New("invalid input")
