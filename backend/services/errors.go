package services

import "errors"

// Sentinel errors surfaced by the services. Controllers map these onto HTTP
// status codes; the services themselves stay transport-agnostic.
var (
	ErrCourseNotFound       = errors.New("course not found")
	ErrProgressNotFound     = errors.New("course progress not found for this user")
	ErrDuplicateTransaction = errors.New("transaction already processed")
	ErrAlreadyEnrolled      = errors.New("user is already enrolled in this course")
	ErrInvalidProgress      = errors.New("invalid progress payload")
	ErrInvalidPurchase      = errors.New("invalid purchase payload")
	ErrProgressConflict     = errors.New("progress was modified concurrently")
)
