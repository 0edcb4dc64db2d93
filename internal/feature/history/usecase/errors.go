// Package usecase implements the business logic for the history feature.
package usecase

import "errors"

var (
	// ErrMissingInput is returned when a required field or the image itself is absent.
	ErrMissingInput = errors.New("missing data")

	// ErrInvalidFileType is returned when the uploaded file extension is not allowed.
	ErrInvalidFileType = errors.New("invalid file type")

	// ErrImageTooLarge is returned when the uploaded image exceeds MaxImageSize.
	ErrImageTooLarge = errors.New("image size exceeds maximum")

	// ErrHistoryNotFound is returned when no history record matches the given ID.
	ErrHistoryNotFound = errors.New("history not found")
)
