// Package usecase implements the business logic for the prediction feature.
package usecase

import "errors"

var (
	// ErrMissingInput is returned when no image data is supplied.
	ErrMissingInput = errors.New("no image supplied")

	// ErrImageTooLarge is returned when the uploaded image exceeds MaxImageSize.
	ErrImageTooLarge = errors.New("image size exceeds maximum")

	// ErrImageDecode is returned when the supplied bytes are not a decodable image.
	ErrImageDecode = errors.New("image could not be decoded")

	// ErrInference is returned when the model rejects the input tensor or inference fails.
	ErrInference = errors.New("model inference failed")
)
