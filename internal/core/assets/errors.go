package assets

import "errors"

var (
	// ErrUnsupportedFormat is returned when an upload is not a decodable jpeg, png, gif or webp image.
	ErrUnsupportedFormat = errors.New("unsupported image format")

	// ErrImageTooLarge is returned when an upload declares more pixels than the store accepts.
	ErrImageTooLarge = errors.New("image dimensions are too large")

	// ErrEmptyUpload is returned when the uploaded file has no content.
	ErrEmptyUpload = errors.New("uploaded file is empty")
)
