package board

import "errors"

var (
	// ErrInsufficientOptions is returned when fewer options than non-free
	// cells are supplied to Regenerate.
	ErrInsufficientOptions = errors.New("insufficient options")

	// ErrInvalidCoordinate is returned for a row or column outside the grid.
	ErrInvalidCoordinate = errors.New("invalid coordinate")

	// ErrMalformedSave is returned when a save stream is truncated, carries
	// trailing data or holds undecodable text.
	ErrMalformedSave = errors.New("malformed save")

	// ErrTextTooLong is returned when a cell text does not fit a save record.
	ErrTextTooLong = errors.New("cell text too long")
)
