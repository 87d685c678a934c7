package engagement

import "errors"

var (
	ErrEventNotFound    = errors.New("event not found")
	ErrFavoriteNotFound = errors.New("favorite not found")
	ErrReportNotFound   = errors.New("report not found")

	ErrAlreadyFavorite = errors.New("event is already in favorites")
	ErrAlreadyRated    = errors.New("event is already rated by this user")
	ErrInvalidScore    = errors.New("score must be between 1 and 5")
)
