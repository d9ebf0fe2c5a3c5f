package services

import "errors"

// ErrDataNotFound is returned when no candidate data file exists. Handlers
// map it to the 404 data-not-found problem document.
var ErrDataNotFound = errors.New("data file not found")
