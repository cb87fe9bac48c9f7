package storage

import "errors"

var ErrNotFound = errors.New("item not found in storage")
var ErrItemWithIDAlreadyExists = errors.New("item with this id already exists")

// ErrConflict is returned when an optimistic write lost against a concurrent writer
// and the retry budget ran out. The whole logical operation may be retried.
var ErrConflict = errors.New("concurrent modification, retry the operation")
