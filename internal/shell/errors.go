package shell

import "errors"

var (
	// ErrCommandNotFound is returned for an unknown or blank command name.
	ErrCommandNotFound = errors.New("command not found")

	// ErrIDRequired is returned by update when the expression has no id.
	ErrIDRequired = errors.New("an id is required")

	// ErrNameRequired is returned by update when the expression has no name.
	ErrNameRequired = errors.New("a name is required")

	// ErrEmptyFilter is returned by delete when the expression selects everything.
	ErrEmptyFilter = errors.New("refusing to delete without a filter")

	// ErrEmptyName is returned by insert for a blank name in the list.
	ErrEmptyName = errors.New("name must not be empty")

	// ErrNameTooLong is returned by insert for a name over the length limit.
	ErrNameTooLong = errors.New("name is too long")
)
