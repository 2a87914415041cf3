package vocab

import "errors"

var (
	// ErrNotFound is returned when an entry does not exist.
	ErrNotFound = errors.New("vocabulary entry not found")

	// ErrDuplicate is returned when a capture folds to an existing headword.
	ErrDuplicate = errors.New("vocabulary entry already captured")

	// ErrBlankWord is returned when a capture has no word, or only
	// punctuation.
	ErrBlankWord = errors.New("word is blank")

	// ErrConflict is returned when another review of the same entry was
	// recorded first.
	ErrConflict = errors.New("entry was reviewed concurrently")

	// ErrDuplicateSubmission is returned when a batch names an entry twice.
	ErrDuplicateSubmission = errors.New("entry submitted more than once")
)
