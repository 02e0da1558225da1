package books

import "errors"

var (
	// ErrBookNotFound is returned when no book exists with the requested id.
	ErrBookNotFound = errors.New("book not found")
	// ErrMultipleAuthors is returned when an update targets a book linked to
	// more than one author, since it is unclear which author to change.
	ErrMultipleAuthors = errors.New("book has more than one author")
	// ErrMultipleReviews is returned when an update targets a book with more
	// than one review.
	ErrMultipleReviews = errors.New("book has more than one review")
)
