package xmlclean

import "fmt"

// ParseError reports that input text is not well-formed XML. It is the
// only error Clean returns: when it is raised, no mutation has happened
// and no content is produced.
type ParseError struct {
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("malformed document: %v", e.Err)
}

func (e *ParseError) Unwrap() error {
	return e.Err
}
