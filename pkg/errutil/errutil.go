// Package errutil contains common error utilities.
package errutil

import "strings"

// Join joins all non-nil arguments into one error. It returns nil if all
// arguments are nil, and the sole error if exactly one argument is non-nil.
func Join(errs ...error) error {
	var nonNil []error
	for _, err := range errs {
		if err != nil {
			nonNil = append(nonNil, err)
		}
	}
	switch len(nonNil) {
	case 0:
		return nil
	case 1:
		return nonNil[0]
	default:
		return multiError{nonNil}
	}
}

type multiError struct{ errors []error }

func (me multiError) Error() string {
	var sb strings.Builder
	sb.WriteString("multiple errors: ")
	for i, err := range me.errors {
		if i > 0 {
			sb.WriteString("; ")
		}
		sb.WriteString(err.Error())
	}
	return sb.String()
}
