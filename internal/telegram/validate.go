package telegram

import (
	"errors"
	"fmt"
	"strconv"
)

// validateMessageCount parses a user-supplied count and enforces the
// 1..max range. The returned error text is user-facing; the pipeline never
// sees an invalid count.
func validateMessageCount(input string, max int) (int, error) {
	count, err := strconv.Atoi(input)
	if err != nil {
		return 0, errors.New(invalidInputError)
	}
	if count <= 0 {
		return 0, errors.New(positiveNumberError)
	}
	if count > max {
		return 0, fmt.Errorf(overLimitError, max)
	}
	return count, nil
}
