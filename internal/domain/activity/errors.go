package activity

import "errors"

// ErrInvalidInput is returned for a nil event or one without a type or summary.
var ErrInvalidInput = errors.New("invalid journal event")
