package trash

import "errors"

var ErrNotFound = errors.New("trash entry not found")
