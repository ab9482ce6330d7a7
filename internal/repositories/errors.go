package repositories

import "errors"

var ErrUnknownDocumentColumn = errors.New("unknown document column")
