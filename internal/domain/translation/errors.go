package translation

import "errors"

var (
	ErrTranslationNotFound = errors.New("translation not found")
	ErrKeyRequired         = errors.New("translation key is required")
	ErrFrenchRequired      = errors.New("french text is required")
	ErrDuplicateKey        = errors.New("translation key already exists")
	ErrInternal            = errors.New("internal error")
)
