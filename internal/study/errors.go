package study

import (
	"github.com/example/sakura/internal/transfer"
	"github.com/pkg/errors"
)

// Errors returned by the service. Test for them with errors.Is.
var (
	ErrNotFound          = errors.New("not found")
	ErrDuplicateUsername = errors.New("this user id is already taken, please choose another")
	ErrInvalidCredential = errors.New("incorrect password")
	ErrInvalidFormat     = transfer.ErrInvalidFormat
)
