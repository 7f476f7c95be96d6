package deviation

import "errors"

var (
	ErrUnknownFamily = errors.New("deviation: unknown airfoil family")
	ErrUnknownMethod = errors.New("deviation: unknown metal angle method")
)
