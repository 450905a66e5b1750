package registry

import (
	"errors"
	"fmt"
	"strings"
)

// Errors a failed registry invocation is classified into by ParseFault.
var (
	ErrNotFound           = errors.New("asset not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidArgument    = errors.New("invalid argument")
	ErrInvariantViolation = errors.New("invariant violation")
)

// Exception messages thrown by the contract, must be kept in sync with it.
const (
	faultNotFound       = "asset not found"
	faultWitness        = "owner witness check failed"
	faultInvalid        = "invalid argument"
	faultNotTransferred = "asset is not transferable"
)

var faults = []struct {
	msg string
	err error
}{
	{faultNotFound, ErrNotFound},
	{faultWitness, ErrUnauthorized},
	{faultInvalid, ErrInvalidArgument},
	{faultNotTransferred, ErrInvariantViolation},
}

// ParseFault maps an error returned by the invoker or actor (it carries the
// VM exception text of a FAULTed script) to one of the package errors. The
// original error stays in the chain, so both errors.Is checks succeed.
// Unrecognized errors are returned as is, nil is returned for nil.
func ParseFault(err error) error {
	if err == nil {
		return nil
	}
	msg := err.Error()
	for _, f := range faults {
		if strings.Contains(msg, f.msg) {
			return fmt.Errorf("%w: %w", f.err, err)
		}
	}
	return err
}
