package common

import "github.com/nspcc-dev/neo-go/pkg/interop/runtime"

var (
	// ErrOwnerWitnessFailed appears when the method must be called
	// by the owner of an asset but was not.
	ErrOwnerWitnessFailed = "owner witness check failed"
	// ErrCommitteeWitnessFailed appears when the method must be
	// called by the committee but was not.
	ErrCommitteeWitnessFailed = "not witnessed by committee"
)

// CheckOwnerWitness checks witness of the passed caller.
// It panics with ErrOwnerWitnessFailed message on fail.
func CheckOwnerWitness(caller []byte) {
	if !runtime.CheckWitness(caller) {
		panic(ErrOwnerWitnessFailed)
	}
}
