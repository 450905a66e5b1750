package dump

import (
	"fmt"
	"strconv"
	"strings"
)

// ID is a unique identifier of the dump.
type ID struct {
	// Label of the dump source (e.g. testnet, mainnet).
	Label string
	// Blockchain height at which the state was pulled.
	Block uint32
}

// String returns hyphen-separated ID fields.
func (x ID) String() string {
	return x.Label + sep + strconv.FormatUint(uint64(x.Block), 10)
}

// decodeString decodes ID fields from the file name prefixed with the
// hyphen-separated ID.
func (x *ID) decodeString(s string) error {
	ss := strings.Split(s, sep)
	if len(ss) < 2 {
		return fmt.Errorf("expected '%s'-separated string with at least 2 items", sep)
	}

	if ss[0] == "" {
		return fmt.Errorf("empty label")
	}

	n, err := strconv.ParseUint(ss[1], 10, 32)
	if err != nil {
		return fmt.Errorf("decode block number from '%s': %w", ss[1], err)
	}

	x.Label = ss[0]
	x.Block = uint32(n)

	return nil
}
