package dump

import (
	"encoding/base64"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

const (
	// word separator used in dump file naming
	sep = "-"
	// suffix of file with contracts' states
	statesFileSuffix = "contracts.json"
	// suffix of file with storage items
	storageFileSuffix = "storage.csv"
)

// binary values encoding inside the files.
var _encoding = base64.StdEncoding

// contractRecord is a JSON-encoded information about the dumped contract.
type contractRecord struct {
	Name  string         `json:"name"`
	State state.Contract `json:"state"`
}

// dumpFiles groups files with contracts' states and storages.
type dumpFiles struct {
	contracts, storage io.ReadWriteCloser
}

func (x *dumpFiles) close() {
	_ = x.storage.Close()
	_ = x.contracts.Close()
}

func dumpFilePath(dir string, id ID, suffix string) string {
	return filepath.Join(dir, id.String()+sep+suffix)
}

// openForRead opens existing files of the dump.
func (x *dumpFiles) openForRead(dir string, id ID) error {
	var err error

	x.storage, err = os.Open(dumpFilePath(dir, id, storageFileSuffix))
	if err != nil {
		return fmt.Errorf("open file with storage items: %w", err)
	}

	x.contracts, err = os.Open(dumpFilePath(dir, id, statesFileSuffix))
	if err != nil {
		_ = x.storage.Close()
		return fmt.Errorf("open file with contract states: %w", err)
	}

	return nil
}

// openForWrite creates files of the new dump, they must not exist.
func (x *dumpFiles) openForWrite(dir string, id ID) error {
	var err error

	x.storage, err = createNew(dumpFilePath(dir, id, storageFileSuffix))
	if err != nil {
		return fmt.Errorf("create file with storage items: %w", err)
	}

	x.contracts, err = createNew(dumpFilePath(dir, id, statesFileSuffix))
	if err != nil {
		_ = x.storage.Close()
		return fmt.Errorf("create file with contract states: %w", err)
	}

	return nil
}

func createNew(p string) (*os.File, error) {
	return os.OpenFile(p, os.O_CREATE|os.O_EXCL|os.O_WRONLY, 0600)
}
