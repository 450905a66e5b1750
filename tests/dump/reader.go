package dump

import (
	"encoding/csv"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"path/filepath"
	"strings"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// IterateDumps iterates over all dumps created by the Creator in the
// specified directory, and passes ID and Reader of each dump into f. Missing
// directory is treated as empty. Reader is valid only inside f.
func IterateDumps(dir string, f func(ID, *Reader) error) error {
	var (
		id    ID
		r     Reader
		files dumpFiles
	)

	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, e error) error {
		if e != nil {
			if errors.Is(e, fs.ErrNotExist) {
				return nil
			}
			return e
		}

		if d.IsDir() {
			if path != dir {
				return filepath.SkipDir
			}
			return nil
		}

		name := d.Name()
		if !strings.HasSuffix(name, sep+statesFileSuffix) {
			return nil
		}

		err := id.decodeString(name)
		if err != nil {
			return fmt.Errorf("decode dump ID from file name '%s': %w", name, err)
		}

		err = files.openForRead(dir, id)
		if err != nil {
			return fmt.Errorf("open dump files ('%s'): %w", name, err)
		}

		err = r.read(files.contracts, files.storage)
		files.close()
		if err != nil {
			return fmt.Errorf("read dump ('%s'): %w", name, err)
		}

		return f(id, &r)
	})
}

// KeyValue is a single storage item of the dumped contract.
type KeyValue struct {
	Key, Value []byte
}

// Reader reads contracts collected in the superior dump.
type Reader struct {
	contracts []contractRecord
	storage   map[string][]KeyValue
}

func (x *Reader) read(rContracts, rStorage io.Reader) error {
	x.contracts = x.contracts[:0]

	err := json.NewDecoder(rContracts).Decode(&x.contracts)
	if err != nil {
		return fmt.Errorf("decode contract states from JSON: %w", err)
	}

	r := csv.NewReader(rStorage)
	r.FieldsPerRecord = 3
	r.ReuseRecord = true

	if x.storage != nil {
		clear(x.storage)
	} else {
		x.storage = make(map[string][]KeyValue)
	}

	for {
		rec, err := r.Read()
		if err != nil {
			if errors.Is(err, io.EOF) {
				return nil
			}
			return fmt.Errorf("read next CSV record: %w", err)
		}

		var kv KeyValue

		// out-of-range safety guaranteed by csv settings
		kv.Key, err = _encoding.DecodeString(rec[1])
		if err != nil {
			return fmt.Errorf("decode storage item key: %w", err)
		}

		kv.Value, err = _encoding.DecodeString(rec[2])
		if err != nil {
			return fmt.Errorf("decode storage item value: %w", err)
		}

		x.storage[rec[0]] = append(x.storage[rec[0]], kv)
	}
}

// IterateContractStates iterates over all contracts from the superior dump and
// passes their states into f.
func (x *Reader) IterateContractStates(f func(name string, _state state.Contract)) {
	for i := range x.contracts {
		f(x.contracts[i].Name, x.contracts[i].State)
	}
}

// ContractState returns state of the named contract from the superior dump.
func (x *Reader) ContractState(name string) (state.Contract, bool) {
	for i := range x.contracts {
		if x.contracts[i].Name == name {
			return x.contracts[i].State, true
		}
	}
	return state.Contract{}, false
}

// ContractStorage returns storage items of the named contract in the order
// they were dumped.
func (x *Reader) ContractStorage(name string) []KeyValue {
	return x.storage[name]
}
