package dump

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"slices"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
)

// RegistryName is the name the Asset Registry contract is dumped under.
const RegistryName = "registry"

// Creator dumps states of the Neo smart contracts, primarily the Asset
// Registry one. Output file format:
//
//	'<label>-<block>-contracts.json': JSON array of contracts' states
//	'<label>-<block>-storage.csv': CSV of contracts' storages
//
// Storage CSV records are 'name,key,value' where name stands for contract name
// and binary key-value are base64-encoded. Records of each contract go in
// ascending order of keys, so dumps of the same state are byte-identical.
//
// Use IterateDumps to access existing dumps.
type Creator struct {
	files dumpFiles

	contracts []contractRecord
	storage   map[string][]KeyValue
	// contract name + key
	keys map[string]struct{}
}

// NewCreator returns Creator which dumps contracts into given directory. The
// dump is identified by specified ID. Resulting Creator should be closed when
// finished working with it.
//
// NewCreator fails if dump with provided ID already exists.
func NewCreator(dir string, id ID) (*Creator, error) {
	res := &Creator{
		storage: make(map[string][]KeyValue),
		keys:    make(map[string]struct{}),
	}

	err := res.files.openForWrite(dir, id)
	if err != nil {
		return nil, err
	}

	return res, nil
}

// AddContract adds given state of the named Neo contract to the resulting dump
// and returns StorageWriter for the contract storage. Nothing is written until
// Flush.
func (x *Creator) AddContract(name string, st state.Contract) *StorageWriter {
	x.contracts = append(x.contracts, contractRecord{
		Name:  name,
		State: st,
	})

	return &StorageWriter{
		name:    name,
		creator: x,
	}
}

// AddRegistry adds the Asset Registry contract with all its storage items
// under RegistryName. It fails if the registry has already been added.
func (x *Creator) AddRegistry(st state.Contract, items []KeyValue) error {
	for i := range x.contracts {
		if x.contracts[i].Name == RegistryName {
			return fmt.Errorf("contract '%s' is already added", RegistryName)
		}
	}

	w := x.AddContract(RegistryName, st)
	for i := range items {
		err := w.Write(items[i].Key, items[i].Value)
		if err != nil {
			return err
		}
	}

	return nil
}

// Flush writes accumulated dump to the file system.
func (x *Creator) Flush() error {
	jEnc := json.NewEncoder(x.files.contracts)
	jEnc.SetIndent("", " ")

	err := jEnc.Encode(x.contracts)
	if err != nil {
		return fmt.Errorf("encode contract states to JSON: %w", err)
	}

	w := csv.NewWriter(x.files.storage)

	for i := range x.contracts {
		name := x.contracts[i].Name
		items := x.storage[name]

		slices.SortFunc(items, func(a, b KeyValue) int { return bytes.Compare(a.Key, b.Key) })

		for j := range items {
			err = w.Write([]string{
				name,
				_encoding.EncodeToString(items[j].Key),
				_encoding.EncodeToString(items[j].Value),
			})
			if err != nil {
				return fmt.Errorf("write storage item of contract '%s' as CSV data: %w", name, err)
			}
		}
	}

	w.Flush()

	err = w.Error()
	if err != nil {
		return fmt.Errorf("flush CSV data: %w", err)
	}

	return nil
}

// Close releases underlying resources of the Creator and makes it unusable.
func (x *Creator) Close() {
	x.files.close()
}

// StorageWriter collects storage items of the superior contract.
type StorageWriter struct {
	name    string
	creator *Creator
}

// Write adds given binary key-value to the contract dump as storage item.
// Repeated key is an error.
func (x *StorageWriter) Write(key, value []byte) error {
	k := x.name + "," + string(key)
	if _, ok := x.creator.keys[k]; ok {
		return fmt.Errorf("duplicated storage key %x of contract '%s'", key, x.name)
	}
	x.creator.keys[k] = struct{}{}

	x.creator.storage[x.name] = append(x.creator.storage[x.name], KeyValue{
		Key:   bytes.Clone(key),
		Value: bytes.Clone(value),
	})

	return nil
}
