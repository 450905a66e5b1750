package main

import (
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/nspcc-dev/asset-registry-contract/tests/dump"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func main() {
	neoRPCEndpoint := flag.String("rpc", "", "Network address of the Neo RPC server")
	chainLabel := flag.String("label", "", "Label of the blockchain environment (e.g. 'testnet')")
	contractAddress := flag.String("contract", "", "Address of the Asset Registry contract (LE hex)")
	rootDir := flag.String("dir", "testdata", "Directory to save dumps to")
	check := flag.Bool("check", false, "Check consistency of the dumped registry data")

	flag.Parse()

	switch {
	case *neoRPCEndpoint == "":
		log.Fatal("missing Neo RPC endpoint")
	case *chainLabel == "":
		log.Fatal("missing blockchain label")
	case *contractAddress == "":
		log.Fatal("missing registry contract address")
	}

	contract, err := util.Uint160DecodeStringLE(*contractAddress)
	if err != nil {
		log.Fatal(fmt.Errorf("decode registry contract address: %w", err))
	}

	err = os.MkdirAll(*rootDir, 0700)
	if err != nil {
		log.Fatal(fmt.Errorf("create root dir: %w", err))
	}

	id, err := _dump(*neoRPCEndpoint, *rootDir, *chainLabel, contract)
	if err != nil {
		log.Fatal(err)
	}

	log.Printf("Asset Registry contract is successfully dumped to '%s/' as '%s'\n", *rootDir, id)

	if !*check {
		return
	}

	err = dump.IterateDumps(*rootDir, func(dumpID dump.ID, r *dump.Reader) error {
		if dumpID != id {
			return nil
		}

		s, err := dump.ReadRegistry(r, dump.RegistryName)
		if err != nil {
			return err
		}

		log.Printf("Checking %d assets...\n", len(s.Assets))

		return s.Check()
	})
	if err != nil {
		log.Fatal(fmt.Errorf("registry data check failed: %w", err))
	}

	log.Println("Registry data is consistent")
}

func _dump(endpoint, rootDir, label string, contract util.Uint160) (dump.ID, error) {
	r, err := newRemoteRegistry(endpoint, contract)
	if err != nil {
		return dump.ID{}, fmt.Errorf("init remote registry: %w", err)
	}

	defer r.close()

	id := dump.ID{
		Label: label,
		Block: r.height,
	}

	ctr, err := r.rpc.GetContractStateByHash(contract)
	if err != nil {
		return id, fmt.Errorf("get state of the registry contract by hash '%s': %w", contract.StringLE(), err)
	}

	version, err := r.version()
	if err != nil {
		return id, err
	}

	log.Printf("Processing contract '%s' (version %s) at block #%d...\n", ctr.Manifest.Name, version, r.height)

	items, err := r.storage()
	if err != nil {
		return id, err
	}

	d, err := dump.NewCreator(rootDir, id)
	if err != nil {
		return id, fmt.Errorf("init local dumper: %w", err)
	}

	defer d.Close()

	err = d.AddRegistry(*ctr, items)
	if err != nil {
		return id, err
	}

	err = d.Flush()
	if err != nil {
		return id, fmt.Errorf("flush dump: %w", err)
	}

	return id, nil
}
