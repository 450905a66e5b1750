package registry_test

import (
	"context"
	"fmt"
	"log"

	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// List all assets owned by a particular account together with their content
// hashes.
func ExampleContractReader_GetOwnedAssets() {
	const rpcEndpoint = "http://localhost:30333"

	c, err := rpcclient.New(context.Background(), rpcEndpoint, rpcclient.Options{})
	if err != nil {
		log.Fatal(err)
	}

	err = c.Init()
	if err != nil {
		log.Fatal(err)
	}

	registryHash, err := util.Uint160DecodeStringLE("5f1bfb1b4f4e3f2b6f1c3b5a8a6d3c1e0b1a2c3d")
	if err != nil {
		log.Fatal(err)
	}
	owner, err := util.Uint160DecodeStringLE("0c3c37b1ed9e5e5a1f5c9a4e2b4e9d1d2a3b4c5d")
	if err != nil {
		log.Fatal(err)
	}

	reg := registry.NewReader(invoker.New(c, nil), registryHash)

	ids, err := reg.GetOwnedAssets(owner)
	if err != nil {
		log.Fatal(err)
	}

	for _, id := range ids {
		d, err := reg.GetAssetDetails(id)
		if err != nil {
			log.Fatal(registry.ParseFault(err))
		}

		fmt.Printf("%s: %s %x\n", id, d.Name, d.ContentHash)
	}
}
