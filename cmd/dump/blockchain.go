package main

import (
	"context"
	"fmt"
	"math/big"
	"time"

	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/asset-registry-contract/tests/dump"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

// remoteRegistry reads the Asset Registry contract deployed in the remote Neo
// blockchain at the fixed height.
type remoteRegistry struct {
	rpc      *rpcclient.Client
	contract util.Uint160

	// penult block, its state root is surely ready
	height    uint32
	stateRoot util.Uint256
}

// newRemoteRegistry dials Neo RPC server and fixes the state the registry is
// read at. Connection and all requests are done within 15s timeout.
func newRemoteRegistry(endpoint string, contract util.Uint160) (*remoteRegistry, error) {
	c, err := rpcclient.New(context.Background(), endpoint, rpcclient.Options{
		DialTimeout:    15 * time.Second,
		RequestTimeout: 15 * time.Second,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	res := &remoteRegistry{rpc: c, contract: contract}

	err = res.fixState()
	if err != nil {
		c.Close()
		return nil, err
	}

	return res, nil
}

func (x *remoteRegistry) fixState() error {
	n, err := x.rpc.GetBlockCount()
	if err != nil {
		return fmt.Errorf("get number of the latest block: %w", err)
	}
	if n < 2 {
		return fmt.Errorf("too few blocks in the chain: %d", n)
	}

	x.height = n - 2

	root, err := x.rpc.GetStateRootByHeight(x.height)
	if err != nil {
		return fmt.Errorf("get state root at block #%d: %w", x.height, err)
	}

	x.stateRoot = root.Root

	return nil
}

func (x *remoteRegistry) close() {
	x.rpc.Close()
}

// version requests current version of the registry contract.
func (x *remoteRegistry) version() (*big.Int, error) {
	v, err := registry.NewReader(invoker.New(x.rpc, nil), x.contract).Version()
	if err != nil {
		return nil, fmt.Errorf("get registry contract version: %w", registry.ParseFault(err))
	}
	return v, nil
}

// storage returns all storage items of the registry contract at the fixed
// state root. Items are requested page by page.
func (x *remoteRegistry) storage() ([]dump.KeyValue, error) {
	var (
		res   []dump.KeyValue
		start []byte
	)

	for {
		page, err := x.rpc.FindStates(x.stateRoot, x.contract, nil, start, nil)
		if err != nil {
			return nil, fmt.Errorf("find registry storage items at state root '%s': %w", x.stateRoot, err)
		}

		for i := range page.Results {
			res = append(res, dump.KeyValue{Key: page.Results[i].Key, Value: page.Results[i].Value})
		}

		if !page.Truncated || len(page.Results) == 0 {
			return res, nil
		}

		start = page.Results[len(page.Results)-1].Key
	}
}
