package main

import (
	"context"
	"encoding/hex"
	"errors"
	"fmt"
	"math/big"
	"strings"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/urfave/cli"
)

// Content hash encodings accepted on the command line.
const (
	encodingHex    = "hex"
	encodingBase58 = "base58"
)

var (
	errMissingEndpoint = errors.New("missing Neo RPC endpoint")
	errMissingContract = errors.New("missing registry contract address")
)

func getMetadata(c *cli.Context) *metadata {
	return c.App.Metadata["config"].(*metadata)
}

// newClient dials the configured RPC endpoint. The client must be closed by
// the caller.
func (m *metadata) newClient() (*rpcclient.Client, error) {
	if m.endpoint == "" {
		return nil, errMissingEndpoint
	}

	m.log.Debug("dialing Neo RPC server...")

	c, err := rpcclient.New(context.Background(), m.endpoint, rpcclient.Options{
		DialTimeout:    m.timeout,
		RequestTimeout: m.timeout,
	})
	if err != nil {
		return nil, fmt.Errorf("RPC client dial: %w", err)
	}

	err = c.Init()
	if err != nil {
		c.Close()
		return nil, fmt.Errorf("RPC client init: %w", err)
	}

	return c, nil
}

func (m *metadata) contractAddress() (util.Uint160, error) {
	if m.contract == "" {
		return util.Uint160{}, errMissingContract
	}

	h, err := parseAccount(m.contract)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("registry contract: %w", err)
	}
	return h, nil
}

// newReader returns read-only registry client. The returned RPC client must
// be closed by the caller.
func (m *metadata) newReader() (*registry.ContractReader, *rpcclient.Client, error) {
	h, err := m.contractAddress()
	if err != nil {
		return nil, nil, err
	}

	c, err := m.newClient()
	if err != nil {
		return nil, nil, err
	}

	return registry.NewReader(invoker.New(c, nil), h), c, nil
}

// parseAccount decodes either Neo address or LE hex script hash.
func parseAccount(s string) (util.Uint160, error) {
	h, err := address.StringToUint160(s)
	if err == nil {
		return h, nil
	}

	h, err = util.Uint160DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint160{}, fmt.Errorf("invalid account '%s': neither address nor script hash", s)
	}
	return h, nil
}

func parseAssetID(s string) (*big.Int, error) {
	id, ok := new(big.Int).SetString(s, 10)
	if !ok || id.Sign() < 0 {
		return nil, fmt.Errorf("invalid asset ID '%s'", s)
	}
	return id, nil
}

func parseTxHash(s string) (util.Uint256, error) {
	h, err := util.Uint256DecodeStringLE(strings.TrimPrefix(s, "0x"))
	if err != nil {
		return util.Uint256{}, fmt.Errorf("invalid transaction hash '%s': %w", s, err)
	}
	return h, nil
}

// decodeContentHash decodes the hash given in the named encoding. Empty
// string results in empty hash.
func decodeContentHash(s, encoding string) ([]byte, error) {
	if s == "" {
		return []byte{}, nil
	}

	var (
		b   []byte
		err error
	)

	switch encoding {
	case encodingHex, "":
		b, err = hex.DecodeString(strings.TrimPrefix(s, "0x"))
	case encodingBase58:
		b, err = base58.Decode(s)
	default:
		return nil, fmt.Errorf("unsupported hash encoding '%s'", encoding)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s content hash: %w", encoding, err)
	}
	return b, nil
}

// args returns exactly n positional arguments of the command.
func args(c *cli.Context, n int) ([]string, error) {
	if c.NArg() != n {
		return nil, fmt.Errorf("expected %d argument(s), got %d (usage: %s %s)",
			n, c.NArg(), c.Command.Name, c.Command.ArgsUsage)
	}
	return c.Args(), nil
}
