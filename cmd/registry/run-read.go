package main

import (
	"fmt"
	"math/big"

	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/urfave/cli"
)

func runTotal(c *cli.Context) error {
	m := getMetadata(c)

	reader, client, err := m.newReader()
	if err != nil {
		return err
	}
	defer client.Close()

	total, err := reader.GetTotalAssets()
	if err != nil {
		return fmt.Errorf("get total assets: %w", registry.ParseFault(err))
	}

	fmt.Fprintln(m.w, total)
	return nil
}

func runAsset(c *cli.Context) error {
	m := getMetadata(c)

	a, err := args(c, 1)
	if err != nil {
		return err
	}

	id, err := parseAssetID(a[0])
	if err != nil {
		return err
	}

	reader, client, err := m.newReader()
	if err != nil {
		return err
	}
	defer client.Close()

	details, err := reader.GetAssetDetails(id)
	if err != nil {
		return fmt.Errorf("get asset details: %w", registry.ParseFault(err))
	}

	return printJSON(m.w, newAssetDetailsView(details))
}

func runOwned(c *cli.Context) error {
	return listAccountAssets(c, (*registry.ContractReader).GetOwnedAssets)
}

func runCreated(c *cli.Context) error {
	return listAccountAssets(c, (*registry.ContractReader).GetCreatedAssets)
}

func listAccountAssets(c *cli.Context, get func(*registry.ContractReader, util.Uint160) ([]*big.Int, error)) error {
	m := getMetadata(c)

	a, err := args(c, 1)
	if err != nil {
		return err
	}

	acc, err := parseAccount(a[0])
	if err != nil {
		return err
	}

	reader, client, err := m.newReader()
	if err != nil {
		return err
	}
	defer client.Close()

	list, err := get(reader, acc)
	if err != nil {
		return fmt.Errorf("get %s assets: %w", c.Command.Name, registry.ParseFault(err))
	}

	return printJSON(m.w, ids(list))
}

func runAuthorized(c *cli.Context) error {
	m := getMetadata(c)

	a, err := args(c, 2)
	if err != nil {
		return err
	}

	id, err := parseAssetID(a[0])
	if err != nil {
		return err
	}

	user, err := parseAccount(a[1])
	if err != nil {
		return err
	}

	reader, client, err := m.newReader()
	if err != nil {
		return err
	}
	defer client.Close()

	ok, err := reader.IsAuthorized(id, user)
	if err != nil {
		return fmt.Errorf("check authorization: %w", registry.ParseFault(err))
	}

	fmt.Fprintln(m.w, ok)
	return nil
}

func runVerify(c *cli.Context) error {
	m := getMetadata(c)

	a, err := args(c, 2)
	if err != nil {
		return err
	}

	id, err := parseAssetID(a[0])
	if err != nil {
		return err
	}

	hash, err := decodeContentHash(a[1], c.String("encoding"))
	if err != nil {
		return err
	}

	reader, client, err := m.newReader()
	if err != nil {
		return err
	}
	defer client.Close()

	ok, err := reader.VerifyContentHash(id, hash)
	if err != nil {
		return fmt.Errorf("verify content hash: %w", registry.ParseFault(err))
	}

	fmt.Fprintln(m.w, ok)
	return nil
}

func runList(c *cli.Context) error {
	m := getMetadata(c)

	batch := c.Int("batch")
	if batch <= 0 {
		return fmt.Errorf("invalid batch: %d", batch)
	}

	reader, client, err := m.newReader()
	if err != nil {
		return err
	}
	defer client.Close()

	assets, err := reader.ListAssets(batch)
	if err != nil {
		return fmt.Errorf("list assets: %w", registry.ParseFault(err))
	}

	views := make([]assetView, len(assets))
	for i := range assets {
		views[i] = newAssetView(assets[i])
	}

	return printJSON(m.w, views)
}
