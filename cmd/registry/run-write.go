package main

import (
	"errors"
	"fmt"
	"math/big"

	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/urfave/cli"
)

func runRegister(c *cli.Context) error {
	m := getMetadata(c)

	name := c.String("name")
	if name == "" {
		return errors.New("missing asset name")
	}

	hash, err := decodeContentHash(c.String("hash"), c.String("encoding"))
	if err != nil {
		return err
	}

	x, err := m.newWriter(c)
	if err != nil {
		return err
	}
	defer x.close()

	res, err := x.await(x.Register(x.sender, name, c.String("description"), c.String("uri"), hash, !c.Bool("non-transferable")))
	if err != nil {
		return fmt.Errorf("register asset: %w", err)
	}

	if len(res.Stack) != 1 {
		return fmt.Errorf("register asset: unexpected result stack length %d", len(res.Stack))
	}

	id, err := res.Stack[0].TryInteger()
	if err != nil {
		return fmt.Errorf("register asset: decode ID: %w", err)
	}

	fmt.Fprintln(m.w, id)
	return nil
}

func runTransfer(c *cli.Context) error {
	m := getMetadata(c)

	a, err := args(c, 2)
	if err != nil {
		return err
	}

	id, err := parseAssetID(a[0])
	if err != nil {
		return err
	}

	to, err := parseAccount(a[1])
	if err != nil {
		return err
	}

	x, err := m.newWriter(c)
	if err != nil {
		return err
	}
	defer x.close()

	_, err = x.await(x.Transfer(id, to))
	if err != nil {
		return fmt.Errorf("transfer asset: %w", err)
	}
	return nil
}

func runUpdateMetadata(c *cli.Context) error {
	m := getMetadata(c)

	a, err := args(c, 1)
	if err != nil {
		return err
	}

	id, err := parseAssetID(a[0])
	if err != nil {
		return err
	}

	name := c.String("name")
	if name == "" {
		return errors.New("missing asset name")
	}

	x, err := m.newWriter(c)
	if err != nil {
		return err
	}
	defer x.close()

	_, err = x.await(x.UpdateMetadata(id, name, c.String("description"), c.String("uri")))
	if err != nil {
		return fmt.Errorf("update asset metadata: %w", err)
	}
	return nil
}

func runAuthorize(c *cli.Context) error {
	return changeAccess(c, (*registry.Contract).Authorize)
}

func runDeauthorize(c *cli.Context) error {
	return changeAccess(c, (*registry.Contract).Deauthorize)
}

func changeAccess(c *cli.Context, change func(*registry.Contract, *big.Int, util.Uint160) (util.Uint256, uint32, error)) error {
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

	x, err := m.newWriter(c)
	if err != nil {
		return err
	}
	defer x.close()

	_, err = x.await(change(x.Contract, id, user))
	if err != nil {
		return fmt.Errorf("%s: %w", c.Command.Name, err)
	}
	return nil
}
