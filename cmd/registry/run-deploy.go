package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/nspcc-dev/asset-registry-contract/deploy"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/urfave/cli"
)

func runDeploy(c *cli.Context) error {
	m := getMetadata(c)

	prm, err := readContract(c.String("nef"), c.String("manifest"))
	if err != nil {
		return err
	}

	acc, err := unlockAccount(c.String("wallet"), c.String("address"), c.String("password"))
	if err != nil {
		return err
	}

	var committee *wallet.Account
	if addr := c.String("committee"); addr != "" {
		committee, err = unlockAccount(c.String("wallet"), addr, c.String("password"))
		if err != nil {
			return fmt.Errorf("committee: %w", err)
		}
	}

	var addr util.Uint160
	if m.contract != "" {
		addr, err = m.contractAddress()
		if err != nil {
			return err
		}
	}

	client, err := m.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 10*m.timeout)
	defer cancel()

	h, err := deploy.Deploy(ctx, deploy.Prm{
		Logger:           m.log,
		Blockchain:       client,
		LocalAccount:     acc,
		CommitteeAccount: committee,
		Registry:         prm,
		Address:          addr,
	})
	if err != nil {
		return err
	}

	return printJSON(m.w, map[string]string{
		"address": address.Uint160ToString(h),
		"hash":    h.StringLE(),
	})
}

func readContract(nefPath, manifestPath string) (deploy.CommonDeployPrm, error) {
	var res deploy.CommonDeployPrm

	switch {
	case nefPath == "":
		return res, errors.New("missing NEF file")
	case manifestPath == "":
		return res, errors.New("missing manifest file")
	}

	b, err := os.ReadFile(nefPath)
	if err != nil {
		return res, fmt.Errorf("read NEF file: %w", err)
	}

	res.NEF, err = nef.FileFromBytes(b)
	if err != nil {
		return res, fmt.Errorf("decode NEF file: %w", err)
	}

	b, err = os.ReadFile(manifestPath)
	if err != nil {
		return res, fmt.Errorf("read manifest file: %w", err)
	}

	err = json.Unmarshal(b, &res.Manifest)
	if err != nil {
		return res, fmt.Errorf("decode manifest file: %w", err)
	}

	return res, nil
}
