package main

import (
	"errors"
	"fmt"

	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/vmstate"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"github.com/urfave/cli"
	"go.uber.org/zap"
)

// unlockAccount opens the wallet and decrypts the account with the given
// address.
func unlockAccount(path, addr, password string) (*wallet.Account, error) {
	switch {
	case path == "":
		return nil, errors.New("missing wallet file")
	case addr == "":
		return nil, errors.New("missing account address")
	}

	w, err := wallet.NewWalletFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("open wallet: %w", err)
	}
	defer w.Close()

	h, err := parseAccount(addr)
	if err != nil {
		return nil, err
	}

	acc := w.GetAccount(h)
	if acc == nil {
		return nil, fmt.Errorf("account %s is missing in the wallet", addr)
	}

	err = acc.Decrypt(password, w.Scrypt)
	if err != nil {
		return nil, fmt.Errorf("decrypt account %s: %w", addr, err)
	}

	return acc, nil
}

// registryWriter is a registry client signing transactions by the wallet
// account given in the command flags.
type registryWriter struct {
	*registry.Contract

	log    *zap.Logger
	actor  *actor.Actor
	client *rpcclient.Client
	sender util.Uint160
}

func (m *metadata) newWriter(c *cli.Context) (*registryWriter, error) {
	h, err := m.contractAddress()
	if err != nil {
		return nil, err
	}

	acc, err := unlockAccount(c.String("wallet"), c.String("address"), c.String("password"))
	if err != nil {
		return nil, err
	}

	client, err := m.newClient()
	if err != nil {
		return nil, err
	}

	act, err := actor.NewSimple(client, acc)
	if err != nil {
		client.Close()
		return nil, fmt.Errorf("init actor: %w", err)
	}

	return &registryWriter{
		Contract: registry.New(act, h),
		log:      m.log.With(zap.Stringer("sender", acc.ScriptHash())),
		actor:    act,
		client:   client,
		sender:   acc.ScriptHash(),
	}, nil
}

func (x *registryWriter) close() {
	x.client.Close()
}

// await waits for the sent transaction to be accepted and checks it is
// successfully executed.
func (x *registryWriter) await(txHash util.Uint256, vub uint32, err error) (*state.AppExecResult, error) {
	if err != nil {
		return nil, registry.ParseFault(err)
	}

	x.log.Info("transaction sent, waiting...", zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	res, err := x.actor.Wait(txHash, vub, nil)
	if err != nil {
		return nil, fmt.Errorf("wait for transaction %s: %w", txHash.StringLE(), err)
	}

	if res.VMState != vmstate.Halt {
		return nil, registry.ParseFault(fmt.Errorf("transaction %s failed: %s", txHash.StringLE(), res.FaultException))
	}

	return res, nil
}
