package deploy

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"math/big"
	"strings"
	"time"

	"github.com/nspcc-dev/asset-registry-contract/common"
	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/actor"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/invoker"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/management"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/nef"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/wallet"
	"go.uber.org/zap"
)

// Blockchain groups services provided by particular Neo blockchain network
// that are required for the Asset Registry deployment.
type Blockchain interface {
	// RPCActor groups functions needed to compose and send transactions to the
	// blockchain.
	actor.RPCActor

	// GetContractStateByHash returns network state of the smart contract by its
	// address. GetContractStateByHash returns error with 'Unknown contract'
	// substring if requested contract is missing.
	GetContractStateByHash(util.Uint160) (*state.Contract, error)
}

// CommonDeployPrm groups common deployment parameters of the smart contract.
type CommonDeployPrm struct {
	NEF      nef.File
	Manifest manifest.Manifest
}

// DefaultPollInterval is the default interval between contract state checks
// after the deployment transaction is sent.
const DefaultPollInterval = time.Second

// Prm groups all parameters of the registry deployment procedure.
type Prm struct {
	// Writes progress into the log.
	Logger *zap.Logger

	// Particular Neo blockchain instance to deploy the registry to.
	Blockchain Blockchain

	// Local process account used for deployment transaction signing (must be
	// unlocked). Contract address depends on it.
	LocalAccount *wallet.Account

	// Committee multi-signature account (must be unlocked) used to update
	// outdated contract. Updates are skipped if not set.
	CommitteeAccount *wallet.Account

	// Registry contract to be deployed.
	Registry CommonDeployPrm

	// Address of the already deployed registry. Zero value means the address
	// is derived from LocalAccount and Registry, which changes with every new
	// NEF, so it must be set to update the contract.
	Address util.Uint160

	// Interval between contract state checks. DefaultPollInterval is used if
	// not positive.
	PollInterval time.Duration
}

// Deploy makes Asset Registry contract available on the blockchain given by
// Prm.Blockchain and returns its address.
//
// Unless Prm.Address is set, the contract address is derived from the local
// account, so repeated calls are safe: if the contract is already deployed
// and its version is not lower than the local one, Deploy does nothing.
// Outdated contract is updated on behalf of the committee. Contract missing
// at the explicitly set Prm.Address is an error.
//
// Deploy aborts by context or when a fatal error occurs, transactions are
// awaited until their ValidUntilBlock passes.
func Deploy(ctx context.Context, prm Prm) (util.Uint160, error) {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	if prm.PollInterval <= 0 {
		prm.PollInterval = DefaultPollInterval
	}

	localAddress := prm.Address
	if localAddress.Equals(util.Uint160{}) {
		localAddress = state.CreateContractHash(prm.LocalAccount.ScriptHash(), prm.Registry.NEF.Checksum, prm.Registry.Manifest.Name)
	}
	log := prm.Logger.With(zap.Stringer("address", localAddress))

	onChain, err := prm.Blockchain.GetContractStateByHash(localAddress)
	if err != nil {
		if !isErrContractNotFound(err) {
			return util.Uint160{}, fmt.Errorf("get contract state: %w", err)
		}
		if !prm.Address.Equals(util.Uint160{}) {
			return util.Uint160{}, fmt.Errorf("registry contract %s is missing on the chain", localAddress.StringLE())
		}

		log.Info("registry contract is missing on the chain, deploying...")

		err = deployContract(ctx, prm, localAddress)
		if err != nil {
			return util.Uint160{}, fmt.Errorf("deploy registry contract: %w", err)
		}

		log.Info("registry contract successfully deployed")

		return localAddress, nil
	}

	log.Debug("registry contract is already deployed", zap.Int32("id", onChain.ID),
		zap.Uint16("update counter", onChain.UpdateCounter))

	reader := registry.NewReader(invoker.New(prm.Blockchain, nil), localAddress)

	onChainVersion, err := reader.Version()
	if err != nil {
		return util.Uint160{}, fmt.Errorf("get version of the on-chain contract: %w", err)
	}

	if !needsUpdate(onChainVersion) {
		log.Info("on-chain registry contract is up to date", zap.Stringer("version", onChainVersion))
		return localAddress, nil
	}

	if prm.CommitteeAccount == nil {
		log.Warn("on-chain registry contract is outdated, but committee account is not set, skip update",
			zap.Stringer("on-chain version", onChainVersion), zap.Int("local version", common.Version))
		return localAddress, nil
	}

	log.Info("on-chain registry contract is outdated, updating...",
		zap.Stringer("on-chain version", onChainVersion), zap.Int("local version", common.Version))

	err = updateContract(ctx, prm, localAddress, onChain.UpdateCounter)
	if err != nil {
		return util.Uint160{}, fmt.Errorf("update registry contract: %w", err)
	}

	log.Info("registry contract successfully updated")

	return localAddress, nil
}

func needsUpdate(onChainVersion *big.Int) bool {
	return onChainVersion.Cmp(big.NewInt(common.Version)) < 0
}

func isErrContractNotFound(err error) bool {
	return errors.Is(err, neorpc.ErrUnknownContract) || strings.Contains(err.Error(), "Unknown contract")
}

func newActor(b Blockchain, acc *wallet.Account) (*actor.Actor, error) {
	return actor.New(b, []actor.SignerAccount{{
		Signer: transaction.Signer{
			Account: acc.ScriptHash(),
			Scopes:  transaction.CalledByEntry,
		},
		Account: acc,
	}}, actor.Options{
		CheckerModifier: heightBoundTransactionModifier(b.GetBlockCount),
	})
}

func deployContract(ctx context.Context, prm Prm, address util.Uint160) error {
	act, err := newActor(prm.Blockchain, prm.LocalAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from local account: %w", err)
	}

	txHash, vub, err := management.New(act).Deploy(&prm.Registry.NEF, &prm.Registry.Manifest, nil)
	if err != nil {
		return fmt.Errorf("send deployment transaction: %w", err)
	}

	prm.Logger.Info("deployment transaction sent, waiting for the contract to appear...",
		zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	return waitForContractState(ctx, prm, vub, func() (bool, error) {
		_, err := prm.Blockchain.GetContractStateByHash(address)
		if err != nil {
			if isErrContractNotFound(err) {
				return false, nil
			}
			return false, err
		}
		return true, nil
	})
}

func updateContract(ctx context.Context, prm Prm, address util.Uint160, updateCounter uint16) error {
	act, err := newActor(prm.Blockchain, prm.CommitteeAccount)
	if err != nil {
		return fmt.Errorf("init transaction sender from committee account: %w", err)
	}

	bNEF, err := prm.Registry.NEF.Bytes()
	if err != nil {
		return fmt.Errorf("encode local NEF: %w", err)
	}

	jManifest, err := json.Marshal(prm.Registry.Manifest)
	if err != nil {
		return fmt.Errorf("encode local manifest: %w", err)
	}

	txHash, vub, err := registry.New(act, address).Update(bNEF, string(jManifest), nil)
	if err != nil {
		return fmt.Errorf("send update transaction: %w", registry.ParseFault(err))
	}

	prm.Logger.Info("update transaction sent, waiting for the contract to change...",
		zap.Stringer("tx", txHash), zap.Uint32("vub", vub))

	return waitForContractState(ctx, prm, vub, func() (bool, error) {
		st, err := prm.Blockchain.GetContractStateByHash(address)
		if err != nil {
			return false, err
		}
		return st.UpdateCounter > updateCounter, nil
	})
}

// waitForContractState polls the contract state until done returns true,
// the context is done or the chain goes beyond vub.
func waitForContractState(ctx context.Context, prm Prm, vub uint32, done func() (bool, error)) error {
	ticker := time.NewTicker(prm.PollInterval)
	defer ticker.Stop()

	for {
		ok, err := done()
		if err != nil {
			return fmt.Errorf("check contract state: %w", err)
		}
		if ok {
			return nil
		}

		count, err := prm.Blockchain.GetBlockCount()
		if err != nil {
			return fmt.Errorf("get block count: %w", err)
		}
		if count > vub+1 {
			return fmt.Errorf("transaction expired at block #%d", vub)
		}

		select {
		case <-ctx.Done():
			return fmt.Errorf("wait for transaction to be accepted: %w", ctx.Err())
		case <-ticker.C:
		}
	}
}

// returns actor.TransactionCheckerModifier which checks that invocation
// finished with 'HALT' state and, if so, sets transaction's nonce and
// ValidUntilBlock to 100*N and 100*(N+1) correspondingly, where
// 100*N <= current height < 100*(N+1). Repeated deployment attempts within
// the span produce the same transaction.
func heightBoundTransactionModifier(getBlockCount func() (uint32, error)) actor.TransactionCheckerModifier {
	return func(r *result.Invoke, tx *transaction.Transaction) error {
		err := actor.DefaultCheckerModifier(r, tx)
		if err != nil {
			return err
		}

		count, err := getBlockCount()
		if err != nil {
			return fmt.Errorf("get block count: %w", err)
		}

		var curHeight uint32
		if count > 0 {
			curHeight = count - 1
		}

		const span = 100
		n := curHeight / span

		tx.Nonce = n * span

		if math.MaxUint32-span > tx.Nonce {
			tx.ValidUntilBlock = tx.Nonce + span
		} else {
			tx.ValidUntilBlock = math.MaxUint32
		}

		return nil
	}
}
