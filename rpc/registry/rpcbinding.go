// Package registry contains RPC wrappers for Asset Registry contract.
package registry

import (
	"errors"
	"fmt"
	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/core/transaction"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/rpcclient/unwrap"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"math/big"
	"unicode/utf8"
)

// RegistryAsset is a contract-specific registry.Asset type used by its methods.
type RegistryAsset struct {
	ID *big.Int
	Name string
	Description string
	URI string
	ContentHash []byte
	CreationTime *big.Int
	Creator util.Uint160
	Owner util.Uint160
	Transferable bool
	LastTransferTime *big.Int
}

// RegistryAssetDetails is a contract-specific registry.AssetDetails type used by its methods.
type RegistryAssetDetails struct {
	ID *big.Int
	Name string
	Description string
	URI string
	ContentHash []byte
	CreationTime *big.Int
	Creator util.Uint160
	Owner util.Uint160
	Transferable bool
	LastTransferTime *big.Int
	AuthorizedUsers []util.Uint160
}

// AssetRegisteredEvent represents "AssetRegistered" event emitted by the contract.
type AssetRegisteredEvent struct {
	AssetID *big.Int
	Creator util.Uint160
	ContentHash []byte
}

// AssetTransferredEvent represents "AssetTransferred" event emitted by the contract.
type AssetTransferredEvent struct {
	AssetID *big.Int
	From util.Uint160
	To util.Uint160
}

// AssetMetadataUpdatedEvent represents "AssetMetadataUpdated" event emitted by the contract.
type AssetMetadataUpdatedEvent struct {
	AssetID *big.Int
	Name string
	Description string
	AssetURI string
}

// UserAuthorizedEvent represents "UserAuthorized" event emitted by the contract.
type UserAuthorizedEvent struct {
	AssetID *big.Int
	User util.Uint160
}

// UserDeauthorizedEvent represents "UserDeauthorized" event emitted by the contract.
type UserDeauthorizedEvent struct {
	AssetID *big.Int
	User util.Uint160
}

// Invoker is used by ContractReader to call various safe methods.
type Invoker interface {
	Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error)
	CallAndExpandIterator(contract util.Uint160, method string, maxItems int, params ...any) (*result.Invoke, error)
	TerminateSession(sessionID uuid.UUID) error
	TraverseIterator(sessionID uuid.UUID, iterator *result.Iterator, num int) ([]stackitem.Item, error)
}

// Actor is used by Contract to call state-changing methods.
type Actor interface {
	Invoker

	MakeCall(contract util.Uint160, method string, params ...any) (*transaction.Transaction, error)
	MakeRun(script []byte) (*transaction.Transaction, error)
	MakeUnsignedCall(contract util.Uint160, method string, attrs []transaction.Attribute, params ...any) (*transaction.Transaction, error)
	MakeUnsignedRun(script []byte, attrs []transaction.Attribute) (*transaction.Transaction, error)
	SendCall(contract util.Uint160, method string, params ...any) (util.Uint256, uint32, error)
	SendRun(script []byte) (util.Uint256, uint32, error)
}

// ContractReader implements safe contract methods.
type ContractReader struct {
	invoker Invoker
	hash util.Uint160
}

// Contract implements all contract methods.
type Contract struct {
	ContractReader
	actor Actor
	hash util.Uint160
}

// NewReader creates an instance of ContractReader using provided contract hash and the given Invoker.
func NewReader(invoker Invoker, hash util.Uint160) *ContractReader {
	return &ContractReader{invoker, hash}
}

// New creates an instance of Contract using provided contract hash and the given Actor.
func New(actor Actor, hash util.Uint160) *Contract {
	return &Contract{ContractReader{actor, hash}, actor, hash}
}

// Assets invokes `assets` method of contract.
func (c *ContractReader) Assets() (uuid.UUID, result.Iterator, error) {
	return unwrap.SessionIterator(c.invoker.Call(c.hash, "assets"))
}

// AssetsExpanded is similar to Assets (uses the same contract
// method), but can be useful if the server used doesn't support sessions and
// doesn't expand iterators. It creates a script that will get the specified
// number of result items from the iterator right in the VM and return them to
// you. It's only limited by VM stack and GAS available for RPC invocations.
func (c *ContractReader) AssetsExpanded(_numOfIteratorItems int) ([]stackitem.Item, error) {
	return unwrap.Array(c.invoker.CallAndExpandIterator(c.hash, "assets", _numOfIteratorItems))
}

// AuthorizedUsers invokes `authorizedUsers` method of contract.
func (c *ContractReader) AuthorizedUsers(assetID *big.Int) ([]util.Uint160, error) {
	return unwrap.ArrayOfUint160(c.invoker.Call(c.hash, "authorizedUsers", assetID))
}

// GetAssetDetails invokes `getAssetDetails` method of contract.
func (c *ContractReader) GetAssetDetails(assetID *big.Int) (*RegistryAssetDetails, error) {
	return itemToRegistryAssetDetails(unwrap.Item(c.invoker.Call(c.hash, "getAssetDetails", assetID)))
}

// GetCreatedAssets invokes `getCreatedAssets` method of contract.
func (c *ContractReader) GetCreatedAssets(creator util.Uint160) ([]*big.Int, error) {
	return itemToIDList(unwrap.Item(c.invoker.Call(c.hash, "getCreatedAssets", creator)))
}

// GetOwnedAssets invokes `getOwnedAssets` method of contract.
func (c *ContractReader) GetOwnedAssets(owner util.Uint160) ([]*big.Int, error) {
	return itemToIDList(unwrap.Item(c.invoker.Call(c.hash, "getOwnedAssets", owner)))
}

// GetTotalAssets invokes `getTotalAssets` method of contract.
func (c *ContractReader) GetTotalAssets() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "getTotalAssets"))
}

// IsAuthorized invokes `isAuthorized` method of contract.
func (c *ContractReader) IsAuthorized(assetID *big.Int, user util.Uint160) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "isAuthorized", assetID, user))
}

// OwnerOf invokes `ownerOf` method of contract.
func (c *ContractReader) OwnerOf(assetID *big.Int) (util.Uint160, error) {
	return unwrap.Uint160(c.invoker.Call(c.hash, "ownerOf", assetID))
}

// VerifyContentHash invokes `verifyContentHash` method of contract.
func (c *ContractReader) VerifyContentHash(assetID *big.Int, hash []byte) (bool, error) {
	return unwrap.Bool(c.invoker.Call(c.hash, "verifyContentHash", assetID, hash))
}

// Version invokes `version` method of contract.
func (c *ContractReader) Version() (*big.Int, error) {
	return unwrap.BigInt(c.invoker.Call(c.hash, "version"))
}

// Authorize creates a transaction invoking `authorize` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Authorize(assetID *big.Int, user util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "authorize", assetID, user)
}

// AuthorizeTransaction creates a transaction invoking `authorize` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) AuthorizeTransaction(assetID *big.Int, user util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "authorize", assetID, user)
}

// AuthorizeUnsigned creates a transaction invoking `authorize` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) AuthorizeUnsigned(assetID *big.Int, user util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "authorize", nil, assetID, user)
}

// Deauthorize creates a transaction invoking `deauthorize` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Deauthorize(assetID *big.Int, user util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "deauthorize", assetID, user)
}

// DeauthorizeTransaction creates a transaction invoking `deauthorize` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) DeauthorizeTransaction(assetID *big.Int, user util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "deauthorize", assetID, user)
}

// DeauthorizeUnsigned creates a transaction invoking `deauthorize` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) DeauthorizeUnsigned(assetID *big.Int, user util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "deauthorize", nil, assetID, user)
}

// Register creates a transaction invoking `register` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Register(creator util.Uint160, name string, description string, assetURI string, contentHash []byte, isTransferable bool) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "register", creator, name, description, assetURI, contentHash, isTransferable)
}

// RegisterTransaction creates a transaction invoking `register` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) RegisterTransaction(creator util.Uint160, name string, description string, assetURI string, contentHash []byte, isTransferable bool) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "register", creator, name, description, assetURI, contentHash, isTransferable)
}

// RegisterUnsigned creates a transaction invoking `register` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) RegisterUnsigned(creator util.Uint160, name string, description string, assetURI string, contentHash []byte, isTransferable bool) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "register", nil, creator, name, description, assetURI, contentHash, isTransferable)
}

// Transfer creates a transaction invoking `transfer` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Transfer(assetID *big.Int, to util.Uint160) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "transfer", assetID, to)
}

// TransferTransaction creates a transaction invoking `transfer` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) TransferTransaction(assetID *big.Int, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "transfer", assetID, to)
}

// TransferUnsigned creates a transaction invoking `transfer` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) TransferUnsigned(assetID *big.Int, to util.Uint160) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "transfer", nil, assetID, to)
}

// Update creates a transaction invoking `update` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) Update(nef []byte, manifest string, data any) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "update", nef, manifest, data)
}

// UpdateTransaction creates a transaction invoking `update` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateTransaction(nef []byte, manifest string, data any) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "update", nef, manifest, data)
}

// UpdateUnsigned creates a transaction invoking `update` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateUnsigned(nef []byte, manifest string, data any) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "update", nil, nef, manifest, data)
}

// UpdateMetadata creates a transaction invoking `updateMetadata` method of the contract.
// This transaction is signed and immediately sent to the network.
// The values returned are its hash, ValidUntilBlock value and error if any.
func (c *Contract) UpdateMetadata(assetID *big.Int, name string, description string, assetURI string) (util.Uint256, uint32, error) {
	return c.actor.SendCall(c.hash, "updateMetadata", assetID, name, description, assetURI)
}

// UpdateMetadataTransaction creates a transaction invoking `updateMetadata` method of the contract.
// This transaction is signed, but not sent to the network, instead it's
// returned to the caller.
func (c *Contract) UpdateMetadataTransaction(assetID *big.Int, name string, description string, assetURI string) (*transaction.Transaction, error) {
	return c.actor.MakeCall(c.hash, "updateMetadata", assetID, name, description, assetURI)
}

// UpdateMetadataUnsigned creates a transaction invoking `updateMetadata` method of the contract.
// This transaction is not signed, it's simply returned to the caller.
// Any fields of it that do not affect fees can be changed (ValidUntilBlock,
// Nonce), fee values (NetworkFee, SystemFee) can be increased as well.
func (c *Contract) UpdateMetadataUnsigned(assetID *big.Int, name string, description string, assetURI string) (*transaction.Transaction, error) {
	return c.actor.MakeUnsignedCall(c.hash, "updateMetadata", nil, assetID, name, description, assetURI)
}

func itemToIDList(item stackitem.Item, err error) ([]*big.Int, error) {
	if err != nil {
		return nil, err
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}
	res := make([]*big.Int, len(arr))
	for i := range res {
		res[i], err = arr[i].TryInteger()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
	}
	return res, nil
}

func decodeUint160(item stackitem.Item) (util.Uint160, error) {
	b, err := item.TryBytes()
	if err != nil {
		return util.Uint160{}, err
	}
	u, err := util.Uint160DecodeBytesBE(b)
	if err != nil {
		return util.Uint160{}, err
	}
	return u, nil
}

func decodeUTF8(item stackitem.Item) (string, error) {
	b, err := item.TryBytes()
	if err != nil {
		return "", err
	}
	if !utf8.Valid(b) {
		return "", errors.New("not a UTF-8 string")
	}
	return string(b), nil
}

// itemToRegistryAsset converts stack item into *RegistryAsset.
// NULL item is returned as nil pointer without error.
func itemToRegistryAsset(item stackitem.Item, err error) (*RegistryAsset, error) {
	if err != nil {
		return nil, err
	}
	_, null := item.(stackitem.Null)
	if null {
		return nil, nil
	}
	var res = new(RegistryAsset)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RegistryAsset from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RegistryAsset) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 10 {
		return errors.New("wrong number of structure elements")
	}
	return res.fromFields(arr)
}

func (res *RegistryAsset) fromFields(arr []stackitem.Item) error {
	var (
		index = -1
		err error
	)
	index++
	res.ID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field ID: %w", err)
	}

	index++
	res.Name, err = decodeUTF8(arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	index++
	res.Description, err = decodeUTF8(arr[index])
	if err != nil {
		return fmt.Errorf("field Description: %w", err)
	}

	index++
	res.URI, err = decodeUTF8(arr[index])
	if err != nil {
		return fmt.Errorf("field URI: %w", err)
	}

	index++
	res.ContentHash, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field ContentHash: %w", err)
	}

	index++
	res.CreationTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field CreationTime: %w", err)
	}

	index++
	res.Creator, err = decodeUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Creator: %w", err)
	}

	index++
	res.Owner, err = decodeUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Owner: %w", err)
	}

	index++
	res.Transferable, err = arr[index].TryBool()
	if err != nil {
		return fmt.Errorf("field Transferable: %w", err)
	}

	index++
	res.LastTransferTime, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field LastTransferTime: %w", err)
	}

	return nil
}

// itemToRegistryAssetDetails converts stack item into *RegistryAssetDetails.
// NULL item is returned as nil pointer without error.
func itemToRegistryAssetDetails(item stackitem.Item, err error) (*RegistryAssetDetails, error) {
	if err != nil {
		return nil, err
	}
	_, null := item.(stackitem.Null)
	if null {
		return nil, nil
	}
	var res = new(RegistryAssetDetails)
	err = res.FromStackItem(item)
	return res, err
}

// FromStackItem retrieves fields of RegistryAssetDetails from the given
// [stackitem.Item] or returns an error if it's not possible to do to so.
func (res *RegistryAssetDetails) FromStackItem(item stackitem.Item) error {
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 11 {
		return errors.New("wrong number of structure elements")
	}

	var a RegistryAsset
	err := a.fromFields(arr[:10])
	if err != nil {
		return err
	}
	res.ID = a.ID
	res.Name = a.Name
	res.Description = a.Description
	res.URI = a.URI
	res.ContentHash = a.ContentHash
	res.CreationTime = a.CreationTime
	res.Creator = a.Creator
	res.Owner = a.Owner
	res.Transferable = a.Transferable
	res.LastTransferTime = a.LastTransferTime

	users, ok := arr[10].Value().([]stackitem.Item)
	if !ok {
		return errors.New("field AuthorizedUsers: not an array")
	}
	res.AuthorizedUsers = make([]util.Uint160, len(users))
	for i := range users {
		res.AuthorizedUsers[i], err = decodeUint160(users[i])
		if err != nil {
			return fmt.Errorf("field AuthorizedUsers: item %d: %w", i, err)
		}
	}
	return nil
}

// AssetRegisteredEventsFromApplicationLog retrieves a set of all emitted events
// with "AssetRegistered" name from the provided [result.ApplicationLog].
func AssetRegisteredEventsFromApplicationLog(log *result.ApplicationLog) ([]*AssetRegisteredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AssetRegisteredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AssetRegistered" {
				continue
			}
			event := new(AssetRegisteredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AssetRegisteredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AssetRegisteredEvent or
// returns an error if it's not possible to do to so.
func (e *AssetRegisteredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.AssetID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	index++
	e.Creator, err = decodeUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field Creator: %w", err)
	}

	index++
	e.ContentHash, err = arr[index].TryBytes()
	if err != nil {
		return fmt.Errorf("field ContentHash: %w", err)
	}

	return nil
}

// AssetTransferredEventsFromApplicationLog retrieves a set of all emitted events
// with "AssetTransferred" name from the provided [result.ApplicationLog].
func AssetTransferredEventsFromApplicationLog(log *result.ApplicationLog) ([]*AssetTransferredEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AssetTransferredEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AssetTransferred" {
				continue
			}
			event := new(AssetTransferredEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AssetTransferredEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AssetTransferredEvent or
// returns an error if it's not possible to do to so.
func (e *AssetTransferredEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 3 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.AssetID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	index++
	e.From, err = decodeUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field From: %w", err)
	}

	index++
	e.To, err = decodeUint160(arr[index])
	if err != nil {
		return fmt.Errorf("field To: %w", err)
	}

	return nil
}

// AssetMetadataUpdatedEventsFromApplicationLog retrieves a set of all emitted events
// with "AssetMetadataUpdated" name from the provided [result.ApplicationLog].
func AssetMetadataUpdatedEventsFromApplicationLog(log *result.ApplicationLog) ([]*AssetMetadataUpdatedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*AssetMetadataUpdatedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "AssetMetadataUpdated" {
				continue
			}
			event := new(AssetMetadataUpdatedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize AssetMetadataUpdatedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to AssetMetadataUpdatedEvent or
// returns an error if it's not possible to do to so.
func (e *AssetMetadataUpdatedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 4 {
		return errors.New("wrong number of structure elements")
	}

	var (
		index = -1
		err error
	)
	index++
	e.AssetID, err = arr[index].TryInteger()
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	index++
	e.Name, err = decodeUTF8(arr[index])
	if err != nil {
		return fmt.Errorf("field Name: %w", err)
	}

	index++
	e.Description, err = decodeUTF8(arr[index])
	if err != nil {
		return fmt.Errorf("field Description: %w", err)
	}

	index++
	e.AssetURI, err = decodeUTF8(arr[index])
	if err != nil {
		return fmt.Errorf("field AssetURI: %w", err)
	}

	return nil
}

// UserAuthorizedEventsFromApplicationLog retrieves a set of all emitted events
// with "UserAuthorized" name from the provided [result.ApplicationLog].
func UserAuthorizedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UserAuthorizedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UserAuthorizedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "UserAuthorized" {
				continue
			}
			event := new(UserAuthorizedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UserAuthorizedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UserAuthorizedEvent or
// returns an error if it's not possible to do to so.
func (e *UserAuthorizedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.AssetID, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	e.User, err = decodeUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field User: %w", err)
	}

	return nil
}

// UserDeauthorizedEventsFromApplicationLog retrieves a set of all emitted events
// with "UserDeauthorized" name from the provided [result.ApplicationLog].
func UserDeauthorizedEventsFromApplicationLog(log *result.ApplicationLog) ([]*UserDeauthorizedEvent, error) {
	if log == nil {
		return nil, errors.New("nil application log")
	}

	var res []*UserDeauthorizedEvent
	for i, ex := range log.Executions {
		for j, e := range ex.Events {
			if e.Name != "UserDeauthorized" {
				continue
			}
			event := new(UserDeauthorizedEvent)
			err := event.FromStackItem(e.Item)
			if err != nil {
				return nil, fmt.Errorf("failed to deserialize UserDeauthorizedEvent from stackitem (execution #%d, event #%d): %w", i, j, err)
			}
			res = append(res, event)
		}
	}

	return res, nil
}

// FromStackItem converts provided [stackitem.Array] to UserDeauthorizedEvent or
// returns an error if it's not possible to do to so.
func (e *UserDeauthorizedEvent) FromStackItem(item *stackitem.Array) error {
	if item == nil {
		return errors.New("nil item")
	}
	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return errors.New("not an array")
	}
	if len(arr) != 2 {
		return errors.New("wrong number of structure elements")
	}

	var err error
	e.AssetID, err = arr[0].TryInteger()
	if err != nil {
		return fmt.Errorf("field AssetID: %w", err)
	}

	e.User, err = decodeUint160(arr[1])
	if err != nil {
		return fmt.Errorf("field User: %w", err)
	}

	return nil
}
