package registry

import (
	"github.com/nspcc-dev/asset-registry-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/convert"
	"github.com/nspcc-dev/neo-go/pkg/interop/iterator"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/crypto"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/std"
	"github.com/nspcc-dev/neo-go/pkg/interop/runtime"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/interop/util"
)

// Prefixes used for contract data storage.
const (
	// prefixTotalAssets contains the number of registered assets which is
	// also the ID of the next asset.
	prefixTotalAssets byte = 0x00
	// prefixAsset contains map from asset key to serialized Asset, where
	// asset key = hash160(asset ID).
	prefixAsset byte = 0x01
	// prefixAuthorized contains set of (asset key + account) explicitly
	// authorized to access the asset.
	prefixAuthorized byte = 0x02
	// prefixOwned contains map from the owner to the serialized list of IDs
	// it currently owns.
	prefixOwned byte = 0x03
	// prefixCreated contains map from the creator to the serialized list of
	// IDs it has ever registered.
	prefixCreated byte = 0x04
)

// Values constraints.
const (
	// maxContentHashLength is the maximum length of the asset content hash.
	maxContentHashLength = 64
	// maxTextLength is the maximum length of asset name, description and URI.
	maxTextLength = 1024
)

// Exception messages.
const (
	// ErrNotFound is thrown when asset ID is out of range.
	ErrNotFound = "asset not found"
	// ErrInvalidArgument is thrown when an argument is malformed: empty or zero
	// account, too long text or content hash.
	ErrInvalidArgument = "invalid argument"
	// ErrNotTransferable is thrown on transfer of the asset registered as
	// non-transferable.
	ErrNotTransferable = "asset is not transferable"
)

// _deploy initializes asset counter on contract deploy.
func _deploy(data any, isUpdate bool) {
	if isUpdate {
		args := data.([]any)
		common.CheckVersion(args[len(args)-1].(int))
		return
	}

	ctx := storage.GetContext()
	storage.Put(ctx, []byte{prefixTotalAssets}, 0)

	runtime.Log("registry contract initialized")
}

// Update method updates contract source code and manifest. It can be invoked
// only by the committee.
func Update(nef []byte, manifest string, data any) {
	common.CheckCommittee()

	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nef, manifest, common.AppendVersion(data))
	runtime.Log("registry contract updated")
}

// Version returns the version of the contract.
func Version() int {
	return common.Version
}

// Register registers a new asset created and owned by the specified account.
// Transaction must be witnessed by the creator. Returns ID of the new asset.
//
// Name, description and URI are limited to 1024 bytes each, content hash is
// limited to 64 bytes and may be empty. Exceeding values are rejected with
// ErrInvalidArgument.
func Register(creator interop.Hash160, name, description, assetURI string, contentHash []byte, isTransferable bool) int {
	if !isValidAccount(creator) {
		panic(ErrInvalidArgument + ": invalid creator")
	}
	checkMetadata(name, description, assetURI)
	if len(contentHash) > maxContentHashLength {
		panic(ErrInvalidArgument + ": content hash is too long")
	}
	common.CheckOwnerWitness(creator)

	ctx := storage.GetContext()
	id := getTotalAssets(ctx)
	now := runtime.GetTime()

	putAsset(ctx, Asset{
		ID:               id,
		Name:             name,
		Description:      description,
		URI:              assetURI,
		ContentHash:      contentHash,
		CreationTime:     now,
		Creator:          creator,
		Owner:            creator,
		Transferable:     isTransferable,
		LastTransferTime: now,
	})
	appendID(ctx, ownedKey(creator), id)
	appendID(ctx, createdKey(creator), id)
	storage.Put(ctx, []byte{prefixTotalAssets}, id+1)

	runtime.Notify("AssetRegistered", id, creator, contentHash)
	return id
}

// Transfer hands the asset over to the specified account. Transaction must be
// witnessed by the current owner and the asset must be transferable. Transfer
// to the current owner is allowed: it updates last transfer time and produces
// notification as any other transfer.
func Transfer(assetID int, to interop.Hash160) {
	if !isValidAccount(to) {
		panic(ErrInvalidArgument + ": invalid receiver")
	}

	ctx := storage.GetContext()
	a := getAsset(ctx, assetID)
	common.CheckOwnerWitness(a.Owner)
	if !a.Transferable {
		panic(ErrNotTransferable)
	}

	from := a.Owner
	a.Owner = to
	a.LastTransferTime = runtime.GetTime()
	putAsset(ctx, a)

	// removal goes first, so self-transfer ends up with the single entry
	removeID(ctx, ownedKey(from), assetID)
	appendID(ctx, ownedKey(to), assetID)

	runtime.Notify("AssetTransferred", assetID, from, to)
}

// UpdateMetadata overwrites name, description and URI of the asset.
// Transaction must be witnessed by the current owner.
func UpdateMetadata(assetID int, name, description, assetURI string) {
	checkMetadata(name, description, assetURI)

	ctx := storage.GetContext()
	a := getAsset(ctx, assetID)
	common.CheckOwnerWitness(a.Owner)

	a.Name = name
	a.Description = description
	a.URI = assetURI
	putAsset(ctx, a)

	runtime.Notify("AssetMetadataUpdated", assetID, name, description, assetURI)
}

// Authorize grants access to the asset to the specified account. Transaction
// must be witnessed by the current owner. Repeated grant is not an error.
func Authorize(assetID int, user interop.Hash160) {
	if !isValidAccount(user) {
		panic(ErrInvalidArgument + ": invalid user")
	}

	ctx := storage.GetContext()
	a := getAsset(ctx, assetID)
	common.CheckOwnerWitness(a.Owner)

	storage.Put(ctx, authorizedKey(assetID, user), 1)

	runtime.Notify("UserAuthorized", assetID, user)
}

// Deauthorize revokes access to the asset from the specified account.
// Transaction must be witnessed by the current owner. Revocation of the
// access that has never been granted is not an error. Creator and current
// owner keep their implicit access anyway.
func Deauthorize(assetID int, user interop.Hash160) {
	ctx := storage.GetContext()
	a := getAsset(ctx, assetID)
	common.CheckOwnerWitness(a.Owner)

	storage.Delete(ctx, authorizedKey(assetID, user))

	runtime.Notify("UserDeauthorized", assetID, user)
}

// IsAuthorized checks whether the account has access to the asset. Creator
// and current owner are always authorized.
func IsAuthorized(assetID int, user interop.Hash160) bool {
	ctx := storage.GetReadOnlyContext()
	a := getAsset(ctx, assetID)

	if common.BytesEqual(user, a.Creator) || common.BytesEqual(user, a.Owner) {
		return true
	}
	return storage.Get(ctx, authorizedKey(assetID, user)) != nil
}

// GetAssetDetails returns all fields of the asset including the list of
// explicitly authorized accounts.
func GetAssetDetails(assetID int) AssetDetails {
	ctx := storage.GetReadOnlyContext()
	a := getAsset(ctx, assetID)

	return AssetDetails{
		ID:               a.ID,
		Name:             a.Name,
		Description:      a.Description,
		URI:              a.URI,
		ContentHash:      a.ContentHash,
		CreationTime:     a.CreationTime,
		Creator:          a.Creator,
		Owner:            a.Owner,
		Transferable:     a.Transferable,
		LastTransferTime: a.LastTransferTime,
		AuthorizedUsers:  getAuthorizedUsers(ctx, assetID),
	}
}

// OwnerOf returns current owner of the asset.
func OwnerOf(assetID int) interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	a := getAsset(ctx, assetID)
	return a.Owner
}

// AuthorizedUsers returns accounts explicitly authorized to access the asset.
// Creator and owner are not included unless they were authorized explicitly.
func AuthorizedUsers(assetID int) []interop.Hash160 {
	ctx := storage.GetReadOnlyContext()
	_ = getAsset(ctx, assetID) // ensure exists
	return getAuthorizedUsers(ctx, assetID)
}

// GetOwnedAssets returns IDs of the assets currently owned by the account.
// Order of IDs is not preserved across transfers.
func GetOwnedAssets(owner interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntList(ctx, ownedKey(owner))
}

// GetCreatedAssets returns IDs of the assets registered by the account in
// the order of registration.
func GetCreatedAssets(creator interop.Hash160) []int {
	ctx := storage.GetReadOnlyContext()
	return common.GetIntList(ctx, createdKey(creator))
}

// VerifyContentHash checks whether the provided hash is exactly the one
// supplied at the asset registration.
func VerifyContentHash(assetID int, hash []byte) bool {
	ctx := storage.GetReadOnlyContext()
	a := getAsset(ctx, assetID)
	return common.BytesEqual(a.ContentHash, hash)
}

// GetTotalAssets returns the number of registered assets.
func GetTotalAssets() int {
	ctx := storage.GetReadOnlyContext()
	return getTotalAssets(ctx)
}

// Assets returns iterator over all registered assets. Values are Asset
// structures, the order is not specified.
func Assets() iterator.Iterator {
	ctx := storage.GetReadOnlyContext()
	return storage.Find(ctx, []byte{prefixAsset}, storage.ValuesOnly|storage.DeserializeValues)
}

// getTotalAssets returns asset counter from storage.
func getTotalAssets(ctx storage.Context) int {
	val := storage.Get(ctx, []byte{prefixTotalAssets})
	if val == nil {
		return 0
	}
	return val.(int)
}

// getAssetKey computes hash160 from the given asset ID.
func getAssetKey(assetID int) []byte {
	return crypto.Ripemd160(convert.ToBytes(assetID))
}

// getAsset returns asset by ID. It panics with ErrNotFound if there is no
// such asset.
func getAsset(ctx storage.Context, assetID int) Asset {
	if assetID < 0 || assetID >= getTotalAssets(ctx) {
		panic(ErrNotFound)
	}

	data := storage.Get(ctx, append([]byte{prefixAsset}, getAssetKey(assetID)...))
	if data == nil {
		panic(ErrNotFound)
	}
	return std.Deserialize(data.([]byte)).(Asset)
}

// putAsset stores the asset.
func putAsset(ctx storage.Context, a Asset) {
	common.SetSerialized(ctx, append([]byte{prefixAsset}, getAssetKey(a.ID)...), a)
}

func authorizedPrefix(assetID int) []byte {
	return append([]byte{prefixAuthorized}, getAssetKey(assetID)...)
}

func authorizedKey(assetID int, user interop.Hash160) []byte {
	return append(authorizedPrefix(assetID), user...)
}

// getAuthorizedUsers returns explicitly authorized accounts of the asset.
func getAuthorizedUsers(ctx storage.Context, assetID int) []interop.Hash160 {
	res := []interop.Hash160{}
	it := storage.Find(ctx, authorizedPrefix(assetID), storage.KeysOnly|storage.RemovePrefix)
	for iterator.Next(it) {
		res = append(res, iterator.Value(it).(interop.Hash160))
	}
	return res
}

func ownedKey(owner interop.Hash160) []byte {
	return append([]byte{prefixOwned}, owner...)
}

func createdKey(creator interop.Hash160) []byte {
	return append([]byte{prefixCreated}, creator...)
}

// appendID appends asset ID to the list stored by the key.
func appendID(ctx storage.Context, key []byte, assetID int) {
	ids := common.GetIntList(ctx, key)
	ids = append(ids, assetID)
	common.SetSerialized(ctx, key, ids)
}

// removeID removes the first occurrence of asset ID from the list stored by
// the key. The last element takes place of the removed one.
func removeID(ctx storage.Context, key []byte, assetID int) {
	ids := common.GetIntList(ctx, key)
	for i := 0; i < len(ids); i++ {
		if ids[i] == assetID {
			last := len(ids) - 1
			ids[i] = ids[last]
			util.Remove(ids, last)
			break
		}
	}

	if len(ids) == 0 {
		storage.Delete(ctx, key)
		return
	}
	common.SetSerialized(ctx, key, ids)
}

// checkMetadata panics if any of text fields exceeds the limit.
func checkMetadata(name, description, assetURI string) {
	if len(name) > maxTextLength || len(description) > maxTextLength || len(assetURI) > maxTextLength {
		panic(ErrInvalidArgument + ": text field is too long")
	}
}

// isValidAccount returns true if the provided address is a valid non-zero
// Uint160.
func isValidAccount(address interop.Hash160) bool {
	if address == nil || len(address) != interop.Hash160Len {
		return false
	}
	for i := 0; i < len(address); i++ {
		if address[i] != 0 {
			return true
		}
	}
	return false
}
