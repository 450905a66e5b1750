package dump

import (
	"errors"
	"fmt"
	"math/big"
	"slices"

	registryrpc "github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/neo-go/pkg/crypto/hash"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// Registry contract storage prefixes.
const (
	prefixTotalAssets = 0x00
	prefixAsset       = 0x01
	prefixAuthorized  = 0x02
	prefixOwned       = 0x03
	prefixCreated     = 0x04
)

// RegistryState is Asset Registry data decoded from the contract storage.
type RegistryState struct {
	// Total is the value of the asset counter.
	Total int64
	// Assets are indexed by their IDs.
	Assets map[int64]*registryrpc.RegistryAsset
	// Authorized contains explicitly authorized accounts per asset.
	Authorized map[int64][]util.Uint160
	// Owned and Created are account indexes as they are stored.
	Owned   map[util.Uint160][]int64
	Created map[util.Uint160][]int64
}

// assetKey returns storage key suffix of the asset with the given ID.
func assetKey(id int64) util.Uint160 {
	return hash.RipeMD160(bigint.ToBytes(big.NewInt(id)))
}

// ReadRegistry decodes storage of the named registry contract from the dump.
func ReadRegistry(r *Reader, name string) (*RegistryState, error) {
	items := r.ContractStorage(name)
	if len(items) == 0 {
		return nil, fmt.Errorf("no storage items of contract '%s'", name)
	}

	return DecodeRegistryStorage(items)
}

// DecodeRegistryStorage decodes raw storage items of the registry contract.
// Authorization records are bound to assets by their keys, so assets must be
// present for them.
func DecodeRegistryStorage(items []KeyValue) (*RegistryState, error) {
	s := &RegistryState{
		Assets:     make(map[int64]*registryrpc.RegistryAsset),
		Authorized: make(map[int64][]util.Uint160),
		Owned:      make(map[util.Uint160][]int64),
		Created:    make(map[util.Uint160][]int64),
	}

	var (
		counterFound bool
		assetKeys    = make(map[util.Uint160]int64)
		grants       []KeyValue
	)

	for i := range items {
		k, v := items[i].Key, items[i].Value
		if len(k) == 0 {
			return nil, errors.New("empty storage key")
		}

		switch k[0] {
		case prefixTotalAssets:
			if len(k) != 1 {
				return nil, fmt.Errorf("invalid counter key length %d", len(k))
			}
			s.Total = bigint.FromBytes(v).Int64()
			counterFound = true
		case prefixAsset:
			a, err := decodeAsset(v)
			if err != nil {
				return nil, fmt.Errorf("asset item #%d: %w", i, err)
			}

			id := a.ID.Int64()
			key := assetKey(id)
			if !slices.Equal(k[1:], key.BytesBE()) {
				return nil, fmt.Errorf("asset %d is stored by the wrong key %x", id, k)
			}
			s.Assets[id] = a
			assetKeys[key] = id
		case prefixAuthorized:
			grants = append(grants, items[i])
		case prefixOwned, prefixCreated:
			acc, err := util.Uint160DecodeBytesBE(k[1:])
			if err != nil {
				return nil, fmt.Errorf("index item #%d: decode account: %w", i, err)
			}

			ids, err := decodeIDList(v)
			if err != nil {
				return nil, fmt.Errorf("index item #%d: %w", i, err)
			}

			if k[0] == prefixOwned {
				s.Owned[acc] = ids
			} else {
				s.Created[acc] = ids
			}
		default:
			return nil, fmt.Errorf("unknown storage prefix 0x%02x", k[0])
		}
	}

	if !counterFound {
		return nil, errors.New("missing asset counter")
	}

	for i := range grants {
		k := grants[i].Key
		if len(k) != 1+2*util.Uint160Size {
			return nil, fmt.Errorf("invalid authorization key length %d", len(k))
		}

		key, _ := util.Uint160DecodeBytesBE(k[1 : 1+util.Uint160Size])
		id, ok := assetKeys[key]
		if !ok {
			return nil, fmt.Errorf("authorization of the unknown asset key %s", key.StringBE())
		}

		user, _ := util.Uint160DecodeBytesBE(k[1+util.Uint160Size:])
		s.Authorized[id] = append(s.Authorized[id], user)
	}

	return s, nil
}

func decodeAsset(b []byte) (*registryrpc.RegistryAsset, error) {
	item, err := stackitem.Deserialize(b)
	if err != nil {
		return nil, fmt.Errorf("deserialize: %w", err)
	}

	assets, err := registryrpc.ItemsToAssets([]stackitem.Item{item})
	if err != nil {
		return nil, err
	}
	return assets[0], nil
}

func decodeIDList(b []byte) ([]int64, error) {
	item, err := stackitem.Deserialize(b)
	if err != nil {
		return nil, fmt.Errorf("deserialize: %w", err)
	}

	arr, ok := item.Value().([]stackitem.Item)
	if !ok {
		return nil, errors.New("not an array")
	}

	res := make([]int64, len(arr))
	for i := range arr {
		n, err := arr[i].TryInteger()
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		res[i] = n.Int64()
	}
	return res, nil
}

// Check verifies consistency of the registry data:
//   - IDs are exactly [0, Total)
//   - each asset is listed once in the owned index and by its owner only
//   - each asset is listed in the created index of its creator in
//     ascending order of IDs
//   - explicitly authorized accounts are unique per asset
//
// All found violations are returned joined.
func (s *RegistryState) Check() error {
	var errs []error

	if int64(len(s.Assets)) != s.Total {
		errs = append(errs, fmt.Errorf("counter is %d, but there are %d assets", s.Total, len(s.Assets)))
	}
	for id := range s.Assets {
		if id < 0 || id >= s.Total {
			errs = append(errs, fmt.Errorf("asset %d is out of counter range", id))
		}
	}

	listed := make(map[int64]util.Uint160)
	for owner, ids := range s.Owned {
		if len(ids) == 0 {
			errs = append(errs, fmt.Errorf("empty owned list of %s is stored", owner.StringLE()))
		}
		for _, id := range ids {
			a, ok := s.Assets[id]
			if !ok {
				errs = append(errs, fmt.Errorf("%s owns unknown asset %d", owner.StringLE(), id))
				continue
			}
			if prev, ok := listed[id]; ok {
				errs = append(errs, fmt.Errorf("asset %d is listed twice (%s, %s)", id, prev.StringLE(), owner.StringLE()))
			}
			listed[id] = owner
			if !a.Owner.Equals(owner) {
				errs = append(errs, fmt.Errorf("asset %d is owned by %s, but listed by %s", id, a.Owner.StringLE(), owner.StringLE()))
			}
		}
	}

	for id, a := range s.Assets {
		if _, ok := listed[id]; !ok {
			errs = append(errs, fmt.Errorf("asset %d is missing in the owned index", id))
		}
		if !slices.Contains(s.Created[a.Creator], id) {
			errs = append(errs, fmt.Errorf("asset %d is missing in the created index of %s", id, a.Creator.StringLE()))
		}
	}

	for creator, ids := range s.Created {
		if !slices.IsSorted(ids) {
			errs = append(errs, fmt.Errorf("created index of %s is not ordered", creator.StringLE()))
		}
		for _, id := range ids {
			a, ok := s.Assets[id]
			if !ok || !a.Creator.Equals(creator) {
				errs = append(errs, fmt.Errorf("asset %d is not created by %s", id, creator.StringLE()))
			}
		}
	}

	for id, users := range s.Authorized {
		seen := make(map[util.Uint160]struct{}, len(users))
		for _, u := range users {
			if _, ok := seen[u]; ok {
				errs = append(errs, fmt.Errorf("asset %d has duplicated authorization of %s", id, u.StringLE()))
			}
			seen[u] = struct{}{}
		}
	}

	return errors.Join(errs...)
}
