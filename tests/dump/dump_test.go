package dump

import (
	"math/big"
	"path/filepath"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/bigint"
	"github.com/nspcc-dev/neo-go/pkg/smartcontract/manifest"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestDumpRoundTrip(t *testing.T) {
	dir := t.TempDir()
	id := ID{Label: "privnet", Block: 42}

	c, err := NewCreator(dir, id)
	require.NoError(t, err)

	st := state.Contract{ContractBase: state.ContractBase{
		ID:       1,
		Hash:     util.Uint160{1, 2, 3},
		Manifest: *manifest.DefaultManifest("Asset Registry"),
	}}
	w := c.AddContract("registry", st)
	require.NoError(t, w.Write([]byte{0}, []byte{1}))
	require.NoError(t, w.Write([]byte{1, 2}, []byte("value")))
	require.NoError(t, c.Flush())
	c.Close()

	_, err = NewCreator(dir, id)
	require.Error(t, err)

	var visited []ID
	err = IterateDumps(dir, func(dumpID ID, r *Reader) error {
		visited = append(visited, dumpID)

		got, ok := r.ContractState("registry")
		require.True(t, ok)
		require.Equal(t, st.Hash, got.Hash)
		require.EqualValues(t, 1, got.ID)
		require.Equal(t, "Asset Registry", got.Manifest.Name)

		_, ok = r.ContractState("other")
		require.False(t, ok)

		var names []string
		r.IterateContractStates(func(name string, _ state.Contract) {
			names = append(names, name)
		})
		require.Equal(t, []string{"registry"}, names)

		require.Equal(t, []KeyValue{
			{Key: []byte{0}, Value: []byte{1}},
			{Key: []byte{1, 2}, Value: []byte("value")},
		}, r.ContractStorage("registry"))
		require.Empty(t, r.ContractStorage("other"))
		return nil
	})
	require.NoError(t, err)
	require.Equal(t, []ID{id}, visited)
}

func TestCreatorRegistry(t *testing.T) {
	dir := t.TempDir()
	id := ID{Label: "test", Block: 7}
	st := state.Contract{ContractBase: state.ContractBase{
		ID:       3,
		Manifest: *manifest.DefaultManifest("Asset Registry"),
	}}

	c, err := NewCreator(dir, id)
	require.NoError(t, err)

	require.NoError(t, c.AddRegistry(st, []KeyValue{
		{Key: []byte{3, 1}, Value: []byte{1}},
		{Key: []byte{0}, Value: []byte{}},
		{Key: []byte{1, 5}, Value: []byte{2}},
	}))
	require.Error(t, c.AddRegistry(st, nil))

	w := c.AddContract("other", st)
	require.NoError(t, w.Write([]byte{0}, []byte{9}))
	require.Error(t, w.Write([]byte{0}, []byte{10}))

	require.NoError(t, c.Flush())
	c.Close()

	err = IterateDumps(dir, func(_ ID, r *Reader) error {
		require.Equal(t, []KeyValue{
			{Key: []byte{0}, Value: []byte{}},
			{Key: []byte{1, 5}, Value: []byte{2}},
			{Key: []byte{3, 1}, Value: []byte{1}},
		}, r.ContractStorage(RegistryName))
		require.Equal(t, []KeyValue{{Key: []byte{0}, Value: []byte{9}}}, r.ContractStorage("other"))
		return nil
	})
	require.NoError(t, err)
}

func TestIterateDumpsMissingDir(t *testing.T) {
	err := IterateDumps(filepath.Join(t.TempDir(), "missing"), func(ID, *Reader) error {
		t.Fatal("must not be called")
		return nil
	})
	require.NoError(t, err)
}

func TestIDDecodeString(t *testing.T) {
	var id ID
	require.NoError(t, id.decodeString("testnet-100-contracts.json"))
	require.Equal(t, ID{Label: "testnet", Block: 100}, id)

	require.Error(t, id.decodeString("testnet"))
	require.Error(t, id.decodeString("testnet-block-contracts.json"))
	require.Error(t, id.decodeString("-1-contracts.json"))
}

type testAsset struct {
	id              int64
	creator, owner  util.Uint160
	authorizedUsers []util.Uint160
}

func assetValue(t *testing.T, a testAsset) []byte {
	b, err := stackitem.Serialize(stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(a.id),
		stackitem.Make("name"),
		stackitem.Make("description"),
		stackitem.Make("uri"),
		stackitem.NewByteArray([]byte{1, 2, 3}),
		stackitem.Make(1000),
		stackitem.NewByteArray(a.creator.BytesBE()),
		stackitem.NewByteArray(a.owner.BytesBE()),
		stackitem.NewBool(true),
		stackitem.Make(2000),
	}))
	require.NoError(t, err)
	return b
}

func idListValue(t *testing.T, ids ...int64) []byte {
	items := make([]stackitem.Item, len(ids))
	for i := range ids {
		items[i] = stackitem.Make(ids[i])
	}
	b, err := stackitem.Serialize(stackitem.NewArray(items))
	require.NoError(t, err)
	return b
}

// registryStorage builds storage of the registry contract with given assets
// and consistent indexes.
func registryStorage(t *testing.T, assets []testAsset) []KeyValue {
	res := []KeyValue{{Key: []byte{prefixTotalAssets}, Value: bigint.ToBytes(big.NewInt(int64(len(assets))))}}

	owned := make(map[util.Uint160][]int64)
	created := make(map[util.Uint160][]int64)
	for _, a := range assets {
		key := assetKey(a.id).BytesBE()
		res = append(res, KeyValue{Key: append([]byte{prefixAsset}, key...), Value: assetValue(t, a)})
		for _, u := range a.authorizedUsers {
			k := append([]byte{prefixAuthorized}, key...)
			res = append(res, KeyValue{Key: append(k, u.BytesBE()...), Value: []byte{1}})
		}
		owned[a.owner] = append(owned[a.owner], a.id)
		created[a.creator] = append(created[a.creator], a.id)
	}
	for acc, ids := range owned {
		res = append(res, KeyValue{Key: append([]byte{prefixOwned}, acc.BytesBE()...), Value: idListValue(t, ids...)})
	}
	for acc, ids := range created {
		res = append(res, KeyValue{Key: append([]byte{prefixCreated}, acc.BytesBE()...), Value: idListValue(t, ids...)})
	}
	return res
}

func TestDecodeRegistryStorage(t *testing.T) {
	var (
		alice = util.Uint160{0xa1}
		bob   = util.Uint160{0xb0}
		carol = util.Uint160{0xc0}
	)

	assets := []testAsset{
		{id: 0, creator: alice, owner: alice},
		{id: 1, creator: alice, owner: bob, authorizedUsers: []util.Uint160{carol}},
		{id: 2, creator: bob, owner: bob},
	}

	s, err := DecodeRegistryStorage(registryStorage(t, assets))
	require.NoError(t, err)
	require.NoError(t, s.Check())

	require.EqualValues(t, 3, s.Total)
	require.Len(t, s.Assets, 3)
	require.Equal(t, bob, s.Assets[1].Owner)
	require.Equal(t, alice, s.Assets[1].Creator)
	require.Equal(t, []util.Uint160{carol}, s.Authorized[1])
	require.Equal(t, []int64{0, 1}, s.Created[alice])
	require.ElementsMatch(t, []int64{1, 2}, s.Owned[bob])

	t.Run("via dump", func(t *testing.T) {
		dir := t.TempDir()
		c, err := NewCreator(dir, ID{Label: "test", Block: 1})
		require.NoError(t, err)
		w := c.AddContract("registry", state.Contract{ContractBase: state.ContractBase{
			Manifest: *manifest.DefaultManifest("Asset Registry"),
		}})
		for _, kv := range registryStorage(t, assets) {
			require.NoError(t, w.Write(kv.Key, kv.Value))
		}
		require.NoError(t, c.Flush())
		c.Close()

		err = IterateDumps(dir, func(_ ID, r *Reader) error {
			s, err := ReadRegistry(r, "registry")
			require.NoError(t, err)
			require.NoError(t, s.Check())

			_, err = ReadRegistry(r, "nns")
			require.Error(t, err)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("missing counter", func(t *testing.T) {
		_, err := DecodeRegistryStorage(registryStorage(t, assets)[1:])
		require.Error(t, err)
	})

	t.Run("unknown prefix", func(t *testing.T) {
		_, err := DecodeRegistryStorage(append(registryStorage(t, assets), KeyValue{Key: []byte{0x10}}))
		require.Error(t, err)
	})

	t.Run("asset under the wrong key", func(t *testing.T) {
		items := registryStorage(t, assets)
		items = append(items, KeyValue{
			Key:   append([]byte{prefixAsset}, assetKey(7).BytesBE()...),
			Value: assetValue(t, testAsset{id: 8, creator: alice, owner: alice}),
		})
		_, err := DecodeRegistryStorage(items)
		require.Error(t, err)
	})
}

func TestRegistryStateCheck(t *testing.T) {
	var (
		alice = util.Uint160{0xa1}
		bob   = util.Uint160{0xb0}
	)

	decode := func(t *testing.T, items []KeyValue) *RegistryState {
		s, err := DecodeRegistryStorage(items)
		require.NoError(t, err)
		return s
	}
	assets := []testAsset{
		{id: 0, creator: alice, owner: alice},
		{id: 1, creator: alice, owner: bob},
	}

	t.Run("asset listed by the previous owner", func(t *testing.T) {
		s := decode(t, registryStorage(t, assets))
		s.Owned[alice] = append(s.Owned[alice], 1)
		require.Error(t, s.Check())
	})

	t.Run("asset missing in owned index", func(t *testing.T) {
		s := decode(t, registryStorage(t, assets))
		delete(s.Owned, bob)
		require.Error(t, s.Check())
	})

	t.Run("counter mismatch", func(t *testing.T) {
		s := decode(t, registryStorage(t, assets))
		s.Total = 5
		require.Error(t, s.Check())
	})

	t.Run("unordered created index", func(t *testing.T) {
		s := decode(t, registryStorage(t, assets))
		s.Created[alice] = []int64{1, 0}
		require.Error(t, s.Check())
	})

	t.Run("stored empty list", func(t *testing.T) {
		s := decode(t, registryStorage(t, assets))
		s.Owned[util.Uint160{0xff}] = []int64{}
		require.Error(t, s.Check())
	})
}
