package registry

import (
	"errors"
	"math/big"
	"testing"

	"github.com/google/uuid"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

type testInv struct {
	err error
	res *result.Invoke

	// per-method results of Call, res is used for missing ones
	calls       map[string]*result.Invoke
	expanded    *result.Invoke
	expandedNum int

	pages      [][]stackitem.Item
	traversed  int
	terminated []uuid.UUID
}

func (t *testInv) Call(contract util.Uint160, operation string, params ...any) (*result.Invoke, error) {
	if r, ok := t.calls[operation]; ok {
		return r, t.err
	}
	return t.res, t.err
}

func (t *testInv) CallAndExpandIterator(contract util.Uint160, operation string, i int, params ...any) (*result.Invoke, error) {
	t.expandedNum = i
	if t.expanded != nil {
		return t.expanded, t.err
	}
	return t.res, t.err
}

func (t *testInv) TraverseIterator(uuid.UUID, *result.Iterator, int) ([]stackitem.Item, error) {
	if t.traversed >= len(t.pages) {
		return nil, nil
	}
	t.traversed++
	return t.pages[t.traversed-1], nil
}

func (t *testInv) TerminateSession(id uuid.UUID) error {
	t.terminated = append(t.terminated, id)
	return nil
}

func assetItem(id int64, owner util.Uint160) stackitem.Item {
	return stackitem.NewStruct([]stackitem.Item{
		stackitem.Make(id),
		stackitem.Make("name"),
		stackitem.Make("description"),
		stackitem.Make("ipfs://asset"),
		stackitem.NewByteArray([]byte{0xde, 0xad}),
		stackitem.Make(1700000000000),
		stackitem.NewByteArray(util.Uint160{1}.BytesBE()),
		stackitem.NewByteArray(owner.BytesBE()),
		stackitem.NewBool(true),
		stackitem.Make(0),
	})
}

func TestItemsToAssets(t *testing.T) {
	owner := util.Uint160{2, 3}

	res, err := ItemsToAssets([]stackitem.Item{assetItem(0, owner), assetItem(1, owner)})
	require.NoError(t, err)
	require.Len(t, res, 2)
	require.EqualValues(t, 1, res[1].ID.Int64())
	require.Equal(t, "ipfs://asset", res[0].URI)
	require.Equal(t, []byte{0xde, 0xad}, res[0].ContentHash)
	require.Equal(t, util.Uint160{1}, res[0].Creator)
	require.Equal(t, owner, res[0].Owner)
	require.True(t, res[0].Transferable)

	_, err = ItemsToAssets([]stackitem.Item{stackitem.Null{}})
	require.Error(t, err)

	_, err = ItemsToAssets([]stackitem.Item{stackitem.Make(42)})
	require.Error(t, err)

	broken := assetItem(0, owner).Value().([]stackitem.Item)
	broken[6] = stackitem.NewByteArray([]byte{1, 2, 3})
	_, err = ItemsToAssets([]stackitem.Item{stackitem.NewStruct(broken)})
	require.ErrorContains(t, err, "field Creator")
}

func TestListAssets(t *testing.T) {
	var (
		sess   = uuid.New()
		iterID = uuid.New()
		owner  = util.Uint160{7}
	)

	t.Run("invocation error", func(t *testing.T) {
		ti := &testInv{err: errors.New("bad")}
		_, err := NewReader(ti, util.Uint160{1}).ListAssets(0)
		require.Error(t, err)
	})

	t.Run("session", func(t *testing.T) {
		ti := &testInv{
			res: &result.Invoke{
				State:   "HALT",
				Session: sess,
				Stack:   []stackitem.Item{stackitem.NewInterop(result.Iterator{ID: &iterID})},
			},
			pages: [][]stackitem.Item{
				{assetItem(0, owner), assetItem(1, owner)},
				{assetItem(2, owner)},
			},
		}
		res, err := NewReader(ti, util.Uint160{1}).ListAssets(2)
		require.NoError(t, err)
		require.Len(t, res, 3)
		for i := range res {
			require.Zero(t, res[i].ID.Cmp(big.NewInt(int64(i))))
		}
		require.Equal(t, []uuid.UUID{sess}, ti.terminated)
	})

	t.Run("exact batch", func(t *testing.T) {
		ti := &testInv{
			res: &result.Invoke{
				State:   "HALT",
				Session: sess,
				Stack:   []stackitem.Item{stackitem.NewInterop(result.Iterator{ID: &iterID})},
			},
			pages: [][]stackitem.Item{{assetItem(0, owner)}},
		}
		res, err := NewReader(ti, util.Uint160{1}).ListAssets(1)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.Equal(t, 1, ti.traversed)
		require.Equal(t, []uuid.UUID{sess}, ti.terminated)
	})

	t.Run("no sessions", func(t *testing.T) {
		ti := &testInv{
			res: &result.Invoke{
				State: "HALT",
				Stack: []stackitem.Item{stackitem.NewInterop(result.Iterator{
					Values: []stackitem.Item{assetItem(5, owner)},
				})},
			},
		}
		res, err := NewReader(ti, util.Uint160{1}).ListAssets(0)
		require.NoError(t, err)
		require.Len(t, res, 1)
		require.EqualValues(t, 5, res[0].ID.Int64())
		require.Empty(t, ti.terminated)
		require.Zero(t, ti.expandedNum)
	})

	t.Run("no sessions, truncated", func(t *testing.T) {
		ti := &testInv{
			calls: map[string]*result.Invoke{
				"assets": {
					State: "HALT",
					Stack: []stackitem.Item{stackitem.NewInterop(result.Iterator{
						Values:    []stackitem.Item{assetItem(0, owner)},
						Truncated: true,
					})},
				},
				"getTotalAssets": {
					State: "HALT",
					Stack: []stackitem.Item{stackitem.Make(3)},
				},
			},
			expanded: &result.Invoke{
				State: "HALT",
				Stack: []stackitem.Item{stackitem.NewArray([]stackitem.Item{
					assetItem(0, owner), assetItem(1, owner), assetItem(2, owner),
				})},
			},
		}
		res, err := NewReader(ti, util.Uint160{1}).ListAssets(0)
		require.NoError(t, err)
		require.Len(t, res, 3)
		require.Equal(t, 3, ti.expandedNum)
		require.EqualValues(t, 2, res[2].ID.Int64())
		require.Empty(t, ti.terminated)
	})

	t.Run("no sessions, truncated, total failure", func(t *testing.T) {
		ti := &testInv{
			calls: map[string]*result.Invoke{
				"assets": {
					State: "HALT",
					Stack: []stackitem.Item{stackitem.NewInterop(result.Iterator{
						Values:    []stackitem.Item{assetItem(0, owner)},
						Truncated: true,
					})},
				},
				"getTotalAssets": {
					State:          "FAULT",
					FaultException: "some error",
				},
			},
		}
		_, err := NewReader(ti, util.Uint160{1}).ListAssets(0)
		require.Error(t, err)
		require.Zero(t, ti.expandedNum)
	})
}

func TestGetAssetDetails(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.err = errors.New("bad")
	_, err := r.GetAssetDetails(big.NewInt(0))
	require.Error(t, err)

	ti.err = nil
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{assetItem(0, util.Uint160{})},
	}
	_, err = r.GetAssetDetails(big.NewInt(0))
	require.ErrorContains(t, err, "wrong number of structure elements")

	user := util.Uint160{9, 9}
	fields := assetItem(3, util.Uint160{4}).Value().([]stackitem.Item)
	fields = append(fields, stackitem.Make([]stackitem.Item{stackitem.NewByteArray(user.BytesBE())}))
	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{stackitem.NewStruct(fields)},
	}
	d, err := r.GetAssetDetails(big.NewInt(3))
	require.NoError(t, err)
	require.EqualValues(t, 3, d.ID.Int64())
	require.Equal(t, util.Uint160{4}, d.Owner)
	require.Equal(t, []util.Uint160{user}, d.AuthorizedUsers)
}

func TestIDLists(t *testing.T) {
	ti := new(testInv)
	r := NewReader(ti, util.Uint160{1, 2, 3})

	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{stackitem.Make([]stackitem.Item{stackitem.Make(4), stackitem.Make(1)})},
	}
	ids, err := r.GetOwnedAssets(util.Uint160{1})
	require.NoError(t, err)
	require.Equal(t, []*big.Int{big.NewInt(4), big.NewInt(1)}, ids)

	ti.res = &result.Invoke{
		State: "HALT",
		Stack: []stackitem.Item{stackitem.Make(5)},
	}
	_, err = r.GetCreatedAssets(util.Uint160{1})
	require.Error(t, err)

	ti.res = &result.Invoke{
		State:          "FAULT",
		FaultException: "at instruction 94 (THROW): unhandled exception: \"asset not found\"",
	}
	_, err = r.GetOwnedAssets(util.Uint160{1})
	require.ErrorIs(t, ParseFault(err), ErrNotFound)
}
