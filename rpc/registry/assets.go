package registry

import (
	"errors"
	"fmt"
	"math"

	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
)

// DefaultIteratorBatch is the number of items fetched per TraverseIterator
// call by ListAssets.
const DefaultIteratorBatch = 100

// ListAssets returns all assets stored in the contract in storage order. A
// session iterator is traversed in batches of the given size (DefaultIteratorBatch
// if non-positive). If the server doesn't support sessions, items embedded
// into the invocation result are used. When the server truncates them, the
// iterator is expanded in the VM for GetTotalAssets items instead.
func (c *ContractReader) ListAssets(batch int) ([]*RegistryAsset, error) {
	if batch <= 0 {
		batch = DefaultIteratorBatch
	}

	sess, iter, err := c.Assets()
	if err != nil {
		return nil, fmt.Errorf("open iterator: %w", err)
	}
	if iter.ID == nil {
		if !iter.Truncated {
			return ItemsToAssets(iter.Values)
		}
		return c.listAssetsExpanded()
	}
	defer func() { _ = c.invoker.TerminateSession(sess) }()

	var res []*RegistryAsset
	for {
		items, err := c.invoker.TraverseIterator(sess, &iter, batch)
		if err != nil {
			return nil, fmt.Errorf("traverse iterator: %w", err)
		}

		assets, err := ItemsToAssets(items)
		if err != nil {
			return nil, err
		}
		res = append(res, assets...)

		if len(items) < batch {
			return res, nil
		}
	}
}

func (c *ContractReader) listAssetsExpanded() ([]*RegistryAsset, error) {
	total, err := c.GetTotalAssets()
	if err != nil {
		return nil, fmt.Errorf("get total assets: %w", err)
	}
	if !total.IsInt64() || total.Int64() > math.MaxInt32 {
		return nil, fmt.Errorf("too many assets to expand: %s", total)
	}

	items, err := c.AssetsExpanded(int(total.Int64()))
	if err != nil {
		return nil, fmt.Errorf("expand iterator: %w", err)
	}

	return ItemsToAssets(items)
}

// ItemsToAssets decodes stack items produced by `assets` method (either via
// a session iterator or AssetsExpanded).
func ItemsToAssets(items []stackitem.Item) ([]*RegistryAsset, error) {
	res := make([]*RegistryAsset, 0, len(items))
	for i := range items {
		a, err := itemToRegistryAsset(items[i], nil)
		if err != nil {
			return nil, fmt.Errorf("item %d: %w", i, err)
		}
		if a == nil {
			return nil, fmt.Errorf("item %d: %w", i, errors.New("null asset"))
		}
		res = append(res, a)
	}
	return res, nil
}
