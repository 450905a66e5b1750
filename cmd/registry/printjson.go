package main

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"math/big"
	"time"

	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/util"
)

func printJSON(handle io.Writer, message any) error {
	b, err := json.MarshalIndent(message, "", "  ")
	if err != nil {
		return err
	}

	fmt.Fprintf(handle, "%s\n", b)
	return nil
}

type assetView struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Description      string   `json:"description"`
	URI              string   `json:"uri"`
	ContentHash      string   `json:"contentHash"`
	CreationTime     string   `json:"creationTime"`
	Creator          string   `json:"creator"`
	Owner            string   `json:"owner"`
	Transferable     bool     `json:"transferable"`
	LastTransferTime string   `json:"lastTransferTime"`
	AuthorizedUsers  []string `json:"authorizedUsers,omitempty"`
}

func newAssetView(a *registry.RegistryAsset) assetView {
	return assetView{
		ID:               a.ID.String(),
		Name:             a.Name,
		Description:      a.Description,
		URI:              a.URI,
		ContentHash:      hex.EncodeToString(a.ContentHash),
		CreationTime:     formatTime(a.CreationTime),
		Creator:          address.Uint160ToString(a.Creator),
		Owner:            address.Uint160ToString(a.Owner),
		Transferable:     a.Transferable,
		LastTransferTime: formatTime(a.LastTransferTime),
	}
}

func newAssetDetailsView(d *registry.RegistryAssetDetails) assetView {
	v := newAssetView(&registry.RegistryAsset{
		ID:               d.ID,
		Name:             d.Name,
		Description:      d.Description,
		URI:              d.URI,
		ContentHash:      d.ContentHash,
		CreationTime:     d.CreationTime,
		Creator:          d.Creator,
		Owner:            d.Owner,
		Transferable:     d.Transferable,
		LastTransferTime: d.LastTransferTime,
	})
	v.AuthorizedUsers = addresses(d.AuthorizedUsers)
	return v
}

// formatTime formats block timestamp given in milliseconds.
func formatTime(ms *big.Int) string {
	if ms == nil || !ms.IsInt64() {
		return ""
	}
	return time.UnixMilli(ms.Int64()).UTC().Format(time.RFC3339)
}

func addresses(hs []util.Uint160) []string {
	res := make([]string, len(hs))
	for i := range hs {
		res[i] = address.Uint160ToString(hs[i])
	}
	return res
}

func ids(list []*big.Int) []string {
	res := make([]string, len(list))
	for i := range list {
		res[i] = list[i].String()
	}
	return res
}
