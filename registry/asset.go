package registry

import "github.com/nspcc-dev/neo-go/pkg/interop"

// Asset is a registered asset record saved in the contract storage.
type Asset struct {
	ID          int
	Name        string
	Description string
	URI         string
	ContentHash []byte
	// CreationTime and LastTransferTime are block timestamps in milliseconds.
	CreationTime     int
	Creator          interop.Hash160
	Owner            interop.Hash160
	Transferable     bool
	LastTransferTime int
}

// AssetDetails is a full snapshot of the asset returned by GetAssetDetails.
// It extends Asset with the list of explicitly authorized accounts.
type AssetDetails struct {
	ID               int
	Name             string
	Description      string
	URI              string
	ContentHash      []byte
	CreationTime     int
	Creator          interop.Hash160
	Owner            interop.Hash160
	Transferable     bool
	LastTransferTime int
	AuthorizedUsers  []interop.Hash160
}
