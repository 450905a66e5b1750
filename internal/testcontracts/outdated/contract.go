package outdated

import (
	"github.com/nspcc-dev/asset-registry-contract/common"
	"github.com/nspcc-dev/neo-go/pkg/interop"
	"github.com/nspcc-dev/neo-go/pkg/interop/contract"
	"github.com/nspcc-dev/neo-go/pkg/interop/native/management"
	"github.com/nspcc-dev/neo-go/pkg/interop/storage"
)

// version precedes the current registry version.
const version = common.Version - 1

func _deploy(_ any, isUpdate bool) {
	if isUpdate {
		return
	}
	storage.Put(storage.GetContext(), []byte{0x00}, 0)
}

func Update(nef []byte, manifest string, _ any) {
	common.CheckCommittee()
	contract.Call(interop.Hash160(management.Hash), "update",
		contract.All, nef, manifest, []any{version})
}

func Version() int {
	return version
}
