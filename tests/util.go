package tests

import (
	"path"
	"testing"

	"github.com/nspcc-dev/neo-go/pkg/core/interop/storage"
	"github.com/nspcc-dev/neo-go/pkg/neotest"
	"github.com/nspcc-dev/neo-go/pkg/neotest/chain"
	"github.com/nspcc-dev/neo-go/pkg/vm"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

const registryPath = "../registry"

func newExecutor(t *testing.T) *neotest.Executor {
	bc, acc := chain.NewSingle(t)
	return neotest.NewExecutor(t, bc, acc, acc)
}

// deployRegistry compiles the registry contract from source and deploys it
// on behalf of the committee.
func deployRegistry(t *testing.T, e *neotest.Executor) *neotest.Contract {
	ctr := neotest.CompileFile(t, e.CommitteeHash, registryPath, path.Join(registryPath, "config.yml"))
	e.DeployContract(t, ctr, nil)
	return ctr
}

// popIteratorItems pops storage iterator returned by a contract method from
// the stack and reads all its values.
func popIteratorItems(t *testing.T, s *vm.Stack) []stackitem.Item {
	iter, ok := s.Pop().Value().(*storage.Iterator)
	require.True(t, ok, "not a storage iterator")

	res := make([]stackitem.Item, 0)
	for iter.Next() {
		res = append(res, iter.Value())
	}
	return res
}
