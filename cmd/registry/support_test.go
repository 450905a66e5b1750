package main

import (
	"math/big"
	"os"
	"path/filepath"
	"testing"

	"github.com/mr-tron/base58"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/nspcc-dev/neo-go/pkg/vm/stackitem"
	"github.com/stretchr/testify/require"
)

func TestDecodeContentHash(t *testing.T) {
	hash := []byte{0xde, 0xad, 0xbe, 0xef}

	for _, tc := range []struct {
		in, encoding string
	}{
		{"deadbeef", encodingHex},
		{"0xdeadbeef", encodingHex},
		{"deadbeef", ""},
		{base58.Encode(hash), encodingBase58},
	} {
		b, err := decodeContentHash(tc.in, tc.encoding)
		require.NoError(t, err, tc)
		require.Equal(t, hash, b, tc)
	}

	b, err := decodeContentHash("", encodingBase58)
	require.NoError(t, err)
	require.Empty(t, b)

	_, err = decodeContentHash("xyz", encodingHex)
	require.Error(t, err)
	_, err = decodeContentHash("0OIl", encodingBase58)
	require.Error(t, err)
	_, err = decodeContentHash("deadbeef", "base64")
	require.Error(t, err)
}

func TestParseAccount(t *testing.T) {
	h := util.Uint160{1, 2, 3}

	got, err := parseAccount(address.Uint160ToString(h))
	require.NoError(t, err)
	require.Equal(t, h, got)

	got, err = parseAccount(h.StringLE())
	require.NoError(t, err)
	require.Equal(t, h, got)

	got, err = parseAccount("0x" + h.StringLE())
	require.NoError(t, err)
	require.Equal(t, h, got)

	_, err = parseAccount("alice")
	require.Error(t, err)
}

func TestParseAssetID(t *testing.T) {
	id, err := parseAssetID("42")
	require.NoError(t, err)
	require.EqualValues(t, 42, id.Int64())

	for _, s := range []string{"", "-1", "0x10", "one"} {
		_, err = parseAssetID(s)
		require.Error(t, err, s)
	}
}

func TestFormatTime(t *testing.T) {
	require.Equal(t, "1970-01-01T00:00:01Z", formatTime(big.NewInt(1000)))
	require.Empty(t, formatTime(nil))
}

func TestReadContract(t *testing.T) {
	dir := t.TempDir()

	_, err := readContract("", "manifest.json")
	require.Error(t, err)
	_, err = readContract("contract.nef", "")
	require.Error(t, err)
	_, err = readContract(filepath.Join(dir, "missing.nef"), filepath.Join(dir, "missing.json"))
	require.Error(t, err)

	nefPath := filepath.Join(dir, "contract.nef")
	require.NoError(t, os.WriteFile(nefPath, []byte("not a NEF"), 0600))
	_, err = readContract(nefPath, filepath.Join(dir, "missing.json"))
	require.Error(t, err)
}

func TestRegistryEvents(t *testing.T) {
	var (
		contract = util.Uint160{0xaa}
		other    = util.Uint160{0xbb}
		alice    = util.Uint160{0xa1}
		bob      = util.Uint160{0xb0}
	)

	notification := func(h util.Uint160, name string, items ...stackitem.Item) state.NotificationEvent {
		return state.NotificationEvent{ScriptHash: h, Name: name, Item: stackitem.NewArray(items)}
	}

	log := &result.ApplicationLog{Executions: []state.Execution{{Events: []state.NotificationEvent{
		notification(contract, "AssetRegistered",
			stackitem.Make(0), stackitem.NewByteArray(alice.BytesBE()), stackitem.NewByteArray([]byte{1, 2})),
		notification(other, "AssetTransferred", stackitem.Make("garbage")),
		notification(contract, "AssetTransferred",
			stackitem.Make(0), stackitem.NewByteArray(alice.BytesBE()), stackitem.NewByteArray(bob.BytesBE())),
		notification(contract, "UserAuthorized", stackitem.Make(0), stackitem.NewByteArray(alice.BytesBE())),
	}}}}

	events, err := registryEvents(log, contract)
	require.NoError(t, err)
	require.Equal(t, []eventView{
		{
			Event:       "AssetRegistered",
			AssetID:     "0",
			Creator:     address.Uint160ToString(alice),
			ContentHash: "0102",
		},
		{
			Event:   "AssetTransferred",
			AssetID: "0",
			From:    address.Uint160ToString(alice),
			To:      address.Uint160ToString(bob),
		},
		{
			Event:   "UserAuthorized",
			AssetID: "0",
			User:    address.Uint160ToString(alice),
		},
	}, events)

	// foreign notifications are not decoded at all
	_, err = registryEvents(log, other)
	require.Error(t, err)
}
