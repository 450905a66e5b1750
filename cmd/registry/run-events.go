package main

import (
	"encoding/hex"
	"fmt"

	"github.com/nspcc-dev/asset-registry-contract/rpc/registry"
	"github.com/nspcc-dev/neo-go/pkg/core/state"
	"github.com/nspcc-dev/neo-go/pkg/encoding/address"
	"github.com/nspcc-dev/neo-go/pkg/neorpc/result"
	"github.com/nspcc-dev/neo-go/pkg/util"
	"github.com/urfave/cli"
)

type eventView struct {
	Event       string `json:"event"`
	AssetID     string `json:"assetId"`
	Creator     string `json:"creator,omitempty"`
	ContentHash string `json:"contentHash,omitempty"`
	From        string `json:"from,omitempty"`
	To          string `json:"to,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	URI         string `json:"uri,omitempty"`
	User        string `json:"user,omitempty"`
}

func runEvents(c *cli.Context) error {
	m := getMetadata(c)

	a, err := args(c, 1)
	if err != nil {
		return err
	}

	txHash, err := parseTxHash(a[0])
	if err != nil {
		return err
	}

	contract, err := m.contractAddress()
	if err != nil {
		return err
	}

	client, err := m.newClient()
	if err != nil {
		return err
	}
	defer client.Close()

	log, err := client.GetApplicationLog(txHash, nil)
	if err != nil {
		return fmt.Errorf("get application log: %w", err)
	}

	events, err := registryEvents(log, contract)
	if err != nil {
		return err
	}

	return printJSON(m.w, events)
}

// registryEvents decodes notifications thrown by the given registry contract
// within the transaction. Events of the same kind go together.
func registryEvents(log *result.ApplicationLog, contract util.Uint160) ([]eventView, error) {
	filtered := *log
	filtered.Executions = make([]state.Execution, len(log.Executions))
	for i, ex := range log.Executions {
		filtered.Executions[i] = ex
		filtered.Executions[i].Events = nil
		for _, e := range ex.Events {
			if e.ScriptHash.Equals(contract) {
				filtered.Executions[i].Events = append(filtered.Executions[i].Events, e)
			}
		}
	}

	var res []eventView

	registered, err := registry.AssetRegisteredEventsFromApplicationLog(&filtered)
	if err != nil {
		return nil, err
	}
	for _, e := range registered {
		res = append(res, eventView{
			Event:       "AssetRegistered",
			AssetID:     e.AssetID.String(),
			Creator:     address.Uint160ToString(e.Creator),
			ContentHash: hex.EncodeToString(e.ContentHash),
		})
	}

	transferred, err := registry.AssetTransferredEventsFromApplicationLog(&filtered)
	if err != nil {
		return nil, err
	}
	for _, e := range transferred {
		res = append(res, eventView{
			Event:   "AssetTransferred",
			AssetID: e.AssetID.String(),
			From:    address.Uint160ToString(e.From),
			To:      address.Uint160ToString(e.To),
		})
	}

	updated, err := registry.AssetMetadataUpdatedEventsFromApplicationLog(&filtered)
	if err != nil {
		return nil, err
	}
	for _, e := range updated {
		res = append(res, eventView{
			Event:       "AssetMetadataUpdated",
			AssetID:     e.AssetID.String(),
			Name:        e.Name,
			Description: e.Description,
			URI:         e.AssetURI,
		})
	}

	authorized, err := registry.UserAuthorizedEventsFromApplicationLog(&filtered)
	if err != nil {
		return nil, err
	}
	for _, e := range authorized {
		res = append(res, eventView{
			Event:   "UserAuthorized",
			AssetID: e.AssetID.String(),
			User:    address.Uint160ToString(e.User),
		})
	}

	deauthorized, err := registry.UserDeauthorizedEventsFromApplicationLog(&filtered)
	if err != nil {
		return nil, err
	}
	for _, e := range deauthorized {
		res = append(res, eventView{
			Event:   "UserDeauthorized",
			AssetID: e.AssetID.String(),
			User:    address.Uint160ToString(e.User),
		})
	}

	return res, nil
}
