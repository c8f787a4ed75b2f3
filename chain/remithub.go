package chain

import (
	"math/big"
	"strings"

	"github.com/ethereum/go-ethereum/accounts/abi"
	"github.com/ethereum/go-ethereum/common"
	"github.com/ethereum/go-ethereum/core/types"

	log "github.com/sirupsen/logrus"
)

// remitHubABI covers only the RemittanceCreated event the verifier cares
// about; the rest of the hub contract is irrelevant to settlement.
const remitHubABI = `[
	{
		"anonymous": false,
		"inputs": [
			{ "indexed": true, "name": "remitId", "type": "bytes32" },
			{ "indexed": true, "name": "sender", "type": "address" },
			{ "indexed": false, "name": "receiver", "type": "address" },
			{ "indexed": false, "name": "token", "type": "address" },
			{ "indexed": false, "name": "amount", "type": "uint256" },
			{ "indexed": false, "name": "feeTaken", "type": "uint256" },
			{ "indexed": false, "name": "corridor", "type": "string" },
			{ "indexed": false, "name": "timestamp", "type": "uint256" }
		],
		"name": "RemittanceCreated",
		"type": "event"
	}
]`

const RemittanceCreatedEventName = "RemittanceCreated"

type remittanceCreated struct {
	Receiver  common.Address
	Token     common.Address
	Amount    *big.Int
	FeeTaken  *big.Int
	Corridor  string
	Timestamp *big.Int

	RemitId common.Hash
	Sender  common.Address
}

var hubABI abi.ABI

func init() {
	var err error
	hubABI, err = abi.JSON(strings.NewReader(remitHubABI))
	if err != nil {
		log.Fatal("[CHAIN] Error parsing remit hub abi: ", err)
	}
}

// parseRemittanceCreated scans the receipt logs for a RemittanceCreated
// event emitted by the hub contract. Returns nil if none is present.
func parseRemittanceCreated(receipt *types.Receipt, hubAddress common.Address) *remittanceCreated {
	eventID := hubABI.Events[RemittanceCreatedEventName].ID

	for _, eventLog := range receipt.Logs {
		if eventLog.Address != hubAddress {
			continue
		}
		if len(eventLog.Topics) < 3 || eventLog.Topics[0] != eventID {
			continue
		}

		var event remittanceCreated
		if err := hubABI.UnpackIntoInterface(&event, RemittanceCreatedEventName, eventLog.Data); err != nil {
			log.WithError(err).Debug("[CHAIN] Error unpacking remittance event")
			continue
		}
		event.RemitId = eventLog.Topics[1]
		event.Sender = common.BytesToAddress(eventLog.Topics[2].Bytes())
		return &event
	}

	return nil
}
