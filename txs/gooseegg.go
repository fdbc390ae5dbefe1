package txs

import (
	"fmt"

	"github.com/coldtrail/utxotx/ids"
)

// DefaultGooseEggThreshold is the multiple of oneAVAX past which a fee must
// also be justified by the transaction's own AVAX output total.
const DefaultGooseEggThreshold = 10

// CheckGooseEgg rejects a transaction whose fee is absurdly large relative
// to both a fixed multiple of oneAVAX and the transaction's own AVAX output
// total: it is accepted iff fee <= threshold*oneAVAX OR fee <= outputTotal.
func CheckGooseEgg(body Body, avaxAssetID ids.ID, fee, oneAVAX uint64, threshold uint64) error {
	if threshold == 0 {
		threshold = DefaultGooseEggThreshold
	}

	if fee <= threshold*oneAVAX {
		return nil
	}

	outputTotal := avaxOutputTotal(body, avaxAssetID)
	if fee <= outputTotal {
		return nil
	}

	return fmt.Errorf("%w: fee %d exceeds both %d*oneAVAX and output total %d", ErrGooseEgg, fee, threshold, outputTotal)
}

func avaxOutputTotal(body Body, avaxAssetID ids.ID) uint64 {
	var total uint64
	for _, out := range body.Base().Outs {
		if out.Asset != avaxAssetID {
			continue
		}
		if amt, ok := out.Out.Amount(); ok {
			total += amt
		}
	}
	return total
}
