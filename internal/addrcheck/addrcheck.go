// Package addrcheck performs offline sanity checks on swap payout addresses
// before a swap is created.
package addrcheck

import (
	"fmt"
	"strings"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/btcsuite/btcd/chaincfg"
	"github.com/ethereum/go-ethereum/common"
	swingby "github.com/zenGate-Global/swingby-connector-go"
)

// Family groups currencies that share an address format.
type Family int

const (
	FamilyUnknown Family = iota
	FamilyBitcoin
	FamilyEthereum
)

// FamilyOf classifies a Swingby currency code. BEP2 and other chains are
// FamilyUnknown and are not checked.
func FamilyOf(currency string) Family {
	c := strings.ToUpper(strings.TrimSpace(currency))
	switch {
	case c == "BTC":
		return FamilyBitcoin
	case c == "ETH", c == "WBTC",
		strings.HasSuffix(c, ".ERC20"), strings.HasSuffix(c, "-ERC20"):
		return FamilyEthereum
	default:
		return FamilyUnknown
	}
}

// Check validates address as a payout address for currency. Addresses of
// unknown families always pass.
func Check(currency, address string, testnet bool) error {
	switch FamilyOf(currency) {
	case FamilyBitcoin:
		params := &chaincfg.MainNetParams
		if testnet {
			params = &chaincfg.TestNet3Params
		}
		decoded, err := btcutil.DecodeAddress(address, params)
		if err != nil {
			return fmt.Errorf(
				"%w: %q is not a %s bitcoin address: %v",
				swingby.ErrInvalidAddress,
				address,
				params.Name,
				err,
			)
		}
		// Bech32 decoding accepts any registered HRP.
		if !decoded.IsForNet(params) {
			return fmt.Errorf(
				"%w: %q is not a %s bitcoin address",
				swingby.ErrInvalidAddress,
				address,
				params.Name,
			)
		}
	case FamilyEthereum:
		if !strings.HasPrefix(address, "0x") || !common.IsHexAddress(address) {
			return fmt.Errorf(
				"%w: %q is not a 0x-prefixed ethereum address",
				swingby.ErrInvalidAddress,
				address,
			)
		}
	}
	return nil
}
