// Address display: the wallet locks and spends UTXOs by raw public key
// (see pkg/wallet), so the only thing an address is for here is a
// human-readable label to hand someone wanting to be paid — there is no
// scriptPubKey for a locking hash to feed, and so no need to ever decode
// one back.
package keys

import "github.com/pouria-shahmiri/pow-lightclients/pkg/encoding"

// AddressTypeP2PKH is the version byte for a Pay-to-PubKey-Hash address.
const AddressTypeP2PKH byte = 0x00

// P2PKHAddress renders the public key's Hash160 as a Base58Check
// address string.
func (pub *PublicKey) P2PKHAddress() string {
	return encoding.EncodeBase58Check(AddressTypeP2PKH, pub.Hash160())
}