package spv

import "errors"

// ErrTxNotFound is returned when the full node has no record of the
// transaction id an SPV client asked to verify.
var ErrTxNotFound = errors.New("spv: transaction not found by full node")

// ErrRootMismatch is returned when a rehashed Merkle path does not equal
// the Merkle root stored in the transaction's claimed block header.
var ErrRootMismatch = errors.New("spv: merkle path does not match stored block root")

// ErrUnknownHeader is returned when the claimed block height has no
// corresponding stored header.
var ErrUnknownHeader = errors.New("spv: no stored header at claimed height")
