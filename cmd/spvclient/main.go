// Command spvclient is an interactive demo of Simple Payment
// Verification: it mines a small blockchain, then lets the user submit
// transaction ids to verify against an SPV light client that never
// trusts the full node's own say-so (original_source/src/spv.py's
// simulation()).
package main

import (
	"bufio"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/pouria-shahmiri/pow-lightclients/pkg/blockchain"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/config"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/fullnode"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/spv"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/wallet"
)

func main() {
	fmt.Println("---------------------------------------------------------------------")
	fmt.Println("Simple Payment Verification Simulation")
	fmt.Println("---------------------------------------------------------------------")

	reader := bufio.NewReader(os.Stdin)
	cfg := config.DefaultConfig()

	fmt.Print("How many blocks would you like the blockchain to contain:\n$\t")
	if n, err := readUint(reader); err == nil {
		cfg.NumBlocks = n
	}
	fmt.Print("What would you like the coinbase to be:\n$\t")
	if n, err := readUint(reader); err == nil {
		cfg.Coinbase = int64(n)
	}

	w := wallet.NewWallet()
	chain, err := blockchain.Generate(cfg, w)
	if err != nil {
		fmt.Printf("Could not generate blockchain: %v\n", err)
		os.Exit(1)
	}

	fn := fullnode.New(chain)
	client := spv.NewClient(fn)

	fmt.Println("---------------------------------------------------------------------")
	fmt.Println("Blockchain Generated,")
	fmt.Println("To view a list of transactions in the blockchain, type 'l' or 'LIST'")
	fmt.Println("---------------------------------------------------------------------")

	for {
		fmt.Print(`Enter Transaction to be verified by SPV, enter "HELP" for help, or "QUIT" to exit:` + "\n$\t")
		line, err := reader.ReadString('\n')
		if err != nil {
			return
		}
		cmd := strings.TrimSpace(line)

		switch strings.ToUpper(cmd) {
		case "EXIT", "QUIT", "Q":
			return
		case "LIST", "L":
			printTransactions(fn)
		case "STORE", "S":
			if err := fn.DumpTransactions("blockchain.txt"); err != nil {
				fmt.Printf("Could not store blockchain: %v\n", err)
			} else {
				fmt.Println("Stored blockchain to blockchain.txt")
			}
		case "HELP", "H":
			printHelp()
		case "":
			continue
		default:
			verify(client, cmd)
		}
	}
}

func verify(client *spv.Client, txID string) {
	id, err := parseDigest(txID)
	fmt.Println("\n|SPV Wallet|")
	if err != nil {
		fmt.Printf("\tCould not find Transaction %s\n\n", txID)
		return
	}

	ok, err := client.VerifyTransaction(id)
	if err != nil {
		fmt.Printf("\t%v\n\n", err)
		return
	}
	if ok {
		fmt.Printf("\tHashed value matches stored block root,\n")
		fmt.Printf("\tTransaction %s verified by SPV\n\n", txID)
	}
}

func printTransactions(fn *fullnode.FullNode) {
	for _, block := range fn.Chain.Blocks() {
		fmt.Printf("Block %d (%s):\n", block.Height(), block.BlockHash())
		for _, tx := range block.Txs {
			fmt.Printf("  %s\n", tx.TxID())
		}
	}
}

func printHelp() {
	fmt.Println("---------------------------------------------------------------------")
	fmt.Println("\t\tSimple Payment Verification Simulation")
	fmt.Println()
	fmt.Println("This system simulates the interaction between a light client and a")
	fmt.Println("full node. On startup, a blockchain is generated with your")
	fmt.Println("specifications. Once it is generated, enter a transaction id to")
	fmt.Println("verify it through the SPV client.")
	fmt.Println()
	fmt.Println("To verify a transaction, enter 'l'/'LIST' and copy/paste any")
	fmt.Println("transaction id")
	fmt.Println("---------------------------------------------------------------------")
	fmt.Println("Commands:")
	fmt.Println("\n\t'HELP'/'h':\n\t\t- Brings up the help screen")
	fmt.Println("\n\t'LIST'/'l':\n\t\t- Lists all blocks and their transaction IDs")
	fmt.Println("\n\t'QUIT'/'q':\n\t\t- Closes the program")
	fmt.Println("\n\t'STORE'/'s':\n\t\t- Store the blockchain in a file titled 'blockchain.txt'")
	fmt.Println("---------------------------------------------------------------------")
}

func readUint(r *bufio.Reader) (uint64, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(line), 10, 64)
}

func parseDigest(s string) (types.Digest, error) {
	return types.NewDigestFromString(strings.TrimSpace(s))
}
