// Command nipopowclient is an interactive demo of NiPoPoW
// verification: it mines a small blockchain, pins a NiPoPoW client to
// the chain's current top superchain, and lets the user submit
// transaction ids to verify against an infix proof
// (original_source/src/nipopow_client.py's __main__ block).
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
	"github.com/pouria-shahmiri/pow-lightclients/pkg/monitoring"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/nipopow"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/types"
	"github.com/pouria-shahmiri/pow-lightclients/pkg/wallet"
)

// client is the NiPoPoW light client's own state: the superchain and
// genesis it pinned its trust to, and the k/m parameters that pinning
// was made under (nipopow_client.py's NiPoPow_Client).
type client struct {
	fn         *fullnode.FullNode
	level      int
	superchain []*types.Block
	genesis    *types.Block
	k, m       int
	metrics    *monitoring.Metrics
}

func (c *client) printSuperchain() {
	fmt.Printf("Stored headers: top superchain level %d, %d blocks (genesis %s)\n", c.level, len(c.superchain), c.genesis.BlockHash())
}

func (c *client) verifyTransaction(txID types.Digest) {
	proof, err := c.fn.GetNiPoPoWProof(txID, c.k, c.m)
	if err != nil {
		fmt.Printf("\t%v\n\n", err)
		c.metrics.RecordNiPoPoWVerdict(false, 0, 0)
		return
	}

	if err := nipopow.VerifyInfix(proof, c.genesis.BlockHash(), c.fn.Chain.Target, c.k, c.m, c.superchain); err != nil {
		fmt.Printf("\tProof rejected: %v\n\n", err)
		c.metrics.RecordNiPoPoWVerdict(false, len(proof.Suffix.Suffix), len(proof.Path))
		return
	}

	fmt.Printf("\tTransaction %s verified by NiPoPoW proof (suffix=%d blocks, path=%d blocks)\n\n",
		txID, len(proof.Suffix.Suffix), len(proof.Path))
	c.metrics.RecordNiPoPoWVerdict(true, len(proof.Suffix.Suffix), len(proof.Path))
}

func main() {
	fmt.Println("---------------------------------------------------------------------")
	fmt.Println("Non Interactive Proof of Proof of Work Client Simulation")
	fmt.Println("---------------------------------------------------------------------")

	reader := bufio.NewReader(os.Stdin)
	cfg := config.DefaultConfig()

	fmt.Print("How many blocks would you like the blockchain to contain:\n$\t")
	if n, err := readUint(reader); err == nil {
		cfg.NumBlocks = n
	}

	w := wallet.NewWallet()
	chain, err := blockchain.Generate(cfg, w)
	if err != nil {
		fmt.Printf("Could not generate blockchain: %v\n", err)
		os.Exit(1)
	}

	fn := fullnode.New(chain)
	c := &client{
		fn:      fn,
		genesis: chain.Genesis(),
		k:       cfg.K,
		m:       cfg.M,
		metrics: monitoring.GetGlobalMetrics(),
	}
	c.level, c.superchain = fn.GetTopChain(c.k, c.m)

	fmt.Println("---------------------------------------------------------------------")
	fmt.Println("Blockchain Generated,")
	fmt.Println("To view a list of transactions in the blockchain, type 'l' or 'LIST'")
	fmt.Println("---------------------------------------------------------------------")
	c.printSuperchain()
	fmt.Println("---------------------------------------------------------------------")

	for {
		fmt.Print(`Enter Transaction to be verified by NiPoPoW client, enter "HELP" for help, or "QUIT" to exit:` + "\n$\t")
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
		case "HEADER", "HEADERS", "HEAD":
			c.printSuperchain()
		case "HELP", "H":
			printHelp()
		case "":
			continue
		default:
			id, err := types.NewDigestFromString(cmd)
			if err != nil {
				fmt.Printf("\tCould not parse transaction id %s\n\n", cmd)
				continue
			}
			c.verifyTransaction(id)
		}
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
	fmt.Println("\t\tNiPoPoW Verification Simulation")
	fmt.Println()
	fmt.Println("This system simulates the interaction between a light client and a")
	fmt.Println("full node. On startup, a blockchain is generated with your")
	fmt.Println("specifications. Once it is generated, enter a transaction id to")
	fmt.Println("verify it through the NiPoPoW client.")
	fmt.Println()
	fmt.Println("To verify a transaction, enter 'l'/'LIST' and copy/paste any")
	fmt.Println("transaction id")
	fmt.Println("---------------------------------------------------------------------")
	fmt.Println("Commands:")
	fmt.Println("\n\t'HELP'/'h':\n\t\t- Brings up the help screen")
	fmt.Println("\n\t'LIST'/'l':\n\t\t- Lists all blocks and their transaction IDs")
	fmt.Println("\n\t'QUIT'/'q':\n\t\t- Closes the program")
	fmt.Println("\n\t'STORE'/'s':\n\t\t- Store the blockchain in a file titled 'blockchain.txt'")
	fmt.Println("\n\t'HEADER'/'head':\n\t\t- Prints the superchain pinned by the NiPoPoW client")
	fmt.Println("---------------------------------------------------------------------")
}

func readUint(r *bufio.Reader) (uint64, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		return 0, err
	}
	return strconv.ParseUint(strings.TrimSpace(line), 10, 64)
}
