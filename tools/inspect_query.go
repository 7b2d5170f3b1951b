package main

import (
	"encoding/hex"
	"fmt"
	"os"

	"dashboard/internal/anchor"
	"dashboard/internal/dashboard"

	"github.com/stellar/go/strkey"
)

// Prints how the dashboard would treat a lookup query, and the pointer hash
// of a document when given a provider ID and URL.
func main() {
	if len(os.Args) < 2 {
		fmt.Println("Usage: inspect_query <query> | inspect_query -anchor <provider_id> <url>")
		os.Exit(1)
	}

	if os.Args[1] == "-anchor" {
		if len(os.Args) != 4 {
			fmt.Println("Usage: inspect_query -anchor <provider_id> <url>")
			os.Exit(1)
		}
		fmt.Printf("%s\n", anchor.PointerHash(os.Args[2], os.Args[3]))
		return
	}

	query := os.Args[1]
	kind := dashboard.ClassifyQuery(query)
	fmt.Printf("kind: %s\n", kind)

	if kind != dashboard.QueryAccount {
		return
	}

	// Decode account strkey (starts with G)
	raw, err := strkey.Decode(strkey.VersionByteAccountID, query)
	if err != nil {
		fmt.Printf("checksum: invalid (%v)\n", err)
		os.Exit(1)
	}
	fmt.Printf("checksum: ok\ned25519: %s\n", hex.EncodeToString(raw))
}
