package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

func newScanCommand(use, short, path string) *cobra.Command {
	c := &cobra.Command{
		Use:   use,
		Short: short,
		Run: func(cmd *cobra.Command, args []string) {
			itemID, _ := cmd.Flags().GetString("item")
			shopID, _ := cmd.Flags().GetString("shop")
			if itemID == "" || shopID == "" {
				fmt.Println("both --item and --shop are required")
				os.Exit(1)
			}
			if err := postScan(path, itemID, shopID); err != nil {
				fmt.Printf("scan failed: %v\n", err)
				os.Exit(1)
			}
		},
	}
	c.Flags().StringP("item", "i", "", "item id")
	c.Flags().StringP("shop", "s", "", "shop id")
	return c
}

func init() {
	rootCmd.AddCommand(newScanCommand("claim-out", "Complete a claim at the facility", "/api/v1/scan/claim-out"))
	rootCmd.AddCommand(newScanCommand("drop-off", "Accept a dropped-off item", "/api/v1/scan/drop-off"))
	rootCmd.AddCommand(newScanCommand("drop-off-reject", "Reject a dropped-off item", "/api/v1/scan/drop-off/reject"))
	rootCmd.AddCommand(newScanCommand("recycle-in", "Record a recycle intake scan", "/api/v1/scan/recycle-in"))
	rootCmd.AddCommand(newScanCommand("recycle-out", "Record a recycle outtake scan", "/api/v1/scan/recycle-out"))
}
