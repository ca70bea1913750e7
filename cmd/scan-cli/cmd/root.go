package cmd

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// rootCmd is the base command; facility staff use the subcommands to fire
// lifecycle scans against the market server when the QR scanner is down.
var rootCmd = &cobra.Command{
	Use:   "scan-cli",
	Short: "Facility-side scan tool for the ReCircle market server",
	Long: `scan-cli drives the item lifecycle over the market HTTP API:
drop-off intake, claim-out completion, and recycle intake/outtake scans.`,
}

// Execute adds all child commands to the root command and runs it.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().String("server", "http://localhost:8080", "market server base URL")
	rootCmd.PersistentFlags().String("token", "", "bearer token (or SCAN_TOKEN env)")
	_ = viper.BindPFlag("server", rootCmd.PersistentFlags().Lookup("server"))
	_ = viper.BindPFlag("token", rootCmd.PersistentFlags().Lookup("token"))
	viper.SetEnvPrefix("scan")
	viper.AutomaticEnv()
}

// postScan sends one scan request and prints the JSON response.
func postScan(path, itemID, shopID string) error {
	body, _ := json.Marshal(map[string]string{
		"item_id": itemID,
		"shop_id": shopID,
	})

	url := viper.GetString("server") + path
	req, err := http.NewRequest(http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+viper.GetString("token"))

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	out, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	fmt.Printf("%s %s\n%s\n", resp.Status, url, out)
	return nil
}
