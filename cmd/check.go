package cmd

import (
	"attendance/attendance"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

var verifyCmd = &cobra.Command{
	Use:   "verify <image>",
	Short: "Verify that the person in the photo holds their own ID card",
	Long: `Detect the two largest faces of the photo (the person and the photo on
their ID card), compare them and read the ID number from the card.

Examples:
  attendance verify selfie-with-card.jpg
  attendance verify --detector cnn --json selfie-with-card.jpg`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args[0], (*attendance.Service).Verify)
	},
}

var identifyCmd = &cobra.Command{
	Use:   "identify <image>",
	Short: "Recognize the person in the photo among the enrolled people",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		return runCheck(cmd, args[0], (*attendance.Service).Identify)
	},
}

func init() {
	rootCmd.AddCommand(verifyCmd)
	rootCmd.AddCommand(identifyCmd)
	verifyCmd.Flags().Bool("json", false, "Print the full result as JSON")
	identifyCmd.Flags().Bool("json", false, "Print the full result as JSON")
}

type checkFunc func(*attendance.Service, []byte) (attendance.Result, error)

func runCheck(cmd *cobra.Command, path string, check checkFunc) error {
	img, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	c, err := setup(cmd, false)
	if err != nil {
		return err
	}
	defer c.Close()
	return writeCheck(cmd.OutOrStdout(), c.service, img, check, mustGetBool(cmd, "json"))
}

// writeCheck runs check on img and prints the message, or the full result as JSON
func writeCheck(w io.Writer, svc *attendance.Service, img []byte, check checkFunc, asJSON bool) error {
	result, err := check(svc, img)
	if err != nil {
		return err
	}
	if asJSON {
		out, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = fmt.Fprintln(w, string(out))
		return err
	}
	_, err = fmt.Fprintln(w, result.Message)
	return err
}
