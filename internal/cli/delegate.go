package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var delegateCmd = &cobra.Command{
	Use:   "delegate <prompt>",
	Short: "Send a prompt to the configured model endpoint",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, _ := json.Marshal(map[string]string{
			"prompt": strings.Join(args, " "),
		})
		data, err := newSlowClient().post("/api/delegate", body)
		if err != nil {
			return err
		}
		var resp struct {
			Content  string `json:"content"`
			Provider string `json:"provider"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		fmt.Println(resp.Content)
		return nil
	},
}
