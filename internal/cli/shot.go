package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
)

var shotPath string

var shotCmd = &cobra.Command{
	Use:   "shot",
	Short: "Capture and analyze a screenshot",
	RunE: func(cmd *cobra.Command, args []string) error {
		var body []byte
		if shotPath != "" {
			body, _ = json.Marshal(map[string]string{"path": shotPath})
		}
		data, err := newSlowClient().post("/api/screenshots", body)
		if err != nil {
			return err
		}
		var resp struct {
			Path     string `json:"path"`
			Analysis string `json:"analysis"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		fmt.Printf("%s\n%s\n", resp.Path, resp.Analysis)
		return nil
	},
}

func init() {
	shotCmd.Flags().StringVar(&shotPath, "path", "", "analyze an existing image instead of capturing")
}
