package cli

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/salientworks/salient/internal/memory"
	"github.com/spf13/cobra"
)

var (
	rememberCategory string
	rememberPriority int
	rememberTags     []string
)

var rememberCmd = &cobra.Command{
	Use:   "remember <content>",
	Short: "Store a working memory",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		body, _ := json.Marshal(map[string]any{
			"content":  strings.Join(args, " "),
			"category": rememberCategory,
			"priority": rememberPriority,
			"tags":     rememberTags,
		})
		data, err := newClient().post("/api/memories", body)
		if err != nil {
			return err
		}
		var resp struct {
			Memory   memory.Entry `json:"memory"`
			Used     int          `json:"used"`
			Capacity int          `json:"capacity"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		fmt.Printf("remembered %s (%d/%d slots)\n", resp.Memory.ID, resp.Used, resp.Capacity)
		return nil
	},
}

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List working memories with scores",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := newClient().get("/api/memories")
		if err != nil {
			return err
		}
		var resp struct {
			Memories []struct {
				memory.Entry
				Score float64 `json:"score"`
			} `json:"memories"`
			Used     int `json:"used"`
			Capacity int `json:"capacity"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		if len(resp.Memories) == 0 {
			fmt.Println("(no memories)")
			return nil
		}
		fmt.Printf("%d of %d slots in use\n", resp.Used, resp.Capacity)
		now := time.Now()
		for i, m := range resp.Memories {
			fmt.Printf("%d. [%.3f] %s\n   id: %s\n", i+1, m.Score, memory.FormatEntry(&m.Entry, now), m.ID)
		}
		return nil
	},
}

var touchCmd = &cobra.Command{
	Use:   "touch <id>",
	Short: "Mark a memory as just used",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := newClient().post("/api/memories/"+args[0]+"/touch", nil)
		if err != nil {
			return err
		}
		var resp struct {
			Memory memory.Entry `json:"memory"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		fmt.Printf("touched %s (access count %d)\n", resp.Memory.ID, resp.Memory.AccessCount)
		return nil
	},
}

var evictCmd = &cobra.Command{
	Use:   "evict",
	Short: "Evict the lowest-scoring memory",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := newClient().post("/api/memories/evict", nil)
		if err != nil {
			return err
		}
		var resp struct {
			Evicted *memory.Entry `json:"evicted"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		if resp.Evicted == nil {
			fmt.Println("nothing to evict")
			return nil
		}
		fmt.Printf("evicted %s: %s\n", resp.Evicted.ID, resp.Evicted.Content)
		return nil
	},
}

var forgetCmd = &cobra.Command{
	Use:   "forget",
	Short: "Forget all working memories",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := newClient().del("/api/memories")
		if err != nil {
			return err
		}
		var resp struct {
			Cleared int `json:"cleared"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		fmt.Printf("cleared %d memories\n", resp.Cleared)
		return nil
	},
}

var contextCmd = &cobra.Command{
	Use:   "context",
	Short: "Print the working-memory briefing for prompt injection",
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := newClient().get("/api/context")
		if err != nil {
			return err
		}
		var resp struct {
			Context string `json:"context"`
		}
		if err := json.Unmarshal(data, &resp); err != nil {
			return fmt.Errorf("parse response: %w", err)
		}
		fmt.Println(resp.Context)
		return nil
	},
}

func init() {
	rememberCmd.Flags().StringVarP(&rememberCategory, "category", "c", "task", "category: decision, insight, pattern, reference, task, result")
	rememberCmd.Flags().IntVarP(&rememberPriority, "priority", "p", 4, "priority 1-7")
	rememberCmd.Flags().StringSliceVarP(&rememberTags, "tags", "t", nil, "tags")
}
