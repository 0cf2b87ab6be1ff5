package tasks

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/sitecheckhq/sitecheck/cmd/cli/config"
	"github.com/sitecheckhq/sitecheck/cmd/cli/output"
	"github.com/sitecheckhq/sitecheck/internal/models"
)

// ==========================
// Init Tasks
// ==========================
func InitTasks(rootCmd *cobra.Command) {
	tasksCmd := &cobra.Command{
		Use:   "tasks",
		Short: "List and update generated inspection tasks",
	}

	tasksCmd.AddCommand(
		listTasksCmd(),
		setStatusCmd(),
	)

	rootCmd.AddCommand(tasksCmd)
}

// ==========================
// LIST
// ==========================
func listTasksCmd() *cobra.Command {
	var asJSON bool
	var status string
	var scheduleID, siteID int

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List tasks",
		Run: func(cmd *cobra.Command, args []string) {
			q := url.Values{}
			if status != "" {
				q.Set("status", status)
			}
			if scheduleID > 0 {
				q.Set("schedule_id", strconv.Itoa(scheduleID))
			}
			if siteID > 0 {
				q.Set("site_id", strconv.Itoa(siteID))
			}
			path := "/tasks"
			if len(q) > 0 {
				path += "?" + q.Encode()
			}

			var tasks []models.Task
			if err := getJSON(path, &tasks); err != nil {
				fmt.Println(err)
				return
			}

			if asJSON {
				b, _ := json.MarshalIndent(tasks, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(tasks))
			for _, t := range tasks {
				asset := "-"
				if t.AssetID != nil {
					asset = strconv.Itoa(*t.AssetID)
				}
				rows = append(rows, []interface{}{
					t.ID, t.ScheduleID, asset, t.DueDate.Format("2006-01-02"),
					t.Status, t.Priority,
				})
			}
			output.RenderTable(
				[]string{"ID", "SCHEDULE", "ASSET", "DUE", "STATUS", "PRIORITY"},
				rows,
			)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")
	cmd.Flags().StringVar(&status, "status", "", "filter by status")
	cmd.Flags().IntVar(&scheduleID, "schedule", 0, "filter by schedule id")
	cmd.Flags().IntVar(&siteID, "site", 0, "filter by site id")

	return cmd
}

// ==========================
// SET STATUS
// ==========================
func setStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set-status [id] [status]",
		Short: "Move a task to a new status",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			token, err := config.ReadToken()
			if err != nil {
				return fmt.Errorf("please login first")
			}

			body, _ := json.Marshal(map[string]string{"status": args[1]})
			req, _ := http.NewRequest("PATCH", config.APIURL()+"/tasks/"+args[0]+"/status", bytes.NewReader(body))
			req.Header.Set("Authorization", "Bearer "+token)
			req.Header.Set("Content-Type", "application/json")

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			raw, _ := io.ReadAll(resp.Body)
			if resp.StatusCode != http.StatusOK {
				return fmt.Errorf("status %d: %s", resp.StatusCode, string(raw))
			}

			var buf bytes.Buffer
			_ = json.Indent(&buf, raw, "", "  ")
			fmt.Println(buf.String())
			return nil
		},
	}
}

func getJSON(path string, out interface{}) error {
	token, err := config.ReadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	req, _ := http.NewRequest("GET", config.APIURL()+path, nil)
	req.Header.Set("Authorization", "Bearer "+token)

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	return json.Unmarshal(body, out)
}
