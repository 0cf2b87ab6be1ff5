package schedules

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/spf13/cobra"

	"github.com/sitecheckhq/sitecheck/cmd/cli/config"
	"github.com/sitecheckhq/sitecheck/cmd/cli/output"
	"github.com/sitecheckhq/sitecheck/internal/models"
)

// ==========================
// Init Schedules
// ==========================
func InitSchedules(rootCmd *cobra.Command) {
	schedulesCmd := &cobra.Command{
		Use:   "schedules",
		Short: "Manage recurring inspection schedules",
	}

	schedulesCmd.AddCommand(
		listSchedulesCmd(),
		createScheduleCmd(),
		deactivateScheduleCmd(),
		generateCmd(),
	)

	rootCmd.AddCommand(schedulesCmd)
}

// ==========================
// LIST
// ==========================
func listSchedulesCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List schedules",
		Run: func(cmd *cobra.Command, args []string) {
			var schedules []models.Schedule
			if err := getJSON("/schedules", &schedules); err != nil {
				fmt.Println(err)
				return
			}

			if asJSON {
				b, _ := json.MarshalIndent(schedules, "", "  ")
				fmt.Println(string(b))
				return
			}

			rows := make([][]interface{}, 0, len(schedules))
			for _, s := range schedules {
				rows = append(rows, []interface{}{
					s.ID, s.SiteID, s.Frequency, s.StartDate.Format("2006-01-02"),
					s.Active, fmt.Sprint(s.AssetIDs), s.RotationCursor,
				})
			}
			output.RenderTable(
				[]string{"ID", "SITE", "FREQUENCY", "START", "ACTIVE", "ASSETS", "CURSOR"},
				rows,
			)
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print raw JSON instead of a table")
	return cmd
}

// ==========================
// CREATE
// ==========================
func createScheduleCmd() *cobra.Command {
	var orgID, siteID int
	var templateID, legacyAssetID int
	var assetIDs []int
	var frequency, startDate string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a schedule",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload := map[string]interface{}{
				"org_id":     orgID,
				"site_id":    siteID,
				"frequency":  frequency,
				"start_date": startDate,
				"asset_ids":  assetIDs,
			}
			if templateID > 0 {
				payload["template_id"] = templateID
			}
			if legacyAssetID > 0 {
				payload["legacy_asset_id"] = legacyAssetID
			}

			var created models.Schedule
			if err := postJSON("/schedules", payload, &created); err != nil {
				return err
			}

			b, _ := json.MarshalIndent(created, "", "  ")
			fmt.Println(string(b))
			return nil
		},
	}

	cmd.Flags().IntVar(&orgID, "org", 0, "organisation id")
	cmd.Flags().IntVar(&siteID, "site", 0, "site id")
	cmd.Flags().IntVar(&templateID, "template", 0, "check template id")
	cmd.Flags().IntVar(&legacyAssetID, "legacy-asset", 0, "legacy single asset id")
	cmd.Flags().IntSliceVar(&assetIDs, "assets", nil, "asset ids forming the rotation pool")
	cmd.Flags().StringVar(&frequency, "frequency", "", "daily, weekly, monthly, quarterly or annual")
	cmd.Flags().StringVar(&startDate, "start", "", "start date (YYYY-MM-DD)")

	return cmd
}

// ==========================
// DEACTIVATE
// ==========================
func deactivateScheduleCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate [id]",
		Short: "Deactivate a schedule",
		Args:  cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			token, err := config.ReadToken()
			if err != nil {
				fmt.Println("Please login first")
				return
			}

			req, _ := http.NewRequest("DELETE", config.APIURL()+"/schedules/"+args[0], nil)
			req.Header.Set("Authorization", "Bearer "+token)

			resp, err := http.DefaultClient.Do(req)
			if err != nil {
				fmt.Println(err)
				return
			}
			defer resp.Body.Close()

			if resp.StatusCode == http.StatusNoContent {
				fmt.Println("Schedule deactivated")
			} else {
				fmt.Println("Failed to deactivate schedule")
			}
		},
	}
}

// ==========================
// GENERATE
// ==========================
func generateCmd() *cobra.Command {
	var all bool
	var lookahead int

	cmd := &cobra.Command{
		Use:   "generate [id]",
		Short: "Generate due inspection tasks",
		Long:  "Run task generation for one schedule, or for every active schedule with --all.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !all && len(args) != 1 {
				return fmt.Errorf("pass a schedule id or --all")
			}

			path := "/generate"
			if !all {
				path = "/schedules/" + args[0] + "/generate"
				if lookahead > 0 {
					path = fmt.Sprintf("%s?lookahead_days=%d", path, lookahead)
				}
			}

			var out json.RawMessage
			if err := postJSON(path, nil, &out); err != nil {
				return err
			}

			var buf bytes.Buffer
			_ = json.Indent(&buf, out, "", "  ")
			fmt.Println(buf.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "generate for every active schedule")
	cmd.Flags().IntVar(&lookahead, "lookahead", 0, "lookahead window in days (single schedule only)")

	return cmd
}

// ==========================
// HTTP helpers
// ==========================
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

func postJSON(path string, payload, out interface{}) error {
	token, err := config.ReadToken()
	if err != nil {
		return fmt.Errorf("please login first")
	}

	var reqBody io.Reader
	if payload != nil {
		data, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		reqBody = bytes.NewReader(data)
	}

	req, _ := http.NewRequest("POST", config.APIURL()+path, reqBody)
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Content-Type", "application/json")

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return fmt.Errorf("status %d: %s", resp.StatusCode, string(body))
	}
	if out != nil {
		return json.Unmarshal(body, out)
	}
	return nil
}
