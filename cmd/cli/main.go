package main

import (
	"fmt"
	"os"

	"github.com/sitecheckhq/sitecheck/cmd/cli/assets"
	"github.com/sitecheckhq/sitecheck/cmd/cli/auth"
	"github.com/sitecheckhq/sitecheck/cmd/cli/root"
	"github.com/sitecheckhq/sitecheck/cmd/cli/schedules"
	"github.com/sitecheckhq/sitecheck/cmd/cli/tasks"
)

func main() {
	rootCmd := root.GetRoot()

	auth.InitAuth(rootCmd)
	assets.InitAssets(rootCmd)
	schedules.InitSchedules(rootCmd)
	tasks.InitTasks(rootCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Println("Error:", err)
		os.Exit(1)
	}
}
