package cli

import (
	"fmt"

	"github.com/fatih/color"
)

// displayWelcomeBanner shows the welcome banner with version information.
func displayWelcomeBanner(versionStr string) {
	banner := `
         /$$$$$$   /$$$$$$   /$$$$$$  /$$      /$$       /$$$$$$$$  /$$$$$$  /$$      /$$
        /$$__  $$ /$$__  $$ /$$__  $$| $$$    /$$$      | $$_____/ /$$__  $$| $$$    /$$$
       | $$  \__/| $$  \__/| $$  \__/| $$$$  /$$$$      | $$      | $$  \ $$| $$$$  /$$$$
       |  $$$$$$ | $$      | $$      | $$ $$/$$ $$      | $$$$$   | $$  | $$| $$ $$/$$ $$
        \____  $$| $$      | $$      | $$  $$$| $$      | $$__/   | $$  | $$| $$  $$$| $$
        /$$  \ $$| $$    $$| $$    $$| $$\  $ | $$      | $$      | $$  | $$| $$\  $ | $$
       |  $$$$$$/|  $$$$$$/|  $$$$$$/| $$ \/  | $$      | $$$$$$$$|  $$$$$$/| $$ \/  | $$
        \______/  \______/  \______/ |__/     |__/      |________/ \______/ |__/     |__/
        `
	red := color.New(color.FgRed, color.Bold).SprintFunc()
	blue := color.New(color.FgBlue, color.Bold).SprintFunc()

	fmt.Println(red(banner))
	fmt.Println(blue(fmt.Sprintf("SCCM Usage Report (v%s)", versionStr)))
}
