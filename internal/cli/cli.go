// Package cli implements the formgatectl command set. Every command talks to
// the admin API of a running gateway instance over HTTP.
package cli

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"os"
	"sort"
	"time"

	"formgate/internal/api/dto/common"
	settingsdto "formgate/internal/api/dto/v1/settings"
	"formgate/internal/version"

	"github.com/briandowns/spinner"
	"github.com/spf13/cobra"
)

var (
	serverURL  string
	adminToken string
)

var rootCmd = &cobra.Command{
	Use:   "formgatectl",
	Short: "Formgate admin CLI",
	Long:  `formgatectl manages a running form gateway: inspect and update settings, check health.`,
}

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check gateway health",
	RunE: func(cmd *cobra.Command, args []string) error {
		var resp common.APIResponse
		if err := callAPI(http.MethodGet, "/health", nil, &resp); err != nil {
			return err
		}
		fmt.Println("Gateway is healthy")
		return nil
	},
}

var settingsCmd = &cobra.Command{
	Use:   "settings",
	Short: "Manage gateway settings",
}

var settingsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all settings",
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := fetchSettings()
		if err != nil {
			return err
		}

		keys := make([]string, 0, len(values))
		for key := range values {
			keys = append(keys, key)
		}
		sort.Strings(keys)

		for _, key := range keys {
			fmt.Printf("%-40s %s\n", key, values[key])
		}
		return nil
	},
}

var settingsGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Print the value of one setting",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		values, err := fetchSettings()
		if err != nil {
			return err
		}

		value, ok := values[args[0]]
		if !ok {
			return fmt.Errorf("unknown setting: %s", args[0])
		}
		fmt.Println(value)
		return nil
	},
}

var settingsSetCmd = &cobra.Command{
	Use:   "set <key> <value>",
	Short: "Write one setting",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		body := settingsdto.UpdateRequest{
			Values: map[string]string{args[0]: args[1]},
		}

		var resp common.APIResponse
		if err := callAPI(http.MethodPut, "/api/v1/settings", body, &resp); err != nil {
			return err
		}
		fmt.Printf("Saved %s\n", args[0])
		return nil
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print version information",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Println(version.GetBuildInfo().String())
	},
}

func fetchSettings() (map[string]string, error) {
	var resp common.APIResponse
	if err := callAPI(http.MethodGet, "/api/v1/settings", nil, &resp); err != nil {
		return nil, err
	}

	// Data round-trips through interface{}; re-decode into the typed DTO.
	raw, err := json.Marshal(resp.Data)
	if err != nil {
		return nil, err
	}
	var settings settingsdto.Response
	if err := json.Unmarshal(raw, &settings); err != nil {
		return nil, fmt.Errorf("unexpected settings payload: %w", err)
	}
	return settings.Values, nil
}

// callAPI performs one request against the admin API with a progress spinner,
// decoding the response envelope and surfacing its error message on failure.
func callAPI(method, path string, body interface{}, out *common.APIResponse) error {
	var reqBody *bytes.Buffer
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reqBody = bytes.NewBuffer(encoded)
	} else {
		reqBody = bytes.NewBuffer(nil)
	}

	req, err := http.NewRequest(method, serverURL+path, reqBody)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if adminToken != "" {
		req.Header.Set("X-Admin-Token", adminToken)
	}

	s := spinner.New(spinner.CharSets[14], 120*time.Millisecond)
	s.Suffix = fmt.Sprintf(" %s %s...", method, path)
	s.Start()

	client := &http.Client{Timeout: 10 * time.Second}
	resp, err := client.Do(req)
	s.Stop()
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response (status %d): %w", resp.StatusCode, err)
	}

	if !out.Success {
		if out.Error != nil {
			return fmt.Errorf("%s: %s", out.Error.Code, out.Error.Message)
		}
		return fmt.Errorf("request failed with status %d", resp.StatusCode)
	}
	return nil
}

func init() {
	rootCmd.PersistentFlags().StringVar(&serverURL, "server", envOr("FORMGATE_SERVER", "http://localhost:8080"), "Gateway base URL")
	rootCmd.PersistentFlags().StringVar(&adminToken, "token", os.Getenv("FORMGATE_ADMIN_TOKEN"), "Admin API token")

	settingsCmd.AddCommand(settingsListCmd, settingsGetCmd, settingsSetCmd)
	rootCmd.AddCommand(healthCmd, settingsCmd, versionCmd)
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
