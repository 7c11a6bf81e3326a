package cli

import (
	"github.com/spf13/cobra"

	"github.com/Altair788/AdHub/internal/agent/api"
)

// для тестов
var (
	NewAPIClient = func(baseURL string, insecure bool) *api.Client {
		if insecure {
			return api.NewClient(baseURL, api.WithInsecureTLS())
		}
		return api.NewClient(baseURL)
	}
	ReadPassword = func(cmd *cobra.Command, prompt string, fromStdin bool) (string, error) {
		return readPassword(cmd, prompt, fromStdin)
	}
)
