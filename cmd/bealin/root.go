package main

import (
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/arttttt/Bealin/internal/client"
)

const defaultAPIURL = "http://localhost:3000"

type rootOptions struct {
	apiURL  string
	timeout time.Duration
}

func (o *rootOptions) repository() client.ProjectRepository {
	source := client.NewProjectAPISource(o.apiURL, &http.Client{Timeout: o.timeout})
	return client.NewProjectRepository(source)
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}

	root := &cobra.Command{
		Use:           "bealin",
		Short:         "Manage Bealin projects",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	apiURL := os.Getenv("BEALIN_API_URL")
	if apiURL == "" {
		apiURL = defaultAPIURL
	}
	root.PersistentFlags().StringVar(&opts.apiURL, "api", apiURL, "Bealin API base URL (env BEALIN_API_URL)")
	root.PersistentFlags().DurationVar(&opts.timeout, "timeout", client.DefaultTimeout, "request timeout")

	root.AddCommand(newProjectsCmd(opts))
	return root
}
