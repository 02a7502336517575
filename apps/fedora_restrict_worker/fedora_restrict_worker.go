package main

import (
	"github.com/APTrust/fedora-services/util/cli"
	"github.com/APTrust/fedora-services/workers"
	"github.com/spf13/cobra"
)

var configFlags = &cli.ConfigFlags{}

var rootCmd = &cobra.Command{
	Use:   "fedora_restrict_worker",
	Short: "Restrict objects whose pids arrive through NSQ",
	Long: `fedora_restrict_worker subscribes to NSQ_RESTRICT_TOPIC through the
nsqlookupd at NSQ_LOOKUPD and attaches the restriction policy to each
pid it receives, one at a time. Failed pids are logged, and recorded
in Redis when REDIS_URL is set. They are not requeued.

The worker runs until it receives SIGINT or SIGTERM.

` + cli.EnvMessage,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cli.AddConfigFlags(rootCmd, configFlags)
}

func run(cmd *cobra.Command, args []string) error {
	context, err := cli.NewContext(configFlags)
	if err != nil {
		return err
	}
	return workers.NewRestrictionWorker(context).Run()
}

func main() {
	cli.Execute(rootCmd)
}
