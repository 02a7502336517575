package main

import (
	"github.com/APTrust/fedora-services/ingest"
	"github.com/APTrust/fedora-services/util/cli"
	"github.com/spf13/cobra"
)

var configFlags = &cli.ConfigFlags{}
var listPath string
var policyPath string

var rootCmd = &cobra.Command{
	Use:   "fedora_restrict",
	Short: "Attach the restriction policy to a list of objects",
	Long: `fedora_restrict reads a list of objects, one "prefix/pid" per line,
and attaches the restriction policy to each as its POLICY datastream.

The whole list is checked before anything is sent. After that, the
batch stops at the first object that fails.

` + cli.EnvMessage,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cli.AddConfigFlags(rootCmd, configFlags)
	rootCmd.Flags().StringVar(&listPath, "list", "to_restrict.txt", "File listing the objects to restrict")
	rootCmd.Flags().StringVar(&policyPath, "policy", "", "XACML policy to attach (default RESTRICTION_POLICY_PATH)")
}

func run(cmd *cobra.Command, args []string) error {
	context, err := cli.NewContext(configFlags)
	if err != nil {
		return err
	}
	release, err := cli.LockBatch(context.Config)
	if err != nil {
		return err
	}
	defer release()

	driver := ingest.NewBatchDriver(context)
	if policyPath != "" {
		driver.RestrictionPolicyPath = policyPath
	}
	records, err := driver.Restrict(listPath)
	cli.PrintRecords(records)
	return err
}

func main() {
	cli.Execute(rootCmd)
}
