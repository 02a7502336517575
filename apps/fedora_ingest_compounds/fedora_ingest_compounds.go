package main

import (
	"github.com/APTrust/fedora-services/ingest"
	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/APTrust/fedora-services/util/cli"
	"github.com/spf13/cobra"
)

var configFlags = &cli.ConfigFlags{}

var opts struct {
	ModsDir    string
	DCDir      string
	Namespace  string
	Collection string
	State      string
}

var rootCmd = &cobra.Command{
	Use:   "fedora_ingest_compounds",
	Short: "Create compound objects from MODS and Dublin Core records",
	Long: `fedora_ingest_compounds creates one compound object for each MODS file
in --mods-dir. The object's label is the MODS title, and the Dublin
Core file with the same name in --dc-dir is attached as DC.

The batch stops at the first record that fails.

` + cli.EnvMessage,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cli.AddConfigFlags(rootCmd, configFlags)
	flags := rootCmd.Flags()
	flags.StringVar(&opts.ModsDir, "mods-dir", "", "Directory of MODS records")
	flags.StringVar(&opts.DCDir, "dc-dir", "", "Directory of Dublin Core records with the same names")
	flags.StringVar(&opts.Namespace, "namespace", "", "Namespace for new pids (default FEDORA_NAMESPACE)")
	flags.StringVar(&opts.Collection, "collection", "", "Pid of the collection (default FEDORA_COLLECTION)")
	flags.StringVar(&opts.State, "state", string(fedora.Active), "State of new objects: A or I")
	rootCmd.MarkFlagRequired("mods-dir")
	rootCmd.MarkFlagRequired("dc-dir")
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
	if opts.Namespace != "" {
		driver.Namespace = opts.Namespace
	}
	if opts.Collection != "" {
		driver.Collection = opts.Collection
	}
	driver.State = fedora.ObjectState(opts.State)
	records, err := driver.IngestCompounds(opts.ModsDir, opts.DCDir)
	cli.PrintRecords(records)
	return err
}

func main() {
	cli.Execute(rootCmd)
}
