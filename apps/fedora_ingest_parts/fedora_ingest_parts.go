package main

import (
	"github.com/APTrust/fedora-services/ingest"
	"github.com/APTrust/fedora-services/models/fedora"
	"github.com/APTrust/fedora-services/util/cli"
	"github.com/spf13/cobra"
)

var configFlags = &cli.ConfigFlags{}

var opts struct {
	Dir        string
	Parent     string
	Namespace  string
	Collection string
	State      string
	Start      int
	S3Bucket   string
	S3Prefix   string
}

var rootCmd = &cobra.Command{
	Use:   "fedora_ingest_parts",
	Short: "Ingest each file in a directory as a part of a parent object",
	Long: `fedora_ingest_parts creates one object per file in --dir, in name order,
attaches the file as OBJ along with the thumbnail, policy and MODS
record from the config, and links each object to --parent with
sequence numbers counting up from --start.

Hidden files and subdirectories are skipped. The batch stops at the
first file that fails. Objects created before that stay in Fedora.

With --s3-bucket, the files under --s3-prefix in that bucket are first
copied into --dir, using the S3_* settings from the config.

` + cli.EnvMessage,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cli.AddConfigFlags(rootCmd, configFlags)
	flags := rootCmd.Flags()
	flags.StringVar(&opts.Dir, "dir", "", "Directory containing the files to ingest")
	flags.StringVar(&opts.Parent, "parent", "", "Pid of the parent object, e.g. test:1")
	flags.StringVar(&opts.Namespace, "namespace", "", "Namespace for new pids (default FEDORA_NAMESPACE)")
	flags.StringVar(&opts.Collection, "collection", "", "Pid of the collection (default FEDORA_COLLECTION)")
	flags.StringVar(&opts.State, "state", string(fedora.Active), "State of new objects: A or I")
	flags.IntVar(&opts.Start, "start", 1, "Sequence number of the first file")
	flags.StringVar(&opts.S3Bucket, "s3-bucket", "", "Stage files from this S3 bucket first")
	flags.StringVar(&opts.S3Prefix, "s3-prefix", "", "Prefix of the files in --s3-bucket")
	rootCmd.MarkFlagRequired("dir")
	rootCmd.MarkFlagRequired("parent")
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

	if opts.S3Bucket != "" {
		if context.S3Client == nil {
			return cli.ErrNoS3
		}
		stager := ingest.NewStager(context.S3Client, context.Fs, context.Logger)
		if _, err := stager.Stage(opts.S3Bucket, opts.S3Prefix, opts.Dir); err != nil {
			return err
		}
	}

	driver := ingest.NewBatchDriver(context)
	if opts.Namespace != "" {
		driver.Namespace = opts.Namespace
	}
	if opts.Collection != "" {
		driver.Collection = opts.Collection
	}
	driver.State = fedora.ObjectState(opts.State)
	records, err := driver.IngestParts(opts.Dir, opts.Parent, opts.Start)
	cli.PrintRecords(records)
	return err
}

func main() {
	cli.Execute(rootCmd)
}
