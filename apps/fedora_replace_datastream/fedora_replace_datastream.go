package main

import (
	"github.com/APTrust/fedora-services/util/cli"
	"github.com/spf13/cobra"
)

var configFlags = &cli.ConfigFlags{}
var filePath string
var pid string
var dsid string

var rootCmd = &cobra.Command{
	Use:   "fedora_replace_datastream",
	Short: "Replace the content of one datastream",
	Long: `fedora_replace_datastream uploads a file as the new content of an
existing datastream. The datastream label becomes the file's name.

Example:

    fedora_replace_datastream --path thumbs/cover.png --pid test:3 --dsid TN

` + cli.EnvMessage,
	SilenceUsage: true,
	RunE:         run,
}

func init() {
	cli.AddConfigFlags(rootCmd, configFlags)
	rootCmd.Flags().StringVar(&filePath, "path", "", "Path to the file with the new content")
	rootCmd.Flags().StringVar(&pid, "pid", "", "Pid of the object, e.g. test:3")
	rootCmd.Flags().StringVar(&dsid, "dsid", "", "Id of the datastream to replace, e.g. TN")
	rootCmd.MarkFlagRequired("path")
	rootCmd.MarkFlagRequired("pid")
	rootCmd.MarkFlagRequired("dsid")
}

func run(cmd *cobra.Command, args []string) error {
	context, err := cli.NewContext(configFlags)
	if err != nil {
		return err
	}
	if err := context.FedoraClient.ReplaceDatastream(pid, dsid, filePath); err != nil {
		return err
	}
	context.Logger.Infof("Replaced %s on %s with %s", dsid, pid, filePath)
	return nil
}

func main() {
	cli.Execute(rootCmd)
}
