package importer

import (
	"os"

	"bitbucket.org/airenas/faimsgo/internal/pkg/alveo"
	"bitbucket.org/airenas/faimsgo/internal/pkg/cmdapp"
	"bitbucket.org/airenas/faimsgo/internal/pkg/faims"
	"bitbucket.org/airenas/faimsgo/internal/pkg/transcoder"
	"bitbucket.org/airenas/faimsgo/internal/pkg/utils"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "faimsImport",
	Short: "FAIMS to Alveo data importer",
	Long:  `Command line tool to upload FAIMS exported field data into an Alveo collection`,
	Run:   run,
}

func init() {
	cmdapp.InitApplication(rootCmd)
	rootCmd.PersistentFlags().StringP("input", "i", "", "Input directory with the FAIMS export")
	rootCmd.PersistentFlags().StringP("key", "k", "", "The API key as generated by Alveo")
	rootCmd.PersistentFlags().StringP("collection", "c", "", "The collection the data will be added to. You must be a data owner of the collection")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "Verbose output")
	rootCmd.PersistentFlags().BoolP("skip-transcode", "d", false, "Skip generating downsampled versions of the audio files. Use if ffmpeg is not installed")
	rootCmd.PersistentFlags().BoolP("include-backup", "b", false, "Upload the backup recordings if present")
	rootCmd.PersistentFlags().BoolP("keep-original", "o", false, "Also upload the untouched original of the transcoded audio file")
	rootCmd.PersistentFlags().Bool("overwrite", false, "Delete a pre-existing speaker and item before upload")
	cmdapp.Config.BindPFlag("import.input", rootCmd.PersistentFlags().Lookup("input"))
	cmdapp.Config.BindPFlag("alveo.key", rootCmd.PersistentFlags().Lookup("key"))
	cmdapp.Config.BindPFlag("import.collection", rootCmd.PersistentFlags().Lookup("collection"))
	cmdapp.Config.BindPFlag("import.verbose", rootCmd.PersistentFlags().Lookup("verbose"))
	cmdapp.Config.BindPFlag("transcoder.skip", rootCmd.PersistentFlags().Lookup("skip-transcode"))
	cmdapp.Config.BindPFlag("import.includeBackup", rootCmd.PersistentFlags().Lookup("include-backup"))
	cmdapp.Config.BindPFlag("import.keepOriginal", rootCmd.PersistentFlags().Lookup("keep-original"))
	cmdapp.Config.BindPFlag("import.overwrite", rootCmd.PersistentFlags().Lookup("overwrite"))
	cmdapp.Config.SetDefault("alveo.url", "https://staging.alveo.edu.au/")
	cmdapp.Config.SetDefault("alveo.timeout", "10m")
	cmdapp.Config.SetDefault("transcoder.command", transcoder.DefaultCommand)
	cmdapp.Config.SetDefault("transcoder.sampleRate", "16000")
	cmdapp.Config.SetDefault("transcoder.bitRate", "16000")
	cmdapp.Config.SetDefault("transcoder.format", "wav")
	cmdapp.Config.SetDefault("transcoder.timeout", "30m")
}

//Execute starts the import
func Execute() {
	cmdapp.Execute(rootCmd)
}

func run(cmd *cobra.Command, args []string) {
	cmdapp.Log.Info("Starting FAIMS import")
	if cmdapp.Config.GetBool("import.verbose") {
		cmdapp.Log.SetLevel(logrus.DebugLevel)
	}

	var data ServiceData
	var err error
	data.InputDir = cmdapp.Config.GetString("import.input")
	data.Reader, err = faims.NewReader(data.InputDir)
	cmdapp.CheckOrPanic(err, "Can't init input reader")
	data.Sidecars, err = faims.NewSidecarLoader(data.InputDir)
	cmdapp.CheckOrPanic(err, "Can't init sidecar loader")

	url, err := utils.GetURLFromConfig("alveo.url")
	cmdapp.CheckOrPanic(err, "Can't get Alveo URL")
	data.Repo, err = alveo.NewClient(url, cmdapp.Config.GetString("alveo.key"),
		cmdapp.Config.GetDuration("alveo.timeout"))
	cmdapp.CheckOrPanic(err, "Can't init Alveo client")

	data.Collection = cmdapp.Config.GetString("import.collection")
	data.Overwrite = cmdapp.Config.GetBool("import.overwrite")
	data.IncludeBackup = cmdapp.Config.GetBool("import.includeBackup")
	data.KeepOriginal = cmdapp.Config.GetBool("import.keepOriginal")
	data.SkipTranscode = cmdapp.Config.GetBool("transcoder.skip")
	data.TranscodeFormat = cmdapp.Config.GetString("transcoder.format")
	if !data.SkipTranscode {
		data.Transcoder, err = transcoder.NewTranscoder(
			cmdapp.Config.GetString("transcoder.command"),
			cmdapp.Config.GetString("transcoder.sampleRate"),
			cmdapp.Config.GetString("transcoder.bitRate"),
			cmdapp.Config.GetDuration("transcoder.timeout"))
		cmdapp.CheckOrPanic(err, "Can't init transcoder")
	}

	done := make(chan error, 1)
	go func() {
		done <- RunImport(&data)
	}()
	select {
	case err := <-done:
		if errors.Is(err, alveo.ErrForbidden) {
			os.Exit(1)
		}
		cmdapp.CheckOrPanic(err, "Import failed")
	case <-cmdapp.NewSignalChannel():
		cmdapp.Log.Info("Interrupted")
	}
}
