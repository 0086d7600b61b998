package cmdapp

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
)

func newRootCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "test",
		Short: "test",
		Long:  `test`,
		Run:   func(cmd *cobra.Command, args []string) {}}
}

func TestReadEnvironmentVariable(t *testing.T) {
	os.Setenv("ALVEO_URL", "olia")
	InitApplication(newRootCmd())

	assert.Equal(t, "olia", Config.GetString("alveo.url"))
}

func TestReadConfig(t *testing.T) {
	initAppFromTempFile(t, "alveo:\n     key: olia\n")

	assert.Equal(t, "olia", Config.GetString("alveo.key"))
}

func TestEnvBeatsConfig(t *testing.T) {
	os.Setenv("ALVEO_KEY", "xxxx")
	initAppFromTempFile(t, "alveo:\n     key: olia\n")

	assert.Equal(t, "xxxx", Config.GetString("alveo.key"))
}

func TestDefaultLogger(t *testing.T) {
	initDefaultLevel()
	initAppFromTempFile(t, "")

	assert.Equal(t, "info", Log.GetLevel().String())
}

func TestLoggerInitFromConfig(t *testing.T) {
	initDefaultLevel()
	initAppFromTempFile(t, "logger:\n    level: trace\n")

	assert.Equal(t, "trace", Log.GetLevel().String())
}

func initAppFromTempFile(t *testing.T, data string) {
	f, err := ioutil.TempFile("", "test.*.yml")
	assert.Nil(t, err)
	f.WriteString(data)
	f.Sync()

	defer os.Remove(f.Name())

	rootCmd := newRootCmd()
	InitApplication(rootCmd)
	configFile = f.Name()
	rootCmd.Execute()
}

func initDefaultLevel() {
	Log.SetLevel(logrus.ErrorLevel)
}
