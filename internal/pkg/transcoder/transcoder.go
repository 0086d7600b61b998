package transcoder

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"
	"time"

	"bitbucket.org/airenas/faimsgo/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

//DefaultCommand is the encoder invocation template
const DefaultCommand = "ffmpeg -y -i {INPUT} -ar {SAMPLERATE} -b:a {BITRATE} {OUTPUT}"

//Transcoder downsamples audio files by running an external encoder
type Transcoder struct {
	command    string
	sampleRate string
	bitRate    string
	timeout    time.Duration
}

//NewTranscoder creates a Transcoder
func NewTranscoder(command, sampleRate, bitRate string, timeout time.Duration) (*Transcoder, error) {
	if command == "" {
		return nil, errors.New("No transcoder command provided")
	}
	if !strings.Contains(command, "{INPUT}") || !strings.Contains(command, "{OUTPUT}") {
		return nil, errors.New("Command does not contain {INPUT} or {OUTPUT}")
	}
	if sampleRate == "" || bitRate == "" {
		return nil, errors.New("No sample rate or bit rate provided")
	}
	if timeout <= 0 {
		timeout = 30 * time.Minute
	}
	return &Transcoder{command: command, sampleRate: sampleRate, bitRate: bitRate,
		timeout: timeout}, nil
}

//Transcode converts src into dirname(src)/resultName and returns the result path.
//The partial output file is dropped on failure
func (t *Transcoder) Transcode(src, resultName string) (string, error) {
	out := filepath.Join(filepath.Dir(src), resultName)
	realCommand := strings.NewReplacer("{INPUT}", src, "{OUTPUT}", out,
		"{SAMPLERATE}", t.sampleRate, "{BITRATE}", t.bitRate).Replace(t.command)
	cmdapp.Log.Debugf("Running command: %s", realCommand)
	cmdArr := strings.Split(realCommand, " ")
	if len(cmdArr) < 2 {
		return "", errors.New("Wrong command. No parameter " + realCommand)
	}

	ctx, cancel := context.WithTimeout(context.Background(), t.timeout)
	defer cancel()
	cmd := exec.CommandContext(ctx, cmdArr[0], cmdArr[1:]...)
	var outputBuffer bytes.Buffer
	cmd.Stdout = &outputBuffer
	cmd.Stderr = &outputBuffer

	err := cmd.Run()
	if err != nil {
		dropPartialOutput(out)
		if ctx.Err() == context.DeadlineExceeded {
			return "", errors.Wrapf(ctx.Err(), "Transcode timeout after %s", t.timeout.String())
		}
		return "", errors.Wrap(err, "Output: "+outputBuffer.String())
	}
	return out, nil
}

func dropPartialOutput(out string) {
	if _, err := os.Stat(out); err == nil {
		cmdapp.Log.Debugf("Dropping partial output %s", out)
		cmdapp.LogIf(os.Remove(out))
	}
}
