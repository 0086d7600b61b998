package faims

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"

	"bitbucket.org/airenas/faimsgo/internal/pkg/cmdapp"
	"github.com/pkg/errors"
)

//Sidecar keeps item metadata loaded from the JSON file next to the primary audio file
type Sidecar map[string]interface{}

//StringValue returns a sidecar value as string or empty string
func (s Sidecar) StringValue(key string) string {
	if v, ok := s[key]; ok {
		if sv, ok := v.(string); ok {
			return sv
		}
	}
	return ""
}

//ImageID returns the identifying key of the sidecar
func (s Sidecar) ImageID() string {
	return s.StringValue("ImageID")
}

//Keywords returns the keyword list of the sidecar
func (s Sidecar) Keywords() []string {
	v, ok := s["Keywords"]
	if !ok {
		return nil
	}
	switch kw := v.(type) {
	case []string:
		return kw
	case []interface{}:
		res := make([]string, 0, len(kw))
		for _, k := range kw {
			if sv, ok := k.(string); ok {
				res = append(res, sv)
			}
		}
		return res
	}
	return nil
}

//OpenFileFunc declares function to open file by name and return Reader
type OpenFileFunc func(fileName string) (io.ReadCloser, error)

//SidecarLoader loads item sidecar files from the input directory
type SidecarLoader struct {
	Path         string
	OpenFileFunc OpenFileFunc
}

//NewSidecarLoader creates SidecarLoader instance
func NewSidecarLoader(path string) (*SidecarLoader, error) {
	if path == "" {
		return nil, errors.New("No input directory provided")
	}
	return &SidecarLoader{Path: path, OpenFileFunc: openFile}, nil
}

//Load reads and parses one sidecar file
func (l *SidecarLoader) Load(name string) (Sidecar, error) {
	fileName := filepath.Join(l.Path, name)
	f, err := l.OpenFileFunc(fileName)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrMissingSidecar, fileName)
		}
		return nil, errors.Wrap(err, "Can't open "+fileName)
	}
	defer f.Close()
	cmdapp.Log.Debugf("Reading %s", fileName)
	var res Sidecar
	if err := json.NewDecoder(f).Decode(&res); err != nil {
		return nil, errors.Wrap(ErrMalformedRecord, "Can't parse "+fileName+". "+err.Error())
	}
	return res, nil
}

func openFile(fileName string) (io.ReadCloser, error) {
	return os.Open(fileName)
}
