package faims

import (
	"encoding/csv"
	"io"
	"os"
	"path/filepath"
	"strings"

	"bitbucket.org/airenas/faimsgo/internal/pkg/cmdapp"
	"github.com/google/uuid"
	"github.com/pkg/errors"
)

var requiredColumns = []string{ColUUID, ColCreatedAtGMT, ColConsentFormPhoto,
	ColH2nFiles, ColH6PrimaryMic, ColH6ExternalMic, ColBackupRecordings}

// values of these must be non empty in every row,
// BackupRecordings is optional
var requiredValues = []string{ColUUID, ColCreatedAtGMT, ColConsentFormPhoto,
	ColH2nFiles, ColH6PrimaryMic, ColH6ExternalMic}

//Reader reads speaker records from the FAIMS export file
type Reader struct {
	dir string
}

//NewReader creates a Reader for the input directory
func NewReader(dir string) (*Reader, error) {
	if dir == "" {
		return nil, errors.New("No input directory provided")
	}
	return &Reader{dir: dir}, nil
}

//Read parses the export file into ordered records
func (r *Reader) Read() ([]*Record, error) {
	fn := filepath.Join(r.dir, ExportFileName)
	f, err := os.Open(fn)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, errors.Wrap(ErrMissingInput, fn)
		}
		return nil, errors.Wrap(err, "Can't open "+fn)
	}
	defer f.Close()
	cmdapp.Log.Debugf("Reading %s", fn)

	cr := csv.NewReader(f)
	header, err := cr.Read()
	if err != nil {
		return nil, errors.Wrap(err, "Can't read header of "+fn)
	}
	for i, h := range header {
		header[i] = strings.TrimSpace(h)
	}
	if err := checkHeader(header); err != nil {
		return nil, err
	}

	var res []*Record
	line := 1
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		line++
		if err != nil {
			return nil, errors.Wrapf(err, "Can't read line %d of %s", line, fn)
		}
		values := make(map[string]string, len(header))
		for i, h := range header {
			values[h] = row[i]
		}
		rec := NewRecord(header, values)
		if err := checkRecord(rec, line); err != nil {
			return nil, err
		}
		res = append(res, rec)
	}
	return res, nil
}

func checkHeader(header []string) error {
	cols := make(map[string]bool, len(header))
	for _, h := range header {
		cols[h] = true
	}
	for _, c := range requiredColumns {
		if !cols[c] {
			return errors.Wrapf(ErrMalformedRecord, "no column '%s'", c)
		}
	}
	return nil
}

func checkRecord(rec *Record, line int) error {
	for _, c := range requiredValues {
		if rec.Get(c) == "" {
			return errors.Wrapf(ErrMalformedRecord, "line %d: no value for '%s'", line, c)
		}
	}
	if _, err := uuid.Parse(rec.Get(ColUUID)); err != nil {
		return errors.Wrapf(ErrMalformedRecord, "line %d: wrong uuid '%s'", line, rec.Get(ColUUID))
	}
	return nil
}
