package faims

import (
	"github.com/pkg/errors"
)

//ExportFileName is the fixed name of the tabular FAIMS export
const ExportFileName = "Entity-Interview.csv"

//Known columns of the export file
const (
	ColUUID             = "uuid"
	ColIdentifier       = "identifier"
	ColCreatedAtGMT     = "createdAtGMT"
	ColFirstName        = "FirstName"
	ColLastName         = "LastName"
	ColGender           = "Gender"
	ColTownOfBirth      = "TownOfBirth"
	ColCountryOfBirth   = "CountryOfBirth"
	ColConsentFormPhoto = "PhotoOfSignedConsentForm"
	ColH2nFiles         = "ZoomH2nFiles"
	ColH6PrimaryMic     = "ZoomH6PrimaryMic"
	ColH6ExternalMic    = "ZoomH6ExternalMic"
	ColBackupRecordings = "BackupRecordings"
)

//ErrMissingInput indicates a required input file is absent
var ErrMissingInput = errors.New("input file not found")

//ErrMalformedRecord indicates a required field is missing or malformed
var ErrMalformedRecord = errors.New("malformed record")

//ErrMissingSidecar indicates the item metadata file is absent
var ErrMissingSidecar = errors.New("sidecar file not found")

//Record is one row of the export - an ordered column to value mapping
type Record struct {
	columns []string
	values  map[string]string
}

//NewRecord creates a record from columns and values
func NewRecord(columns []string, values map[string]string) *Record {
	cp := make(map[string]string, len(values))
	for k, v := range values {
		cp[k] = v
	}
	return &Record{columns: append([]string{}, columns...), values: cp}
}

//Get returns the value of a column or empty string
func (r *Record) Get(column string) string {
	return r.values[column]
}

//Has tests if the record has the column
func (r *Record) Has(column string) bool {
	_, ok := r.values[column]
	return ok
}

//Columns returns column names in the export file order
func (r *Record) Columns() []string {
	return append([]string{}, r.columns...)
}
