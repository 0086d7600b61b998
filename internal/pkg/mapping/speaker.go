package mapping

import (
	"unicode"
	"unicode/utf8"

	"bitbucket.org/airenas/faimsgo/internal/pkg/alveo"
	"bitbucket.org/airenas/faimsgo/internal/pkg/faims"
	"github.com/pkg/errors"
)

//NamespacePrefix is put before every copied record field
const NamespacePrefix = "austalk:"

//ErrDateFormat indicates the timestamp field is too short to truncate
var ErrDateFormat = errors.New("wrong date format")

// file locations are used for upload only, they may not leak into metadata
var fileRefColumns = []string{faims.ColConsentFormPhoto, faims.ColH2nFiles,
	faims.ColH6PrimaryMic, faims.ColH6ExternalMic, faims.ColBackupRecordings}

//MapSpeaker derives Alveo speaker metadata from the record
func MapSpeaker(r *faims.Record) (alveo.Metadata, error) {
	md := alveo.Metadata{}
	for _, c := range r.Columns() {
		md[FieldKey(c)] = r.Get(c)
	}
	created, err := TruncateDate(r.Get(faims.ColCreatedAtGMT))
	if err != nil {
		return nil, err
	}
	md["dcterms:identifier"] = r.Get(faims.ColUUID)
	md["dcterms:created"] = created
	md["foaf:name"] = r.Get(faims.ColFirstName) + " " + r.Get(faims.ColLastName)
	md["foaf:gender"] = r.Get(faims.ColGender)
	md["austalk:pob_town"] = r.Get(faims.ColTownOfBirth)
	md["austalk:pob_country"] = r.Get(faims.ColCountryOfBirth)
	for _, c := range fileRefColumns {
		delete(md, FieldKey(c))
	}
	prune(md)
	return md, nil
}

//FieldKey makes the metadata key for a record column
func FieldKey(column string) string {
	return NamespacePrefix + lowerFirst(column)
}

//TruncateDate truncates a GMT timestamp to the calendar date
func TruncateDate(timestamp string) (string, error) {
	if len(timestamp) < 10 {
		return "", errors.Wrap(ErrDateFormat, "'"+timestamp+"'")
	}
	return timestamp[:10], nil
}

func lowerFirst(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}
	return string(unicode.ToLower(r)) + s[size:]
}

func prune(md alveo.Metadata) {
	for k, v := range md {
		if v == nil {
			delete(md, k)
			continue
		}
		if s, ok := v.(string); ok && s == "" {
			delete(md, k)
		}
	}
}
