package importer

import (
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"bitbucket.org/airenas/faimsgo/internal/pkg/alveo"
	"bitbucket.org/airenas/faimsgo/internal/pkg/cmdapp"
	"bitbucket.org/airenas/faimsgo/internal/pkg/faims"
	"bitbucket.org/airenas/faimsgo/internal/pkg/mapping"
	"bitbucket.org/airenas/faimsgo/internal/pkg/utils"
	"github.com/pkg/errors"
)

//RecordsReader provides the speaker records of the export
type RecordsReader interface {
	Read() ([]*faims.Record, error)
}

//SidecarLoader loads item metadata files
type SidecarLoader interface {
	Load(name string) (faims.Sidecar, error)
}

//Repository is the remote Alveo collaborator
type Repository interface {
	AddSpeaker(collection, id string, md alveo.Metadata) (*alveo.AddResult, error)
	AddItem(collection, id string, md alveo.Metadata) (*alveo.AddResult, error)
	AddDocument(itemURI, name, file string, md alveo.Metadata, display bool) (string, error)
	DeleteSpeaker(collection, id string) error
	DeleteItem(collection, id string) error
}

//Transcoder makes a downsampled copy of an audio file
type Transcoder interface {
	Transcode(src, resultName string) (string, error)
}

// ServiceData keeps data required for the import
type ServiceData struct {
	Reader     RecordsReader
	Sidecars   SidecarLoader
	Repo       Repository
	Transcoder Transcoder

	Collection      string
	InputDir        string
	TranscodeFormat string
	Overwrite       bool
	SkipTranscode   bool
	IncludeBackup   bool
	KeepOriginal    bool
}

type document struct {
	file        string
	role        string
	display     bool
	noTranscode bool
}

//RunImport processes all records of the input directory one by one
func RunImport(data *ServiceData) error {
	if err := checkService(data); err != nil {
		return err
	}
	records, err := data.Reader.Read()
	if err != nil {
		return errors.Wrap(err, "Can't read input records")
	}
	cmdapp.Log.Infof("Found %d speakers", len(records))
	for _, rec := range records {
		if err := importRecord(data, rec); err != nil {
			if errors.Is(err, alveo.ErrForbidden) {
				cmdapp.Log.Errorf("Unable to ingest data: no write access to the collection %s", data.Collection)
				return err
			}
			if isRecordScoped(err) {
				cmdapp.Log.Warnf("Skipping speaker %s: %s", rec.Get(faims.ColIdentifier), err.Error())
				continue
			}
			return err
		}
	}
	cmdapp.Log.Info("All data has been added to Alveo")
	return nil
}

func checkService(data *ServiceData) error {
	if data.Reader == nil {
		return errors.New("No records reader")
	}
	if data.Sidecars == nil {
		return errors.New("No sidecar loader")
	}
	if data.Repo == nil {
		return errors.New("No repository")
	}
	if data.Collection == "" {
		return errors.New("No collection")
	}
	if !data.SkipTranscode && data.Transcoder == nil {
		return errors.New("No transcoder")
	}
	if !data.SkipTranscode && data.TranscodeFormat == "" {
		return errors.New("No transcode format")
	}
	return nil
}

func isRecordScoped(err error) bool {
	return errors.Is(err, faims.ErrMissingSidecar) || errors.Is(err, faims.ErrMalformedRecord) ||
		errors.Is(err, mapping.ErrDateFormat)
}

func importRecord(data *ServiceData, rec *faims.Record) error {
	start := time.Now()
	id := rec.Get(faims.ColUUID)
	cmdapp.Log.Infof("Handling speaker: %s", rec.Get(faims.ColIdentifier))
	if data.Overwrite {
		cmdapp.LogIf(data.Repo.DeleteSpeaker(data.Collection, id))
	}
	md, err := mapping.MapSpeaker(rec)
	if err != nil {
		return err
	}
	res, err := data.Repo.AddSpeaker(data.Collection, id, md)
	if err != nil {
		return err
	}
	if res.Existed {
		cmdapp.Log.Infof("Skipping speaker %s: already exists. URI: %s",
			rec.Get(faims.ColIdentifier), res.URI)
		return nil
	}
	cmdapp.Log.Infof("Added speaker: %s (%s)", res.URI, elapsed(start))

	sidecar, err := data.Sidecars.Load(sidecarName(rec))
	if err != nil {
		return err
	}
	itemID := sidecar.ImageID()
	if itemID == "" {
		return errors.Wrap(faims.ErrMalformedRecord, "no ImageID in sidecar")
	}
	if data.Overwrite {
		cmdapp.LogIf(data.Repo.DeleteItem(data.Collection, itemID))
	}
	imd, err := mapping.MapItem(sidecar, rec, res.URI)
	if err != nil {
		return err
	}
	ires, err := data.Repo.AddItem(data.Collection, itemID, imd)
	if err != nil {
		return err
	}
	if ires.Existed {
		cmdapp.Log.Infof("Skipping item %s: already exists. URI: %s", itemID, ires.URI)
		return nil
	}
	cmdapp.Log.Infof("Added item: %s (%s)", ires.URI, elapsed(start))

	for _, doc := range planDocuments(data, rec) {
		if err := uploadDocument(data, ires.URI, doc); err != nil {
			return err
		}
	}
	cmdapp.Log.Infof("Finished speaker %s (%s)", rec.Get(faims.ColIdentifier), elapsed(start))
	return nil
}

func planDocuments(data *ServiceData, rec *faims.Record) []document {
	docPath := func(column string) string {
		return filepath.Join(data.InputDir, rec.Get(column))
	}
	res := []document{
		{file: docPath(faims.ColConsentFormPhoto), role: "consentform", noTranscode: true},
		{file: docPath(faims.ColH2nFiles), role: "h2n"},
		{file: docPath(faims.ColH6PrimaryMic), role: "h6primary"},
		{file: docPath(faims.ColH6ExternalMic), role: "h6external", display: true},
	}
	if data.KeepOriginal && !data.SkipTranscode {
		res = append(res, document{file: docPath(faims.ColH6ExternalMic),
			role: "h6external_original", noTranscode: true})
	}
	if data.IncludeBackup {
		if rec.Get(faims.ColBackupRecordings) == "" {
			cmdapp.Log.Warnf("No backup recording for speaker %s", rec.Get(faims.ColIdentifier))
		} else {
			res = append(res, document{file: docPath(faims.ColBackupRecordings),
				role: "backup", noTranscode: true})
		}
	}
	return res
}

func uploadDocument(data *ServiceData, itemURI string, doc document) error {
	start := time.Now()
	file := doc.file
	name := documentName(file, doc.role)
	if !doc.noTranscode && !data.SkipTranscode {
		cmdapp.Log.Infof("Starting audio transcode for %s...", file)
		resultName := transcodedName(file, doc.role, data.TranscodeFormat)
		out, err := data.Transcoder.Transcode(file, resultName)
		if err != nil {
			cmdapp.Log.Warnf("Failed to transcode %s (%s): %s", file, elapsed(start), err.Error())
			return nil
		}
		cmdapp.Log.Infof("Finished audio transcode (%s)", elapsed(start))
		file, name = out, resultName
	}
	id, err := data.Repo.AddDocument(itemURI, name, file,
		alveo.Metadata{"dcterms:identifier": name}, doc.display)
	if err != nil {
		return errors.Wrap(err, "Can't add document "+name)
	}
	cmdapp.Log.Infof("Added document %s: %s (%s)", doc.role, id, elapsed(start))
	return nil
}

func documentName(file, role string) string {
	return utils.FileStem(file) + "_" + role + filepath.Ext(file)
}

func transcodedName(file, role, format string) string {
	return utils.FileStem(file) + "_" + role + "_downsampled." + format
}

func sidecarName(rec *faims.Record) string {
	f := rec.Get(faims.ColH2nFiles)
	return strings.TrimSuffix(f, filepath.Ext(f)) + ".json"
}

func elapsed(start time.Time) string {
	return strconv.Itoa(int(time.Since(start).Seconds())) + "s"
}
