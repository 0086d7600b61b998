package mapping

import (
	"bitbucket.org/airenas/faimsgo/internal/pkg/alveo"
	"bitbucket.org/airenas/faimsgo/internal/pkg/faims"
	"github.com/pkg/errors"
)

//MapItem derives Alveo item metadata from the sidecar and the record.
//speakerURI links the item back to the already created speaker
func MapItem(s faims.Sidecar, r *faims.Record, speakerURI string) (alveo.Metadata, error) {
	md := alveo.Metadata{}
	for k, v := range s {
		md[k] = v
	}
	delete(md, "SourceFile")
	md["dcterms:title"] = pop(md, "ImageDescription")
	md["dcterms:creator"] = pop(md, "XPAuthor")

	kw := s.Keywords()
	if len(kw) == 0 {
		return nil, errors.Wrap(faims.ErrMalformedRecord, "no keywords in sidecar")
	}
	md["dcterms:created"] = kw[0]
	// the record timestamp wins over the sidecar date
	created, err := TruncateDate(r.Get(faims.ColCreatedAtGMT))
	if err != nil {
		return nil, err
	}
	md["dcterms:created"] = created
	md["olac:speaker"] = speakerURI
	return md, nil
}

func pop(md alveo.Metadata, key string) interface{} {
	v, ok := md[key]
	if !ok {
		return ""
	}
	delete(md, key)
	return v
}
