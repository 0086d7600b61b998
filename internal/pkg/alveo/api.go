package alveo

import "github.com/pkg/errors"

//Metadata keeps fields of a speaker, item or document
type Metadata map[string]interface{}

//ErrForbidden indicates the user has no write access to the collection
var ErrForbidden = errors.New("no write access to the collection")

//AddResult is the outcome of a create call.
//Existed is set instead of an error when the resource was already there
type AddResult struct {
	URI     string
	Existed bool
}
