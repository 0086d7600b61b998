package mocks

import (
	"bitbucket.org/airenas/faimsgo/internal/pkg/alveo"
	"github.com/stretchr/testify/mock"
)

//Repository is a mock
type Repository struct {
	mock.Mock
}

//AddSpeaker is a mocked AddSpeaker function
func (m *Repository) AddSpeaker(collection, id string, md alveo.Metadata) (*alveo.AddResult, error) {
	args := m.Mock.Called(collection, id, md)
	var res *alveo.AddResult
	if args.Get(0) != nil {
		res = args.Get(0).(*alveo.AddResult)
	}
	return res, args.Error(1)
}

//AddItem is a mocked AddItem function
func (m *Repository) AddItem(collection, id string, md alveo.Metadata) (*alveo.AddResult, error) {
	args := m.Mock.Called(collection, id, md)
	var res *alveo.AddResult
	if args.Get(0) != nil {
		res = args.Get(0).(*alveo.AddResult)
	}
	return res, args.Error(1)
}

//AddDocument is a mocked AddDocument function
func (m *Repository) AddDocument(itemURI, name, file string, md alveo.Metadata, display bool) (string, error) {
	args := m.Mock.Called(itemURI, name, file, md, display)
	return args.String(0), args.Error(1)
}

//DeleteSpeaker is a mocked DeleteSpeaker function
func (m *Repository) DeleteSpeaker(collection, id string) error {
	args := m.Mock.Called(collection, id)
	return args.Error(0)
}

//DeleteItem is a mocked DeleteItem function
func (m *Repository) DeleteItem(collection, id string) error {
	args := m.Mock.Called(collection, id)
	return args.Error(0)
}
