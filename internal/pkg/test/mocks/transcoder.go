package mocks

import (
	"github.com/stretchr/testify/mock"
)

//Transcoder is a mock
type Transcoder struct {
	mock.Mock
}

//Transcode is a mocked Transcode function
func (m *Transcoder) Transcode(src, resultName string) (string, error) {
	args := m.Mock.Called(src, resultName)
	return args.String(0), args.Error(1)
}
