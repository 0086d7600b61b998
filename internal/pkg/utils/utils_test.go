package utils

import (
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestURLJoin(t *testing.T) {
	assert.Equal(t, "http://delfi.lt/olia", URLJoin("http://delfi.lt", "olia"))
	assert.Equal(t, "http://delfi.lt/olia", URLJoin("http://delfi.lt/", "olia"))
	assert.Equal(t, "http://delfi.lt/olia/1", URLJoin("http://delfi.lt/", "olia", "1"))
	assert.Equal(t, "http://delfi.lt/olia/1", URLJoin("http://delfi.lt/", "olia/", "1"))
}

func TestURLJoin_NoHost(t *testing.T) {
	assert.Equal(t, "olia/1", URLJoin("olia", "1"))
}

func TestValidateResponse(t *testing.T) {
	resp := httptest.NewRecorder()
	resp.Code = 200
	assert.Nil(t, ValidateResponse(resp.Result()))
	resp.Code = 299
	assert.Nil(t, ValidateResponse(resp.Result()))
}

func TestValidateResponse_Fails(t *testing.T) {
	resp := httptest.NewRecorder()
	resp.Code = 400
	assert.NotNil(t, ValidateResponse(resp.Result()))
	resp.Code = 500
	assert.NotNil(t, ValidateResponse(resp.Result()))
}

func TestFileStem(t *testing.T) {
	assert.Equal(t, "h6ext", FileStem("h6ext.wav"))
	assert.Equal(t, "h6ext", FileStem("/data/in/h6ext.wav"))
	assert.Equal(t, "h6ext", FileStem("h6ext"))
	assert.Equal(t, "h6ext.old", FileStem("h6ext.old.wav"))
}

func TestGetURLFromConfig_Empty(t *testing.T) {
	_, err := GetURLFromConfig("no.such.setting")
	assert.NotNil(t, err)
}
