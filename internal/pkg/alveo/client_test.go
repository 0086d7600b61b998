package alveo

import (
	"encoding/json"
	"io/ioutil"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
)

type testReq struct {
	method string
	path   string
	key    string
	body   []byte
}

func newTestServer(t *testing.T, code int, resp string) (*httptest.Server, *testReq) {
	tr := &testReq{}
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tr.method = r.Method
		tr.path = r.URL.Path
		tr.key = r.Header.Get("X-API-KEY")
		tr.body, _ = ioutil.ReadAll(r.Body)
		w.WriteHeader(code)
		w.Write([]byte(resp))
	}))
	return server, tr
}

func newTestClient(t *testing.T, url string) *Client {
	c, err := NewClient(url, "testKey", time.Minute)
	assert.Nil(t, err)
	return c
}

func TestNewClient_Fails(t *testing.T) {
	_, err := NewClient("", "key", time.Minute)
	assert.NotNil(t, err)
	_, err = NewClient("olia", "key", time.Minute)
	assert.NotNil(t, err)
	_, err = NewClient("http://server.lt", "", time.Minute)
	assert.NotNil(t, err)
}

func TestAddSpeaker(t *testing.T) {
	server, tr := newTestServer(t, 201, `{"uri":"http://server.lt/speakers/col/id1"}`)
	defer server.Close()
	c := newTestClient(t, server.URL)

	res, err := c.AddSpeaker("col", "id1", Metadata{"dcterms:identifier": "id1"})
	assert.Nil(t, err)
	assert.False(t, res.Existed)
	assert.Equal(t, "http://server.lt/speakers/col/id1", res.URI)
	assert.Equal(t, "POST", tr.method)
	assert.Equal(t, "/speakers/col", tr.path)
	assert.Equal(t, "testKey", tr.key)
}

func TestAddSpeaker_Conflict(t *testing.T) {
	server, _ := newTestServer(t, 412, "")
	defer server.Close()
	c := newTestClient(t, server.URL)

	res, err := c.AddSpeaker("col", "id1", Metadata{})
	assert.Nil(t, err)
	assert.True(t, res.Existed)
	assert.Equal(t, server.URL+"/speakers/col/id1", res.URI)
}

func TestAddSpeaker_Conflict409(t *testing.T) {
	server, _ := newTestServer(t, 409, "")
	defer server.Close()
	c := newTestClient(t, server.URL)

	res, err := c.AddSpeaker("col", "id1", Metadata{})
	assert.Nil(t, err)
	assert.True(t, res.Existed)
}

func TestAddSpeaker_Forbidden(t *testing.T) {
	server, _ := newTestServer(t, 403, "")
	defer server.Close()
	c := newTestClient(t, server.URL)

	_, err := c.AddSpeaker("col", "id1", Metadata{})
	assert.True(t, errors.Is(err, ErrForbidden))
}

func TestAddSpeaker_Fails(t *testing.T) {
	server, _ := newTestServer(t, 500, "")
	defer server.Close()
	c := newTestClient(t, server.URL)

	_, err := c.AddSpeaker("col", "id1", Metadata{})
	assert.NotNil(t, err)
	assert.False(t, errors.Is(err, ErrForbidden))
}

func TestAddItem(t *testing.T) {
	server, tr := newTestServer(t, 200, "{}")
	defer server.Close()
	c := newTestClient(t, server.URL)

	res, err := c.AddItem("col", "it1", Metadata{"dcterms:title": "olia"})
	assert.Nil(t, err)
	assert.False(t, res.Existed)
	assert.Equal(t, server.URL+"/catalog/col/it1", res.URI)
	assert.Equal(t, "/catalog/col", tr.path)

	var payload map[string]interface{}
	assert.Nil(t, json.Unmarshal(tr.body, &payload))
	items := payload["items"].([]interface{})
	assert.Equal(t, 1, len(items))
	assert.Equal(t, "it1", items[0].(map[string]interface{})["name"])
}

func TestAddDocument(t *testing.T) {
	var gotName, gotDisplay, gotFile string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		r.ParseMultipartForm(32 << 20)
		gotName = r.FormValue("name")
		gotDisplay = r.FormValue("display")
		f, _, err := r.FormFile("file")
		if err == nil {
			b, _ := ioutil.ReadAll(f)
			gotFile = string(b)
			f.Close()
		}
		w.Write([]byte(`{"id":"doc1"}`))
	}))
	defer server.Close()
	c := newTestClient(t, server.URL)

	file := newTestFile(t, "olia data")
	defer os.Remove(file)

	id, err := c.AddDocument(server.URL+"/catalog/col/it1", "h6ext_h6external.wav", file,
		Metadata{"dcterms:identifier": "h6ext_h6external.wav"}, true)
	assert.Nil(t, err)
	assert.Equal(t, "doc1", id)
	assert.Equal(t, "h6ext_h6external.wav", gotName)
	assert.Equal(t, "true", gotDisplay)
	assert.Equal(t, "olia data", gotFile)
}

func TestAddDocument_NoFile(t *testing.T) {
	c := newTestClient(t, "http://server.lt")
	_, err := c.AddDocument("http://server.lt/catalog/col/it1", "name", "/no/such/file.wav", Metadata{}, false)
	assert.NotNil(t, err)
}

func TestDeleteSpeaker(t *testing.T) {
	server, tr := newTestServer(t, 200, "")
	defer server.Close()
	c := newTestClient(t, server.URL)

	err := c.DeleteSpeaker("col", "id1")
	assert.Nil(t, err)
	assert.Equal(t, "DELETE", tr.method)
	assert.Equal(t, "/speakers/col/id1", tr.path)
}

func TestDeleteItem_Fails(t *testing.T) {
	server, _ := newTestServer(t, 404, "")
	defer server.Close()
	c := newTestClient(t, server.URL)

	err := c.DeleteItem("col", "it1")
	assert.NotNil(t, err)
}

func newTestFile(t *testing.T, data string) string {
	f, err := ioutil.TempFile("", "alveoTest.*.wav")
	assert.Nil(t, err)
	f.WriteString(data)
	f.Close()
	return filepath.ToSlash(f.Name())
}
