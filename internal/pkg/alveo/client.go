package alveo

import (
	"bytes"
	"encoding/json"
	"io"
	"io/ioutil"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"time"

	"bitbucket.org/airenas/faimsgo/internal/pkg/cmdapp"
	"bitbucket.org/airenas/faimsgo/internal/pkg/utils"
	"github.com/pkg/errors"
)

//Client comunicates with the Alveo repository API
type Client struct {
	httpclient *http.Client
	url        string
	key        string
}

//NewClient creates an Alveo API client
func NewClient(urlStr, key string, timeout time.Duration) (*Client, error) {
	res := Client{}
	urlRes, err := url.Parse(urlStr)
	if err != nil {
		return nil, errors.Wrap(err, "Can't parse url "+urlStr)
	}
	if urlRes.Host == "" {
		return nil, errors.New("Can't parse url " + urlStr)
	}
	if key == "" {
		return nil, errors.New("No API key provided")
	}
	res.url = urlRes.String()
	res.key = key
	if timeout <= 0 {
		timeout = 10 * time.Minute
	}
	res.httpclient = &http.Client{Timeout: timeout}
	return &res, nil
}

//SpeakerURI resolves the speaker URI from collection and id
func (c *Client) SpeakerURI(collection, id string) string {
	return utils.URLJoin(c.url, "speakers", collection, id)
}

//ItemURI resolves the catalog item URI from collection and id
func (c *Client) ItemURI(collection, id string) string {
	return utils.URLJoin(c.url, "catalog", collection, id)
}

//AddSpeaker creates a speaker in the collection
func (c *Client) AddSpeaker(collection, id string, md Metadata) (*AddResult, error) {
	return c.add(utils.URLJoin(c.url, "speakers", collection), c.SpeakerURI(collection, id), md)
}

//AddItem creates a catalog item in the collection
func (c *Client) AddItem(collection, id string, md Metadata) (*AddResult, error) {
	payload := map[string]interface{}{"items": []interface{}{
		map[string]interface{}{"name": id, "metadata": md}}}
	return c.add(utils.URLJoin(c.url, "catalog", collection), c.ItemURI(collection, id), payload)
}

func (c *Client) add(urlStr, knownURI string, payload interface{}) (*AddResult, error) {
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, errors.Wrap(err, "Can't marshal metadata")
	}
	req, err := http.NewRequest("POST", urlStr, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	cmdapp.Log.Debugf("Posting to: %s", urlStr)
	resp, err := c.invoke(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	if resp.StatusCode == http.StatusConflict || resp.StatusCode == http.StatusPreconditionFailed {
		return &AddResult{URI: knownURI, Existed: true}, nil
	}
	if err := c.validate(resp); err != nil {
		return nil, err
	}
	var rd struct {
		URI string `json:"uri"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rd); err != nil || rd.URI == "" {
		return &AddResult{URI: knownURI}, nil
	}
	return &AddResult{URI: rd.URI}, nil
}

//AddDocument uploads a file as a document of the item
func (c *Client) AddDocument(itemURI, name, file string, md Metadata, display bool) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", errors.Wrap(err, "Can't open file "+file)
	}
	defer f.Close()

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	mdBytes, err := json.Marshal(md)
	if err != nil {
		return "", errors.Wrap(err, "Can't marshal metadata")
	}
	writer.WriteField("metadata", string(mdBytes))
	writer.WriteField("name", name)
	if display {
		writer.WriteField("display", "true")
	}
	part, err := writer.CreateFormFile("file", filepath.Base(file))
	if err != nil {
		return "", errors.Wrap(err, "Can't add file to request")
	}
	if _, err := io.Copy(part, f); err != nil {
		return "", errors.Wrap(err, "Can't add file to request")
	}
	writer.Close()

	urlStr := utils.URLJoin(itemURI, "documents")
	req, err := http.NewRequest("POST", urlStr, body)
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", writer.FormDataContentType())
	cmdapp.Log.Debugf("Sending %s to: %s", file, urlStr)
	resp, err := c.invoke(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()
	if err := c.validate(resp); err != nil {
		return "", err
	}
	var rd struct {
		ID      string `json:"id"`
		Success string `json:"success"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&rd); err != nil {
		return name, nil
	}
	if rd.ID != "" {
		return rd.ID, nil
	}
	if rd.Success != "" {
		return rd.Success, nil
	}
	return name, nil
}

//DeleteSpeaker deletes a speaker
func (c *Client) DeleteSpeaker(collection, id string) error {
	return c.delete(c.SpeakerURI(collection, id))
}

//DeleteItem deletes a catalog item
func (c *Client) DeleteItem(collection, id string) error {
	return c.delete(c.ItemURI(collection, id))
}

func (c *Client) delete(urlStr string) error {
	req, err := http.NewRequest("DELETE", urlStr, nil)
	if err != nil {
		return err
	}
	cmdapp.Log.Debugf("Deleting: %s", urlStr)
	resp, err := c.invoke(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	return c.validate(resp)
}

func (c *Client) invoke(req *http.Request) (*http.Response, error) {
	req.Header.Set("X-API-KEY", c.key)
	req.Header.Set("Accept", "application/json")
	resp, err := c.httpclient.Do(req)
	if err != nil {
		return nil, errors.Wrap(err, "Can't call "+req.URL.String())
	}
	return resp, nil
}

func (c *Client) validate(resp *http.Response) error {
	if resp.StatusCode == http.StatusForbidden {
		io.Copy(ioutil.Discard, resp.Body)
		return errors.Wrap(ErrForbidden, resp.Request.URL.String())
	}
	return utils.ValidateResponse(resp)
}
