package services

import (
	"context"
	"net/url"

	"github.com/avelichko/snipcli/internal/client/api"
)

// fakeGateway implements api.Gateway for service tests: one canned response
// (or error) per call, recording the last request for assertions.
type fakeGateway struct {
	Envelope *api.Envelope
	SendErr  error

	DownloadRet []byte
	DownloadErr error

	LastMethod string
	LastPath   string
	LastParams url.Values
	LastBody   any
}

func (f *fakeGateway) Send(ctx context.Context, method, path string, params url.Values, body any) (*api.Envelope, error) {
	f.LastMethod = method
	f.LastPath = path
	f.LastParams = params
	f.LastBody = body
	if f.SendErr != nil {
		return nil, f.SendErr
	}
	return f.Envelope, nil
}

func (f *fakeGateway) Download(ctx context.Context, path string, params url.Values) ([]byte, error) {
	f.LastMethod = "GET"
	f.LastPath = path
	f.LastParams = params
	return f.DownloadRet, f.DownloadErr
}

func mustEnvelope(raw string) *api.Envelope {
	env, err := api.ParseEnvelope([]byte(raw))
	if err != nil {
		panic(err)
	}
	return env
}
