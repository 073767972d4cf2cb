package upload

import (
	"context"
	"errors"
	"sync"
)

// FlowState is a snapshot of an upload flow.
type FlowState struct {
	Progress  int
	Err       string
	Uploading bool
}

// Flow is the drop-event state machine: it validates incoming files, runs at
// most the first file of a drop through the upload client, and tracks
// progress and error state across attempts. A later valid drop clears any
// earlier error. Drops are not serialized against an in-flight upload; the
// interactive layer decides whether to allow re-triggering.
type Flow struct {
	client     *Client
	onComplete func(*Result)

	mu        sync.Mutex
	progress  int
	errMsg    string
	uploading bool
}

// NewFlow creates an upload flow. onComplete, if non-nil, receives the parsed
// response body after a successful upload.
func NewFlow(client *Client, onComplete func(*Result)) *Flow {
	return &Flow{client: client, onComplete: onComplete}
}

// HandleDrop processes a drop or selection event carrying zero or more file
// paths. Only the first file is considered. Validation failures set the error
// state without issuing a request.
func (f *Flow) HandleDrop(ctx context.Context, paths ...string) (*Result, error) {
	if len(paths) == 0 {
		f.setError(MsgNoFile)
		return nil, errors.New(MsgNoFile)
	}

	path := paths[0]
	if !IsPDF(path) {
		f.setError(MsgNotPDF)
		return nil, errors.New(MsgNotPDF)
	}

	f.mu.Lock()
	f.errMsg = ""
	f.progress = 0
	f.uploading = true
	f.mu.Unlock()

	defer func() {
		f.mu.Lock()
		f.uploading = false
		f.mu.Unlock()
	}()

	result, err := f.client.Upload(ctx, path, f.setProgress)
	if err != nil {
		f.setError(err.Error())
		return nil, err
	}

	f.setProgress(100)
	if f.onComplete != nil {
		f.onComplete(result)
	}
	return result, nil
}

// State returns the current flow state.
func (f *Flow) State() FlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return FlowState{Progress: f.progress, Err: f.errMsg, Uploading: f.uploading}
}

func (f *Flow) setProgress(pct int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.progress = pct
}

func (f *Flow) setError(msg string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.errMsg = msg
}
