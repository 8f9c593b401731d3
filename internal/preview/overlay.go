package preview

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"

	"github.com/san-kum/pagefx/internal/page"
)

const invalidJSONMessage = "Invalid JSON. Please fix errors before updating."

var (
	ErrInvalidJSON = errors.New("invalid JSON")
	ErrClosed      = errors.New("overlay is closed")
)

type State int

const (
	Closed State = iota
	Open
)

func (s State) String() string {
	if s == Open {
		return "open"
	}
	return "closed"
}

// Backend reads and writes target data. *Client satisfies it.
type Backend interface {
	Fetch(ctx context.Context, t Target) (json.RawMessage, error)
	Submit(ctx context.Context, t Target, body json.RawMessage) (json.RawMessage, error)
}

// Overlay is the edit form: closed, or open on one target with the text
// being edited.
type Overlay struct {
	backend   Backend
	notifier  page.Notifier
	navigator page.Navigator
	logger    *log.Logger

	state  State
	target Target
	text   string
}

func NewOverlay(b Backend, n page.Notifier, nav page.Navigator, logger *log.Logger) *Overlay {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Overlay{backend: b, notifier: n, navigator: nav, logger: logger}
}

func (o *Overlay) State() State   { return o.state }
func (o *Overlay) Target() Target { return o.target }
func (o *Overlay) Text() string   { return o.text }

// Open fetches the target and shows its data as indented JSON. On failure
// the overlay keeps its previous state.
func (o *Overlay) Open(ctx context.Context, t Target) error {
	data, err := o.backend.Fetch(ctx, t)
	if err != nil {
		o.logger.Printf("fetch %s: %v", t, err)
		return err
	}
	text, err := indent(data)
	if err != nil {
		o.logger.Printf("fetch %s: %v", t, err)
		return err
	}
	o.state = Open
	o.target = t
	o.text = text
	return nil
}

// Cancel closes the overlay without touching the server.
func (o *Overlay) Cancel() {
	o.state = Closed
	o.text = ""
}

// ShowAll swaps the open element for the whole page at path. Later updates
// go to the page endpoint. On failure the old target and text stay.
func (o *Overlay) ShowAll(ctx context.Context, path string) error {
	if o.state != Open {
		return ErrClosed
	}
	t := Page(path)
	data, err := o.backend.Fetch(ctx, t)
	if err != nil {
		o.logger.Printf("fetch %s: %v", t, err)
		return err
	}
	text, err := indent(data)
	if err != nil {
		o.logger.Printf("fetch %s: %v", t, err)
		return err
	}
	o.target = t
	o.text = text
	return nil
}

// Update validates text and posts it to the current target. Invalid JSON
// alerts and never reaches the server. A successful post closes the overlay
// and reloads the page; a failed one leaves it open with the edited text.
func (o *Overlay) Update(ctx context.Context, text string) error {
	if o.state != Open {
		return ErrClosed
	}
	o.text = text

	var body bytes.Buffer
	if err := json.Compact(&body, []byte(text)); err != nil {
		o.notifier.Alert(invalidJSONMessage)
		return ErrInvalidJSON
	}

	result, err := o.backend.Submit(ctx, o.target, body.Bytes())
	if err != nil {
		o.logger.Printf("update %s: %v", o.target, err)
		return err
	}
	o.logger.Printf("update %s result: %s", o.target, result)

	o.Cancel()
	o.navigator.Reload()
	return nil
}

func indent(data []byte) (string, error) {
	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		return "", err
	}
	return buf.String(), nil
}
