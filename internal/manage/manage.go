// Package manage dumps the site's preview document.
package manage

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
)

// Source returns the preview document. *preview.Client satisfies it.
type Source interface {
	FetchJSON(ctx context.Context) (json.RawMessage, error)
}

type Fetcher struct {
	source Source
	out    io.Writer
	logger *log.Logger
	status string
}

func NewFetcher(src Source, out io.Writer, logger *log.Logger) *Fetcher {
	if out == nil {
		out = io.Discard
	}
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Fetcher{source: src, out: out, logger: logger}
}

// Status is empty until a run fails, then holds the error text.
func (f *Fetcher) Status() string { return f.status }

// Run fetches the document once and writes it indented to the output.
func (f *Fetcher) Run(ctx context.Context) error {
	data, err := f.source.FetchJSON(ctx)
	if err != nil {
		f.status = err.Error()
		f.logger.Printf("fetch preview json: %v", err)
		return err
	}
	f.status = ""

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", "  "); err != nil {
		f.status = err.Error()
		return fmt.Errorf("indent preview json: %w", err)
	}
	f.logger.Printf("fetched preview json (%d bytes)", len(data))
	buf.WriteByte('\n')
	_, err = f.out.Write(buf.Bytes())
	return err
}
