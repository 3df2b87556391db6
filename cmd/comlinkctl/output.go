package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/samvad-hq/swgoh-comlink-go/pkg/comlink"
)

func printJSON(out io.Writer, raw json.RawMessage) error {
	if len(raw) == 0 {
		_, err := fmt.Fprintln(out, "null")
		return err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return fmt.Errorf("format response: %w", err)
	}
	buf.WriteByte('\n')
	_, err := buf.WriteTo(out)
	return err
}

// reportError prints remote-declared details when the service provided them.
func reportError(w io.Writer, err error) {
	var cerr *comlink.Error
	if !errors.As(err, &cerr) {
		fmt.Fprintf(w, "error: %v\n", err)
		return
	}
	fmt.Fprintf(w, "comlink error: %s\n", cerr.Message)
	if cerr.Code != "" {
		fmt.Fprintf(w, "code: %s\n", cerr.Code)
	}
	if cerr.StatusCode != 0 {
		fmt.Fprintf(w, "status: %d\n", cerr.StatusCode)
	}
}
