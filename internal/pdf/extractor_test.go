package pdf

import (
	"bytes"
	"context"
	"errors"
	"testing"
)

func TestExtractTextRejectsGarbage(t *testing.T) {
	payload := []byte("definitely not a pdf document")
	r := bytes.NewReader(payload)

	_, err := NewParser(nil).ExtractText(context.Background(), r, int64(len(payload)))
	if !errors.Is(err, ErrSourceUnreadable) {
		t.Errorf("ExtractText() error = %v, want ErrSourceUnreadable", err)
	}
}

func TestExtractTextHonorsCancelledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	payload := []byte("%PDF-1.4")
	_, err := NewParser(nil).ExtractText(ctx, bytes.NewReader(payload), int64(len(payload)))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("ExtractText() error = %v, want context.Canceled", err)
	}
}
