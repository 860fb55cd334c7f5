// Package pdf linearizes uploaded schedule documents into plain text for
// the extraction engine. The engine itself never sees the source document.
package pdf

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	pdflib "github.com/ledongthuc/pdf"
	"go.uber.org/zap"
)

// ErrSourceUnreadable marks documents the PDF reader cannot make sense of.
// It is a user-visible error kind, distinct from an empty extraction.
var ErrSourceUnreadable = errors.New("source document unreadable")

// Extractor turns a source document into raw text in document order.
type Extractor interface {
	ExtractText(ctx context.Context, r io.ReaderAt, size int64) (string, error)
}

// Parser is the production Extractor backed by ledongthuc/pdf.
type Parser struct {
	logger *zap.Logger
}

// NewParser creates a Parser.
func NewParser(logger *zap.Logger) *Parser {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Parser{logger: logger}
}

// ExtractText reads every page's text content, concatenated in document
// order. Any reader failure is reported as ErrSourceUnreadable.
func (p *Parser) ExtractText(ctx context.Context, r io.ReaderAt, size int64) (text string, err error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	// The underlying library panics on some malformed xref tables instead
	// of returning an error.
	defer func() {
		if recovered := recover(); recovered != nil {
			p.logger.Warn("pdf reader panicked", zap.Any("cause", recovered))
			text = ""
			err = fmt.Errorf("%w: %v", ErrSourceUnreadable, recovered)
		}
	}()

	reader, err := pdflib.NewReader(r, size)
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	plain, err := reader.GetPlainText()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	var sb strings.Builder
	if _, err := io.Copy(&sb, plain); err != nil {
		return "", fmt.Errorf("%w: %v", ErrSourceUnreadable, err)
	}

	p.logger.Debug("pdf text extracted", zap.Int("chars", sb.Len()))
	return sb.String(), nil
}
