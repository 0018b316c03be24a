package store

import (
	"bytes"
	"fmt"

	"github.com/gocarina/gocsv"

	"jobko-engine/internal/domain"
)

// utf8BOM prefixes every encoded file so spreadsheet apps pick up the
// encoding; the original dataset was written as utf-8-sig and old files
// still carry it.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// EncodeCSV serializes postings under the legacy header
// (Company Name, Logo URL, Job Title, Job Summary, D-Day, Job URL,
// Scraped Date) with a leading BOM.
func EncodeCSV(postings []domain.Posting) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)
	if err := gocsv.Marshal(&postings, &buf); err != nil {
		return nil, fmt.Errorf("encode csv: %w", err)
	}
	return buf.Bytes(), nil
}

// DecodeCSV parses a stored record set, tolerating a missing BOM and an
// empty file (which decodes to no records).
func DecodeCSV(b []byte) ([]domain.Posting, error) {
	b = bytes.TrimPrefix(b, utf8BOM)
	if len(bytes.TrimSpace(b)) == 0 {
		return nil, nil
	}
	var postings []domain.Posting
	if err := gocsv.UnmarshalBytes(b, &postings); err != nil {
		return nil, fmt.Errorf("decode csv: %w", err)
	}
	return postings, nil
}
