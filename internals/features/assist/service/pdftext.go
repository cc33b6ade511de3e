package service

import (
	"bytes"
	"compress/zlib"
	"fmt"
	"io"
	"strings"
)

// MaxPDFBytes caps uploads before any parsing happens.
const MaxPDFBytes = 5 << 20

var (
	streamMarker    = []byte("stream")
	endstreamMarker = []byte("endstream")
)

// ExtractPDFText pulls plain text out of a PDF byte blob. It only
// understands uncompressed and FlateDecode content streams with Tj/TJ
// show operators, which covers text-based PDFs; scanned documents come
// back empty and the caller reports them as unreadable.
func ExtractPDFText(data []byte) (string, error) {
	if len(data) > MaxPDFBytes {
		return "", fmt.Errorf("file exceeds %d MB limit", MaxPDFBytes>>20)
	}
	if !bytes.HasPrefix(data, []byte("%PDF-")) {
		return "", fmt.Errorf("not a PDF file")
	}

	var sb strings.Builder
	rest := data
	for {
		idx := bytes.Index(rest, streamMarker)
		if idx == -1 {
			break
		}
		body := rest[idx+len(streamMarker):]
		// a CRLF or bare LF may follow the stream keyword
		body = bytes.TrimLeft(body, "\r\n")
		end := bytes.Index(body, endstreamMarker)
		if end == -1 {
			break
		}
		sb.WriteString(extractFromStream(body[:end]))
		rest = body[end+len(endstreamMarker):]
	}

	text := strings.TrimSpace(sb.String())
	if text == "" {
		return "", fmt.Errorf("no extractable text (the PDF may be scanned images)")
	}
	return text, nil
}

func extractFromStream(stream []byte) string {
	if inflated, err := inflate(stream); err == nil {
		stream = inflated
	}
	return scanShowOperators(stream)
}

func inflate(stream []byte) ([]byte, error) {
	r, err := zlib.NewReader(bytes.NewReader(stream))
	if err != nil {
		return nil, err
	}
	defer r.Close()
	return io.ReadAll(io.LimitReader(r, MaxPDFBytes))
}

// scanShowOperators walks BT..ET text blocks and collects the string
// operands of Tj and TJ operators.
func scanShowOperators(content []byte) string {
	var sb strings.Builder
	text := string(content)

	for {
		bt := strings.Index(text, "BT")
		if bt == -1 {
			break
		}
		et := strings.Index(text[bt:], "ET")
		if et == -1 {
			break
		}
		block := text[bt : bt+et]
		collectStrings(block, &sb)
		text = text[bt+et+2:]
	}
	return sb.String()
}

// collectStrings pulls every (...) literal out of a text block, handling
// backslash escapes and balanced parentheses.
func collectStrings(block string, sb *strings.Builder) {
	depth := 0
	var cur strings.Builder
	escaped := false
	wrote := false

	for i := 0; i < len(block); i++ {
		ch := block[i]
		if depth == 0 {
			if ch == '(' {
				depth = 1
				cur.Reset()
			}
			continue
		}
		if escaped {
			switch ch {
			case 'n':
				cur.WriteByte('\n')
			case 't':
				cur.WriteByte('\t')
			case '(', ')', '\\':
				cur.WriteByte(ch)
			}
			escaped = false
			continue
		}
		switch ch {
		case '\\':
			escaped = true
		case '(':
			depth++
			cur.WriteByte(ch)
		case ')':
			depth--
			if depth == 0 {
				sb.WriteString(cur.String())
				wrote = true
			} else {
				cur.WriteByte(ch)
			}
		default:
			cur.WriteByte(ch)
		}
	}
	if wrote {
		sb.WriteByte('\n')
	}
}
