package convert

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/h2non/filetype"
)

var reportJSON = filetype.NewType("json", "application/json")

func init() {
	filetype.AddMatcher(reportJSON, isJSONObject)
}

// isJSONObject matches documents starting with an object after optional
// UTF-8 BOM and whitespace.
func isJSONObject(buf []byte) bool {
	buf = bytes.TrimPrefix(buf, []byte{0xEF, 0xBB, 0xBF})
	buf = bytes.TrimLeft(buf, " \t\r\n")
	return len(buf) > 1 && buf[0] == '{' && (buf[1] == '"' || buf[1] == '}' || buf[1] == ' ' || buf[1] == '\n' || buf[1] == '\r' || buf[1] == '\t')
}

var reportExtensions = []string{".json", ".yaml", ".yml"}

// isReportName checks file extension only, used for entries in archives and
// to accept YAML which has no signature.
func isReportName(name string) bool {
	ext := strings.ToLower(filepath.Ext(name))
	for _, e := range reportExtensions {
		if ext == e {
			return true
		}
	}
	return false
}

// header returns first bytes of the file, enough for signature matching.
func header(path string) ([]byte, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	buf := make([]byte, 262)
	n, err := io.ReadFull(f, buf)
	if err != nil && err != io.ErrUnexpectedEOF && err != io.EOF {
		return nil, err
	}
	return buf[:n], nil
}

// isArchiveFile detects zip archives by content regardless of extension.
func isArchiveFile(path string) (bool, error) {
	head, err := header(path)
	if err != nil {
		return false, err
	}
	return filetype.Is(head, "zip"), nil
}

// isReportFile accepts files with report extension or JSON content.
func isReportFile(path string) (bool, error) {
	if isReportName(path) {
		return true, nil
	}
	head, err := header(path)
	if err != nil {
		return false, err
	}
	kind, err := filetype.Match(head)
	if err != nil {
		return false, nil
	}
	return kind == reportJSON, nil
}
