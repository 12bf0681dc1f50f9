package eslint

import (
	"bytes"
	"io"

	"golang.org/x/net/html"
)

// ExtractScripts returns only the script content of an HTML document.
// Everything outside <script> elements is replaced by blank lines so that
// positions reported against the result still line up with the original
// document.
func ExtractScripts(r io.Reader) ([]byte, error) {
	z := html.NewTokenizer(r)
	var out bytes.Buffer
	inScript := false
	for {
		tt := z.Next()
		if tt == html.ErrorToken {
			if err := z.Err(); err == io.EOF {
				return out.Bytes(), nil
			} else {
				return nil, err
			}
		}
		raw := z.Raw()
		switch tt {
		case html.StartTagToken:
			if name, _ := z.TagName(); string(name) == "script" {
				inScript = true
			}
			blankLines(&out, raw)
		case html.EndTagToken:
			if name, _ := z.TagName(); string(name) == "script" {
				inScript = false
			}
			blankLines(&out, raw)
		case html.TextToken:
			if inScript {
				out.Write(raw)
			} else {
				blankLines(&out, raw)
			}
		default:
			blankLines(&out, raw)
		}
	}
}

// blankLines writes one newline for each one in raw, discarding the rest.
func blankLines(out *bytes.Buffer, raw []byte) {
	for i := bytes.Count(raw, []byte{'\n'}); i > 0; i-- {
		out.WriteByte('\n')
	}
}
