// Package export writes comparisons to disk, either as a single minified HTML page or as a tar
// archive of several files.
package export

import (
	"archive/tar"
	"fmt"
	"mime"
	"os"
	"regexp"
	"strings"

	"github.com/tdewolff/minify/v2"
	"github.com/tdewolff/minify/v2/css"
	"github.com/tdewolff/minify/v2/html"
	"github.com/tdewolff/minify/v2/js"
	"github.com/tdewolff/minify/v2/json"
)

// File is a file to put into an archive.
type File struct {
	Name     string // Slash separated path within the archive
	MimeType string
	Data     []byte
}

func newMinifier() *minify.M {
	m := minify.New()
	m.AddFunc("text/css", css.Minify)
	m.AddFunc("text/html", html.Minify)
	m.AddFuncRegexp(regexp.MustCompile("^(application|text)/(x-)?(java|ecma)script$"), js.Minify)
	m.AddFuncRegexp(regexp.MustCompile("[/+]json$"), json.Minify)
	return m
}

// Minify minifies an HTML page including its stylesheet.
func Minify(page []byte) ([]byte, error) {
	b, err := newMinifier().Bytes("text/html", page)
	if err != nil {
		return nil, fmt.Errorf("minifying page: %v", err)
	}
	return b, nil
}

// Write minifies page and writes it to filename.
func Write(filename string, page []byte) error {
	b, err := Minify(page)
	if err != nil {
		return err
	}
	if err := os.WriteFile(filename, b, 0644); err != nil {
		return fmt.Errorf("writing page: %v", err)
	}
	return nil
}

// Pack writes files into a tar archive at filename. Files with a mime type the minifier knows
// are minified.
func Pack(filename string, files []File) error {
	minifier := newMinifier()

	file, err := os.OpenFile(filename, os.O_RDWR|os.O_CREATE|os.O_TRUNC, 0644)
	if err != nil {
		return fmt.Errorf("opening file: %v", err)
	}
	defer file.Close()

	tw := tar.NewWriter(file)

	dirs := make(map[string]bool)
	for _, f := range files {
		mimeType, _, err := mime.ParseMediaType(f.MimeType)
		if err != nil {
			return fmt.Errorf("invalid mime type for %s: %v", f.Name, err)
		}

		b := f.Data
		switch mimeType {
		case "text/html", "text/css", "text/javascript", "application/json":
			b, err = minifier.Bytes(mimeType, b)
			if err != nil {
				return fmt.Errorf("minification failed for %s: %v", f.Name, err)
			}
		}

		name := strings.TrimPrefix(f.Name, "/")
		if i := strings.LastIndex(name, "/"); i >= 0 && !dirs[name[:i]] {
			hdr := &tar.Header{
				Name:     "./" + name[:i] + "/",
				Mode:     int64(0755),
				Typeflag: tar.TypeDir,
			}
			if err := tw.WriteHeader(hdr); err != nil {
				return fmt.Errorf("writing header: %v", err)
			}
			dirs[name[:i]] = true
		}

		hdr := &tar.Header{
			Name: "./" + name,
			Mode: int64(0644),
			Size: int64(len(b)),
		}
		if err := tw.WriteHeader(hdr); err != nil {
			return fmt.Errorf("writing header: %v", err)
		}
		if _, err := tw.Write(b); err != nil {
			return fmt.Errorf("writing body: %v", err)
		}
	}

	if err := tw.Close(); err != nil {
		return fmt.Errorf("closing archive: %v", err)
	}
	return file.Close()
}
