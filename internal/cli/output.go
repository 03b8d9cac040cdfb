package cli

import (
	"io"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"slices"
	"strings"

	"github.com/matzehuels/salesmap/pkg/errors"
)

// knownExts are output extensions stripped from -o when deriving a base path.
var knownExts = []string{"svg", "html", "json", "png", "pdf", "dot"}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

// openOutput returns a writer for path, or stdout when path is "-".
func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" {
		return nopCloser{stdout}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return nil, err
		}
	}
	return os.Create(path)
}

// basePath derives the output path without extension.
// An explicit output wins (minus a known format extension). Otherwise local
// sources keep their directory and URLs contribute their last path segment,
// written to the working directory.
func basePath(output, source string) string {
	if output != "" {
		ext := filepath.Ext(output)
		if slices.Contains(knownExts, strings.TrimPrefix(ext, ".")) {
			return strings.TrimSuffix(output, ext)
		}
		return output
	}
	if !errors.IsURL(source) {
		return strings.TrimSuffix(source, filepath.Ext(source))
	}
	name := ""
	if u, err := url.Parse(source); err == nil {
		name = path.Base(u.Path)
	}
	name = strings.TrimSuffix(name, path.Ext(name))
	if name == "" || name == "." || name == "/" {
		name = appName
	}
	return name
}

// artifactWriteParams describes where rendered artifacts go.
type artifactWriteParams struct {
	artifacts map[string][]byte
	formats   []string
	source    string
	output    string
}

// checkOutput rejects "-o -" unless exactly one format is requested.
func checkOutput(output string, formats []string) error {
	if output == "-" && len(formats) != 1 {
		return errors.New(errors.ErrCodeInvalidInput,
			"-o - writes to stdout and needs exactly one format, got %d", len(formats))
	}
	return nil
}

// writeArtifacts writes every requested format and returns the paths.
// A single format with an explicit -o that carries an extension is written
// to exactly that path; otherwise ".<format>" is appended to the base path.
func writeArtifacts(p artifactWriteParams) ([]string, error) {
	if err := checkOutput(p.output, p.formats); err != nil {
		return nil, err
	}
	paths := make([]string, 0, len(p.formats))
	base := basePath(p.output, p.source)
	for _, format := range p.formats {
		data, ok := p.artifacts[format]
		if !ok {
			return paths, errors.New(errors.ErrCodeInternal, "missing %s artifact", format)
		}

		target := base + "." + format
		if len(p.formats) == 1 && (p.output == "-" || filepath.Ext(p.output) != "") {
			target = p.output
		}

		if err := writeFile(target, data); err != nil {
			return paths, err
		}
		paths = append(paths, target)
	}
	return paths, nil
}

func writeFile(target string, data []byte) error {
	out, err := openOutput(target)
	if err != nil {
		return err
	}
	if _, err := out.Write(data); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// trimLayoutExt strips the ".layout.json" suffix written by the layout command.
func trimLayoutExt(path string) string {
	return strings.TrimSuffix(path, ".layout.json")
}
