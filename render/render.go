// Package render implements the render subcommand: it parses the input
// document and stylesheets, resolves styles and writes the resulting
// render tree.
package render

import (
	"context"
	"fmt"
	"io"
	"os"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"golang.org/x/net/html/charset"

	"stylecore/cssom"
	"stylecore/dom"
	"stylecore/state"
	"stylecore/style"
)

// loadStylesheet reads and compiles one stylesheet file. Parse warnings
// are logged, never fatal.
func loadStylesheet(log *zap.Logger, path string, origin style.CascadeOrigin) ([]style.ContextualRule, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open stylesheet '%s': %w", path, err)
	}
	defer f.Close()

	sheet, warns := cssom.ParseStyleSheet(log, f)
	for _, w := range multierr.Errors(warns) {
		log.Warn("Stylesheet parse problem", zap.String("file", path), zap.Error(w))
	}
	log.Debug("Stylesheet loaded",
		zap.String("file", path),
		zap.Stringer("origin", origin),
		zap.String("id", sheet.ID.String()),
		zap.Int("rules", len(sheet.Rules)))
	return style.Contextualize(sheet, origin), nil
}

// Render parses an HTML document and produces the XML dump of its
// render tree. The reader goes through charset detection so non UTF-8
// documents decode correctly.
func Render(log *zap.Logger, doc io.Reader, rules []style.ContextualRule, out io.Writer) error {
	decoded, err := charset.NewReader(doc, "text/html")
	if err != nil {
		return fmt.Errorf("unable to detect document encoding: %w", err)
	}
	parsed, err := dom.Parse(decoded)
	if err != nil {
		return fmt.Errorf("unable to parse document: %w", err)
	}
	root := dom.DocumentElement(parsed)
	if root == nil {
		return fmt.Errorf("document has no root element")
	}

	tree := style.BuildRenderTree(log, root, rules, nil)
	return style.DumpXML(out, tree)
}

// Run implements the render subcommand.
func Run(ctx context.Context, cmd *cli.Command) error {
	env := state.EnvFromContext(ctx)

	htmlPath := cmd.String("html")
	if len(htmlPath) == 0 {
		return fmt.Errorf("no input document, use --html")
	}

	var rules []style.ContextualRule
	appendSheets := func(paths []string, origin style.CascadeOrigin) error {
		for _, path := range paths {
			loaded, err := loadStylesheet(env.Log, path, origin)
			if err != nil {
				return err
			}
			rules = append(rules, loaded...)
		}
		return nil
	}
	if ua := env.Cfg.Render.UserAgentStylesheet; len(ua) > 0 {
		if err := appendSheets([]string{ua}, style.OriginUserAgent); err != nil {
			return err
		}
	}
	if err := appendSheets(env.Cfg.Render.Stylesheets, style.OriginAuthor); err != nil {
		return err
	}
	if err := appendSheets(cmd.StringSlice("css"), style.OriginAuthor); err != nil {
		return err
	}

	in, err := os.Open(htmlPath)
	if err != nil {
		return fmt.Errorf("unable to open document '%s': %w", htmlPath, err)
	}
	defer in.Close()

	out := os.Stdout
	if dest := cmd.String("out"); len(dest) > 0 {
		if !env.Overwrite {
			if _, err := os.Stat(dest); err == nil {
				return fmt.Errorf("destination '%s' already exists, use --overwrite", dest)
			}
		}
		if out, err = os.Create(dest); err != nil {
			return fmt.Errorf("unable to create destination '%s': %w", dest, err)
		}
		defer out.Close()
	}

	env.Log.Info("Rendering document",
		zap.String("html", htmlPath),
		zap.Int("rules", len(rules)))
	return Render(env.Log, in, rules, out)
}
