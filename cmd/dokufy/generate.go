package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/alnah/go-dokufy"
	"github.com/alnah/go-dokufy/internal/fileutil"
)

// Output extensions generate accepts.
const (
	extPDF  = "pdf"
	extDocx = "docx"
)

// runGenerate renders <input> into <output>. The output extension picks
// the format: .pdf or .docx.
func runGenerate(ctx context.Context, args []string, env *Environment) error {
	f, positional, err := parseGenerateFlags(args, env.Stderr)
	if err != nil {
		return err
	}
	if len(positional) != 2 {
		return fmt.Errorf("%w: generate takes <input> <output>, got %d argument(s)", ErrUsage, len(positional))
	}
	input, output := positional[0], positional[1]

	if !fileutil.FileExists(input) {
		return fmt.Errorf("%w: %s", ErrInputNotFound, input)
	}
	outExt := fileutil.Ext(output)
	if outExt != extPDF && outExt != extDocx {
		return fmt.Errorf("%w: %q", ErrOutputExtension, outExt)
	}

	if fileutil.FileExists(output) && !f.force {
		question := fmt.Sprintf("Output file [%s] already exists. Overwrite?", output)
		if !confirm(env.Stdin, env.Stdout, question) {
			fmt.Fprintln(env.Stdout, "Operation cancelled.")
			return nil
		}
	}

	data := placeholderData(f, env.Stderr)

	cfg, err := env.LoadConfig(f.common.config)
	if err != nil {
		return err
	}
	d, err := env.NewDokufy(cfg, env.newLogger(&f.common))
	if err != nil {
		return err
	}
	defer d.Close()

	driver := f.driver
	if driver == "" {
		driver = cfg.Default
	} else if _, err := d.Driver(driver); err != nil {
		return withDriver(ctx, d, driver, err)
	}

	fmt.Fprintln(env.Stdout, "Generating document...")

	inExt := fileutil.Ext(input)
	if inExt == "html" || inExt == "htm" {
		content, err := os.ReadFile(input) // #nosec G304 -- user-supplied path
		if err != nil {
			return fmt.Errorf("%w: %v", ErrInputNotFound, err)
		}
		d.HTML(string(content))
	} else if _, err := d.Template(input); err != nil {
		return err
	}
	d.Data(data)

	switch {
	case outExt == extPDF:
		_, err = d.ToPDF(ctx, output)
	case inExt == extDocx && !f.fill:
		_, err = d.ToDocx(output)
	default:
		_, err = d.RenderDocx(ctx, output)
	}
	if err != nil {
		return withDriver(ctx, d, driver, err)
	}

	fmt.Fprintf(env.Stdout, "Document generated successfully: %s\n", output)
	fmt.Fprintf(env.Stdout, "  Input   %s\n", input)
	fmt.Fprintf(env.Stdout, "  Output  %s\n", output)
	if info, err := os.Stat(output); err == nil {
		fmt.Fprintf(env.Stdout, "  Size    %s\n", formatBytes(info.Size()))
	}
	return nil
}

// withDriver attaches the driver name, plus the available drivers for
// driver errors, so hints can be specific.
func withDriver(ctx context.Context, d *dokufy.Dokufy, driver string, err error) error {
	de := &driverError{driver: driver, err: err}
	if errors.Is(err, dokufy.ErrDriverNotFound) ||
		errors.Is(err, dokufy.ErrDriverUnavailable) ||
		errors.Is(err, dokufy.ErrDriverNotConfigured) {
		de.available = d.AvailableDrivers(ctx)
	}
	return de
}

// confirm asks a y/N question. Anything but y or yes, including EOF, is no.
func confirm(in io.Reader, out io.Writer, question string) bool {
	fmt.Fprintf(out, "%s [y/N] ", question)
	line, err := bufio.NewReader(in).ReadString('\n')
	if err != nil && line == "" {
		fmt.Fprintln(out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// formatBytes renders n with a binary unit and two decimals.
func formatBytes(n int64) string {
	units := []string{"B", "KB", "MB", "GB"}
	v := float64(n)
	i := 0
	for v >= 1024 && i < len(units)-1 {
		v /= 1024
		i++
	}
	return fmt.Sprintf("%.2f %s", v, units[i])
}
