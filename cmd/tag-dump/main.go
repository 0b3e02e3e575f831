package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/simonhull/audiotag"
	"github.com/simonhull/audiotag/internal/logger"
)

var (
	log *logrus.Entry

	formatName      string
	asJSON          bool
	continueOnError bool
	logLevel        string
)

func init() {
	log = logger.WithName("tag-dump")
}

// fileDump is everything printed for one file.
type fileDump struct {
	Path    string                         `json:"path"`
	Headers map[string]bool                `json:"headers"`
	Raw     map[string][]audiotag.RawEntry `json:"raw"`
	Unified audiotag.Metadata              `json:"unified"`
	Error   string                         `json:"error,omitempty"`

	order []string
}

func main() {
	var rootCmd = &cobra.Command{
		Use:   "tag-dump <file>...",
		Short: "Print the tags of audio files",
		Long: `tag-dump prints, for each file, which tag formats are present, the
native entries of each format as stored, and the merged unified view.

Supported files: .mp3 (ID3v2, ID3v1), .flac (Vorbis, ID3v2, ID3v1) and
.wav (RIFF INFO, ID3v2, ID3v1).`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			logger.SetOutput(cmd.ErrOrStderr())
			if logLevel == "" {
				return nil
			}
			return logger.ConfigureFromString(logLevel)
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(cmd.OutOrStdout(), args)
		},
	}

	rootCmd.Flags().StringVar(&formatName, "format", "", "Only dump one format (id3v1, id3v2, vorbis, riff)")
	rootCmd.Flags().BoolVar(&asJSON, "json", false, "Print one JSON document per file")
	rootCmd.Flags().BoolVar(&continueOnError, "continue-on-error", false, "Report failing files and keep going")
	rootCmd.Flags().StringVar(&logLevel, "log-level", "", "Log level (debug, info, warn, error, silent); defaults to $"+logger.EnvLevel+" or warn")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(w io.Writer, paths []string) error {
	var only audiotag.MetadataFormat
	if formatName != "" {
		f, err := audiotag.ParseFormat(formatName)
		if err != nil {
			return err
		}
		only = f
	}

	failed := 0
	for _, path := range paths {
		d, err := dump(path, only)
		if err != nil {
			if !continueOnError {
				return fmt.Errorf("%s: %w", path, err)
			}
			log.WithError(err).WithField("path", path).Warn("skipping file")
			failed++
			d = &fileDump{Path: path, Error: err.Error()}
		}

		if err := render(w, d); err != nil {
			return err
		}
	}

	if failed > 0 {
		return fmt.Errorf("%d of %d files failed", failed, len(paths))
	}
	return nil
}

func dump(path string, only audiotag.MetadataFormat) (*fileDump, error) {
	present, err := audiotag.Headers(path)
	if err != nil {
		return nil, err
	}

	d := &fileDump{
		Path:    path,
		Headers: make(map[string]bool, len(present)),
		Raw:     make(map[string][]audiotag.RawEntry),
	}

	container, err := audiotag.DetectContainer(path)
	if err != nil {
		return nil, err
	}

	for _, format := range container.Formats() {
		d.Headers[format.String()] = present[format]
		d.order = append(d.order, format.String())
		if only != 0 && format != only {
			continue
		}

		raw, err := audiotag.ReadRaw(path, format)
		if errors.Is(err, audiotag.ErrTagNotFound) {
			continue
		}
		if err != nil {
			return nil, err
		}
		d.Raw[format.String()] = raw
	}

	var opts []audiotag.Option
	if only != 0 {
		opts = append(opts, audiotag.WithFormat(only))
	}
	d.Unified, err = audiotag.Read(path, opts...)
	if err != nil {
		return nil, err
	}
	return d, nil
}

func render(w io.Writer, d *fileDump) error {
	if asJSON {
		return json.NewEncoder(w).Encode(d)
	}

	fmt.Fprintf(w, "== %s\n", d.Path)
	if d.Error != "" {
		fmt.Fprintf(w, "  error: %s\n", d.Error)
		return nil
	}

	for _, name := range d.order {
		if !d.Headers[name] {
			continue
		}
		fmt.Fprintf(w, "[%s]\n", name)
		for _, e := range d.Raw[name] {
			fmt.Fprintf(w, "  %s\n", describe(e))
		}
	}

	fmt.Fprintln(w, "[unified]")
	for _, key := range d.Unified.Keys() {
		fmt.Fprintf(w, "  %-14s %v\n", key, d.Unified[key])
	}
	return nil
}

func describe(e audiotag.RawEntry) string {
	var b strings.Builder
	b.WriteString(e.ID)
	if e.Language != "" || e.Description != "" {
		fmt.Fprintf(&b, "[%s:%s]", e.Language, e.Description)
	}
	if e.Opaque() {
		fmt.Fprintf(&b, " <%d bytes>", len(e.Payload))
		return b.String()
	}
	fmt.Fprintf(&b, " = %q", strings.Join(e.Values, " | "))
	return b.String()
}
