package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
	"golang.org/x/text/language"

	"github.com/brettsor/jsonxsd"
	"github.com/brettsor/jsonxsd/format"
	"github.com/brettsor/jsonxsd/internal/config"
	"github.com/brettsor/jsonxsd/typegraph"
)

var renderCmd = &cobra.Command{
	Use:   "render <input.json> <output-basename>",
	Short: "Render one JSON sample to <basename>.xsd and <basename>.xml",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		rec := recognizerForLocale(cfg)
		if err := renderOne(cmd.Context(), args[0], args[1], rec); err != nil {
			printFatal(err)
		}
		return nil
	},
}

var batchRenderCmd = &cobra.Command{
	Use:   "render-batch <input-dir> <output-dir>",
	Short: "Render every *.json file in a directory concurrently",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := renderBatch(cmd.Context(), args[0], args[1]); err != nil {
			printFatal(err)
		}
		return nil
	},
}

func recognizerForLocale(c *config.CLI) format.Recognizer {
	tag, err := c.LocaleTag()
	if err != nil {
		tag = language.English
	}
	return format.New(tag)
}

func renderOne(ctx context.Context, inputPath, basename string, rec format.Recognizer) error {
	raw, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputPath, err)
	}

	decoder := json.NewDecoder(bytes.NewReader(raw))
	decoder.UseNumber()
	var sample any
	if err := decoder.Decode(&sample); err != nil {
		return fmt.Errorf("parsing %s: %w", inputPath, err)
	}

	rootTag := rootTagFor(inputPath)
	graph, err := typegraph.Infer(sample, rootTag, rec)
	if err != nil {
		return err
	}

	input, err := roundTripJSONValue(sample)
	if err != nil {
		return err
	}

	result, err := jsonxsd.Render(ctx, graph, input, jsonxsd.RenderOptions{
		Basename:   filepath.Base(basename),
		Recognizer: rec,
		Logger:     &logger,
	})
	if err != nil {
		return err
	}

	if err := os.WriteFile(basename+".xsd", result.XSD, 0o644); err != nil {
		return fmt.Errorf("writing %s.xsd: %w", basename, err)
	}
	if err := os.WriteFile(basename+".xml", result.XML, 0o644); err != nil {
		return fmt.Errorf("writing %s.xml: %w", basename, err)
	}
	fmt.Printf("wrote %s.xsd, %s.xml\n", basename, basename)
	return nil
}

func renderBatch(ctx context.Context, inputDir, outputDir string) error {
	entries, err := os.ReadDir(inputDir)
	if err != nil {
		return fmt.Errorf("reading %s: %w", inputDir, err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return fmt.Errorf("creating %s: %w", outputDir, err)
	}

	n := cfg.Workers
	if n <= 0 {
		n = runtime.NumCPU()
	}
	rec := recognizerForLocale(cfg)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(n)
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		inputPath := filepath.Join(inputDir, entry.Name())
		basename := filepath.Join(outputDir, strings.TrimSuffix(entry.Name(), ".json"))
		g.Go(func() error {
			return renderOne(gctx, inputPath, basename, rec)
		})
	}
	return g.Wait()
}

func rootTagFor(inputPath string) string {
	base := filepath.Base(inputPath)
	return strings.TrimSuffix(base, filepath.Ext(base))
}

// roundTripJSONValue re-decodes sample through plain encoding/json
// (without UseNumber) so numeric literals arrive as float64, matching
// the coercion tables' expectations.
func roundTripJSONValue(sample any) (any, error) {
	raw, err := json.Marshal(sample)
	if err != nil {
		return nil, fmt.Errorf("re-encoding sample: %w", err)
	}
	var v any
	if err := json.Unmarshal(raw, &v); err != nil {
		return nil, fmt.Errorf("re-decoding sample: %w", err)
	}
	return v, nil
}
