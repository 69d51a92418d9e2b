// Package converter runs a whole conversion: read the export, aggregate it
// into products, partition the products and write the import file.
package converter

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/nconklindev/shopmigrate/internal/catalog"
	"github.com/nconklindev/shopmigrate/internal/config"
	"github.com/nconklindev/shopmigrate/internal/handle"
	"github.com/nconklindev/shopmigrate/internal/logger"
	"github.com/nconklindev/shopmigrate/internal/mapping"
	"github.com/nconklindev/shopmigrate/internal/normalizer"
	"github.com/nconklindev/shopmigrate/internal/partition"
	"github.com/nconklindev/shopmigrate/internal/schema"
	"github.com/nconklindev/shopmigrate/internal/types"
	"github.com/nconklindev/shopmigrate/internal/writer"

	"github.com/google/uuid"
)

// Fatal input errors.
var (
	ErrEmptyInput      = errors.New("input file is empty")
	ErrUnsupportedFile = errors.New("unsupported file type")
	ErrNoHeader        = errors.New("could not find header row")
)

// Options configures a conversion run.
type Options struct {
	Config *config.Config
	Logger *logger.Logger
}

func (o Options) withDefaults() Options {
	if o.Config == nil {
		o.Config = config.Default()
	}
	if o.Logger == nil {
		o.Logger = logger.Discard()
	}
	return o
}

// OutputPath derives the import file name from the export file name.
func OutputPath(inputFile, suffix string) string {
	ext := filepath.Ext(inputFile)
	return strings.TrimSuffix(inputFile, ext) + suffix + ".csv"
}

// Inspect reads inputFile and reports the detected mapping without writing
// anything.
func Inspect(inputFile string, cfg *config.Config) (*types.Preview, error) {
	if cfg == nil {
		cfg = config.Default()
	}

	data, err := ReadFileData(inputFile, cfg.Input)
	if err != nil {
		return nil, err
	}

	table, err := mapping.Detect(data.Headers)
	if err != nil {
		return nil, err
	}

	preview := &types.Preview{
		File:       inputFile,
		OutputFile: OutputPath(inputFile, cfg.Output.Suffix),
		Language:   string(table.Language),
		Rows:       len(data.Rows),
	}
	for _, h := range data.Headers {
		if target, ok := table.Target(h); ok {
			preview.Mapped = append(preview.Mapped, types.MappedColumn{Source: h, Target: target})
		} else {
			preview.Unmapped = append(preview.Unmapped, h)
		}
	}

	return preview, nil
}

// Convert converts inputFile into a product-import CSV at outputFile.
//
// Progress in [0,1] is offered on progressChan without blocking. Row-level
// problems are logged and recorded on the result; only unreadable input, an
// unrecognized header or a write failure returns an error.
func Convert(inputFile, outputFile string, opts Options, progressChan chan<- float64) (*types.ConversionResult, error) {
	opts = opts.withDefaults()
	cfg := opts.Config

	result := &types.ConversionResult{
		RunID:      uuid.NewString(),
		InputFile:  inputFile,
		OutputFile: outputFile,
		Skipped:    make(map[string]int),
	}
	log := opts.Logger.With("run_id", result.RunID)
	log.Info("conversion started", "input", inputFile, "output", outputFile)
	log.Debug("configuration", "config", cfg.String())

	data, err := ReadFileData(inputFile, cfg.Input)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", inputFile, err)
	}

	table, err := mapping.Detect(data.Headers)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", inputFile, err)
	}
	result.Language = string(table.Language)
	log.Info("field mapping selected", "language", table.Language, "rows", len(data.Rows))

	rows := data.Rows
	if cfg.Input.Limit > 0 && len(rows) > cfg.Input.Limit {
		rows = rows[:cfg.Input.Limit]
	}

	norm := normalizer.New(table, data.Headers, normalizer.Options{
		Vendor:     cfg.Store.Vendor,
		Translator: mapping.NewTranslator(cfg.OptionTranslations),
	})
	agg := catalog.NewAggregator(cfg.Store.FallbackHandle)
	log.Debug("columns mapped", "mapped", len(norm.Fields()), "header", len(data.Headers))

	for i, record := range rows {
		report(progressChan, 0.5*float64(i)/float64(len(rows)))
		if blank(record) {
			continue
		}

		raw := rowMap(data.Headers, record)
		in := catalog.Input{
			Line:        data.Line(i),
			Kind:        normalizer.Classify(raw),
			ProductType: normalizer.ProductType(raw),
			Row:         norm.Normalize(raw),
		}
		if err := agg.Add(in); err != nil {
			recordRowError(log, result, err)
		}
	}

	products, orphans := agg.Finish()
	for _, o := range orphans {
		recordRowError(log, result, o)
	}

	stats := agg.Stats()
	result.RowsRead = stats.Rows
	result.MainRows = stats.MainRows
	result.Variants = stats.Variants
	result.Images = stats.Images
	result.Products = len(products)
	for kind, n := range stats.Skipped {
		if kind == catalog.MainOverwritten {
			result.Warnings += n
			continue
		}
		result.Skipped[kind.String()] = n
	}

	out, err := os.Create(outputFile)
	if err != nil {
		return nil, err
	}
	defer out.Close()

	w := writer.New(out, writer.Header(table.Targets(), schema.RequiredDefaults(cfg.Store.Vendor)), writer.Options{
		Delimiter: cfg.OutputComma(),
		BOM:       cfg.Output.BOM,
	})
	if err := w.WriteHeader(); err != nil {
		return nil, err
	}
	log.Debug("output header", "columns", len(w.Header()))

	alloc := handle.NewAllocator()
	pt := partition.New(alloc, partition.Options{
		MaxVariants:    cfg.Grouping.MaxVariants,
		VariantFields:  cfg.Grouping.VariantFields,
		FootSizeOption: cfg.Grouping.FootSizeOption,
	})
	for i, p := range products {
		report(progressChan, 0.5+0.5*float64(i)/float64(len(products)))

		groups, err := pt.Partition(p)
		if err != nil {
			return nil, err
		}
		for j := range groups {
			if err := w.WriteGroup(&groups[j]); err != nil {
				return nil, err
			}
			log.Debug("group written", "handle", groups[j].Handle, "variants", groups[j].Rows())
		}
		result.Groups += len(groups)
	}

	if err := w.Flush(); err != nil {
		return nil, fmt.Errorf("failed to write %s: %w", outputFile, err)
	}
	if err := out.Close(); err != nil {
		return nil, fmt.Errorf("failed to close %s: %w", outputFile, err)
	}
	result.RowsWritten = w.Rows()
	report(progressChan, 1)

	log.Info("conversion finished",
		"products", result.Products,
		"variants", result.Variants,
		"groups", result.Groups,
		"rows_written", result.RowsWritten,
		"handles", alloc.Len(),
		"skipped", result.SkippedTotal(),
	)
	log.Debug("handles allocated", "handles", alloc.Handles())

	return result, nil
}

func recordRowError(log *logger.Logger, result *types.ConversionResult, err error) {
	var rowErr *catalog.RowError
	if !errors.As(err, &rowErr) {
		log.Error("unexpected row error", "error", err)
		result.AddDiagnostic(err.Error())
		return
	}

	msg := "row skipped"
	if !rowErr.Skipped() {
		msg = "row warning"
	}
	log.Warn(msg,
		"row", rowErr.Line,
		"handle", rowErr.Handle,
		"sku", rowErr.SKU,
		"reason", rowErr.Kind.String(),
		"detail", rowErr.Detail,
	)
	result.AddDiagnostic(rowErr.Error())
}

func report(progressChan chan<- float64, v float64) {
	if progressChan == nil {
		return
	}
	select {
	case progressChan <- v:
	default:
	}
}
