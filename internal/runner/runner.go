// Package runner drives one benchmark pass for a single model: load images,
// load the inference pipeline, evaluate every (prompt, image) pair, and
// flush the accumulated records to the shared output file in one
// lock-protected append. Each runner is meant to live in its own OS process
// so the model's resources die with the process.
package runner

import (
	"context"
	"fmt"
	"time"

	"github.com/benbjohnson/clock"
	"go.uber.org/zap"

	"github.com/gripbench/gripbench/internal/domain"
	"github.com/gripbench/gripbench/internal/extract"
	"github.com/gripbench/gripbench/internal/output"
	"github.com/gripbench/gripbench/internal/pipeline"
	"github.com/gripbench/gripbench/internal/prompt"
	"github.com/gripbench/gripbench/internal/vision"
)

const noImagesError = "ERROR: no valid images could be loaded"

// AppendError marks a failed end-of-run flush so the CLI can map it to its
// dedicated exit code. The records that could not be flushed are still
// returned to the caller alongside the error.
type AppendError struct {
	Err error
}

func (e *AppendError) Error() string {
	return "appending records: " + e.Err.Error()
}

func (e *AppendError) Unwrap() error {
	return e.Err
}

// RecordEcho receives each record as it is produced, for live observability.
type RecordEcho interface {
	Write(rec *domain.Record) error
}

// LoadFunc constructs a pipeline. Swappable in tests; defaults to
// pipeline.New.
type LoadFunc func(opts pipeline.Options) (pipeline.Pipeline, error)

// Options configure one runner pass.
type Options struct {
	Model           string
	Token           string
	Endpoint        string
	Output          string
	Images          []string
	TrustRemoteCode bool
	LockTimeout     time.Duration

	// Prompts defaults to the fixed variant set.
	Prompts []domain.Prompt

	// Echo, when set, receives every record as it is produced.
	Echo RecordEcho

	Log   *zap.SugaredLogger
	Clock clock.Clock
	Load  LoadFunc
}

func (o *Options) withDefaults() Options {
	out := *o
	if out.Prompts == nil {
		out.Prompts = prompt.Variants()
	}
	if out.Log == nil {
		out.Log = zap.NewNop().Sugar()
	}
	if out.Clock == nil {
		out.Clock = clock.New()
	}
	if out.Load == nil {
		out.Load = pipeline.New
	}
	return out
}

// Run executes one benchmark pass and returns the produced records.
//
// Every (prompt, image) pair yields exactly one record: a generated one when
// the pipeline cooperates, an error-tagged one otherwise. Only two failures
// abort the pass for the whole model: an unusable inference backend
// (returned as-is, before any pair runs) and a failed final append
// (returned as *AppendError, with the unflushed records).
func Run(ctx context.Context, opts Options) ([]domain.Record, error) {
	o := opts.withDefaults()
	log := o.Log

	images := vision.Load(o.Images)
	for i := range images {
		if images[i].Err != nil {
			log.Warnw("failed to load image", "image", images[i].Name, "error", images[i].Err)
		}
	}

	var pipe pipeline.Pipeline
	var loadError string

	if !vision.AnyValid(images) {
		loadError = noImagesError
	} else {
		p, err := o.Load(pipeline.Options{
			Model:           o.Model,
			Token:           o.Token,
			Endpoint:        o.Endpoint,
			TrustRemoteCode: o.TrustRemoteCode,
		})
		if err != nil {
			// No usable backend at all: fatal for this process.
			return nil, err
		}
		if err := p.Load(ctx); err != nil {
			loadError = "ERROR: failed to load pipeline: " + err.Error()
			log.Warnw("pipeline load failed", "model", o.Model, "error", err)
		} else {
			pipe = p
		}
	}

	records := make([]domain.Record, 0, len(o.Prompts)*len(images))
	for _, pr := range o.Prompts {
		for i := range images {
			rec := domain.Record{
				Timestamp:  o.Clock.Now().Format(time.RFC3339),
				Model:      o.Model,
				PromptName: pr.Name,
				Image:      images[i].Name,
			}

			switch {
			case loadError != "":
				rec.ResponseText = loadError
			case !images[i].Valid():
				rec.ResponseText = fmt.Sprintf("ERROR during generation: no decoded image data for %s", images[i].Name)
			default:
				raw, err := pipe.Generate(ctx, pr.Text, images[i].Data)
				if err != nil {
					rec.ResponseText = "ERROR during generation: " + err.Error()
				} else {
					rec.ResponseText = extract.Text(raw)
				}
			}

			records = append(records, rec)
			if o.Echo != nil {
				if err := o.Echo.Write(&rec); err != nil {
					log.Debugw("record echo failed", "error", err)
				}
			}
		}
	}

	if err := output.AppendRecords(ctx, o.Output, records, o.LockTimeout); err != nil {
		return records, &AppendError{Err: err}
	}
	log.Infow("appended records", "count", len(records), "path", o.Output)
	return records, nil
}
