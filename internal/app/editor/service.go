// Package editor coordinates the high-level style operations behind the CLI:
// creating, opening, scripting and comparing documents.
package editor

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/alexisbeaulieu97/towerstyle/internal/command"
	"github.com/alexisbeaulieu97/towerstyle/internal/config"
	"github.com/alexisbeaulieu97/towerstyle/internal/document"
	"github.com/alexisbeaulieu97/towerstyle/internal/infrastructure/events"
	"github.com/alexisbeaulieu97/towerstyle/internal/infrastructure/logging"
	"github.com/alexisbeaulieu97/towerstyle/internal/ports"
	"github.com/alexisbeaulieu97/towerstyle/internal/script"
	"github.com/alexisbeaulieu97/towerstyle/internal/style"
	"github.com/alexisbeaulieu97/towerstyle/internal/valuestore"
	"github.com/alexisbeaulieu97/towerstyle/pkg/diff"
)

// ErrExists is returned by Create when the target file already exists.
var ErrExists = errors.New("style file already exists")

// Service wires configuration, logging and events into document operations.
type Service struct {
	cfg       *config.Config
	sources   *valuestore.GameSources
	logger    ports.Logger
	publisher *events.LoggingPublisher
}

// NewService constructs an editor service. A nil cfg uses config.Default.
func NewService(cfg *config.Config, logger ports.Logger) (*Service, error) {
	if cfg == nil {
		cfg = config.Default()
	}
	if logger == nil {
		logger = logging.NewNoOpLogger()
	}
	sources, err := cfg.Sources()
	if err != nil {
		return nil, fmt.Errorf("game sources: %w", err)
	}
	return &Service{
		cfg:       cfg,
		sources:   sources,
		logger:    logger,
		publisher: events.NewLoggingPublisher(logger),
	}, nil
}

// Sources returns the game-source table documents are validated against.
func (s *Service) Sources() *valuestore.GameSources {
	return s.sources
}

// Publisher returns the publisher stores opened by s report to.
func (s *Service) Publisher() ports.EventPublisher {
	return s.publisher
}

// Revision counts the committed changes of every store opened by s.
func (s *Service) Revision() uint64 {
	return s.publisher.Revision()
}

// Create writes an empty style document to path.
func (s *Service) Create(ctx context.Context, path string, force bool) (*style.StyleDefinition, error) {
	if !force {
		if _, err := os.Stat(path); err == nil {
			return nil, fmt.Errorf("%s: %w", path, ErrExists)
		}
	}
	doc := style.NewStyleDefinition()
	if err := document.Save(path, doc); err != nil {
		return nil, err
	}
	s.logger.Info(ctx, "created style", "path", path)
	return doc, nil
}

// Open loads path into a store configured with the service's history
// settings and publisher.
func (s *Service) Open(ctx context.Context, path string) (*document.Store, error) {
	manager := command.NewManager(append(s.cfg.ManagerOptions(), command.WithLogger(s.logger))...)
	return document.Open(ctx, path, s.sources.ValidateOptions(),
		document.WithManager(manager),
		document.WithPublisher(s.publisher),
		document.WithLogger(s.logger),
	)
}

// Load reads and validates the document at path without a store.
func (s *Service) Load(path string) (*style.StyleDefinition, error) {
	return document.Load(path, s.sources.ValidateOptions())
}

// ApplyRequest configures a script run.
type ApplyRequest struct {
	DocumentPath string
	ScriptPath   string
	// OutputPath defaults to DocumentPath.
	OutputPath string
	DryRun     bool
	Adapter    command.Adapter
}

// ApplyOutcome captures what a script run did.
type ApplyOutcome struct {
	Script     string
	Commands   int
	Changed    bool
	Saved      bool
	OutputPath string
	Diff       string
	UndoDepth  int
}

// Apply runs the edit script against the document and saves the result
// unless DryRun is set or nothing changed.
func (s *Service) Apply(ctx context.Context, req ApplyRequest) (*ApplyOutcome, error) {
	store, err := s.Open(ctx, req.DocumentPath)
	if err != nil {
		return nil, err
	}
	sc, err := script.Load(req.ScriptPath)
	if err != nil {
		return nil, err
	}

	before := store.Current()
	compiler := script.Compiler{Validate: func(doc *style.StyleDefinition) error {
		return style.Validate(doc, s.sources.ValidateOptions())
	}}
	cmds, err := compiler.Compile(ctx, before, sc)
	if err != nil {
		return nil, err
	}
	for _, cmd := range cmds {
		store.QueueCommand(cmd)
	}

	outcome := &ApplyOutcome{
		Script:     sc.Name,
		Commands:   len(cmds),
		OutputPath: req.OutputPath,
	}
	if outcome.OutputPath == "" {
		outcome.OutputPath = req.DocumentPath
	}

	outcome.Changed = store.Commit(ctx, req.Adapter)
	outcome.UndoDepth = len(store.UndoStack())
	if outcome.Changed {
		text, err := unifiedDiff(before, store.Current(), req.DocumentPath, outcome.OutputPath)
		if err != nil {
			return nil, err
		}
		outcome.Diff = text
	}

	s.logger.Info(ctx, "applied script",
		"script", req.ScriptPath,
		"commands", outcome.Commands,
		"changed", outcome.Changed,
		"dry_run", req.DryRun,
	)

	if req.DryRun || (!outcome.Changed && outcome.OutputPath == req.DocumentPath) {
		return outcome, nil
	}
	if err := store.Save(ctx, outcome.OutputPath); err != nil {
		return nil, err
	}
	outcome.Saved = true
	return outcome, nil
}

// DiffFormat selects the output of Diff.
type DiffFormat string

const (
	DiffUnified    DiffFormat = "unified"
	DiffMergePatch DiffFormat = "merge-patch"
)

// Diff compares two style files. Identical documents yield "" for the
// unified format and "{}" for a merge patch.
func (s *Service) Diff(before, after string, format DiffFormat) (string, error) {
	a, err := s.Load(before)
	if err != nil {
		return "", err
	}
	b, err := s.Load(after)
	if err != nil {
		return "", err
	}

	switch format {
	case DiffUnified, "":
		return unifiedDiff(a, b, before, after)
	case DiffMergePatch:
		left, err := document.Marshal(a)
		if err != nil {
			return "", err
		}
		right, err := document.Marshal(b)
		if err != nil {
			return "", err
		}
		patch, err := diff.MergePatch(left, right)
		if err != nil {
			return "", err
		}
		return string(patch), nil
	default:
		return "", fmt.Errorf("unknown diff format %q", format)
	}
}

func unifiedDiff(a, b *style.StyleDefinition, aLabel, bLabel string) (string, error) {
	left, err := document.Marshal(a)
	if err != nil {
		return "", err
	}
	right, err := document.Marshal(b)
	if err != nil {
		return "", err
	}
	return diff.GenerateUnifiedDiff(left, right, aLabel, bLabel), nil
}

// Patch applies an RFC 7386 merge patch to the document at path and
// validates the result before saving it to out.
func (s *Service) Patch(ctx context.Context, path string, patch []byte, out string) error {
	doc, err := s.Load(path)
	if err != nil {
		return err
	}
	data, err := document.Marshal(doc)
	if err != nil {
		return err
	}
	patched, err := diff.ApplyMergePatch(data, patch)
	if err != nil {
		return err
	}
	next, err := document.Parse(path, patched, s.sources.ValidateOptions())
	if err != nil {
		return err
	}
	if out == "" {
		out = path
	}
	if err := document.Save(out, next); err != nil {
		return err
	}
	s.logger.Info(ctx, "patched style", "path", path, "output", out)
	return nil
}
