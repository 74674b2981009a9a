package analyses

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/gapline/gapline/internal/processes"
	"github.com/gapline/gapline/internal/workflow"
	"github.com/gapline/gapline/pkg/pagination"
	"github.com/gapline/gapline/pkg/query"
	"github.com/gapline/gapline/pkg/repository"
)

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	procs      processes.System
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a gap-analysis repository implementing the System interface.
// The process system loads comparison inputs; the workflow runtime drives
// the analysis pipeline.
func New(
	db *sql.DB,
	rt *workflow.Runtime,
	procs processes.System,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		rt:         rt,
		procs:      procs,
		logger:     logger.With("system", "analyses"),
		pagination: pagination,
	}
}

func (r *repo) Handler() *Handler {
	return NewHandler(r, r.logger, r.pagination)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Analysis], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Summary")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count analyses: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	items, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanAnalysis)
	if err != nil {
		return nil, fmt.Errorf("query analyses: %w", err)
	}

	result := pagination.NewPageResult(items, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Analysis, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	a, err := repository.QueryOne(ctx, r.db, q, args, scanAnalysis)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	findings, err := r.loadFindings(ctx, id)
	if err != nil {
		return nil, err
	}

	a.Findings = findings
	return &a, nil
}

func (r *repo) loadFindings(ctx context.Context, analysisID uuid.UUID) ([]Finding, error) {
	q := `
		SELECT id, analysis_id, position, finding_type, description, recommendation, impact, effort
		FROM gap_findings
		WHERE analysis_id = $1
		ORDER BY position`

	findings, err := repository.QueryMany(ctx, r.db, q, []any{analysisID}, scanFinding)
	if err != nil {
		return nil, fmt.Errorf("query findings for %s: %w", analysisID, err)
	}
	return findings, nil
}

// Compare loads both processes concurrently, runs the analysis pipeline,
// and persists the result with its findings.
func (r *repo) Compare(ctx context.Context, cmd CompareCommand) (*Analysis, error) {
	asIs, toBe, err := r.loadPair(ctx, cmd)
	if err != nil {
		return nil, err
	}

	if asIs.Variant != processes.VariantAsIs || toBe.Variant != processes.VariantToBe {
		return nil, ErrVariantMismatch
	}

	asIsInput := asIs.Snapshot()
	toBeInput := toBe.Snapshot()

	result, err := workflow.AnalyzeGap(ctx, r.rt, &asIsInput, &toBeInput)
	if err != nil {
		return nil, fmt.Errorf("analyze %s against %s: %w", cmd.AsIsProcessID, cmd.ToBeProcessID, err)
	}

	a, err := r.insertAnalysis(ctx, cmd, result)
	if err != nil {
		return nil, err
	}

	a.Warnings = result.Warnings

	r.logger.Info("gap analysis completed",
		"id", a.ID,
		"as_is", cmd.AsIsProcessID,
		"to_be", cmd.ToBeProcessID,
		"findings", len(a.Findings),
		"warnings", len(a.Warnings),
	)
	return a, nil
}

func (r *repo) loadPair(ctx context.Context, cmd CompareCommand) (*processes.Process, *processes.Process, error) {
	var asIs, toBe *processes.Process

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		p, err := r.procs.Find(gctx, cmd.AsIsProcessID)
		if err != nil {
			return fmt.Errorf("%w: as-is %s: %w", workflow.ErrMissingProcess, cmd.AsIsProcessID, err)
		}
		asIs = p
		return nil
	})

	g.Go(func() error {
		p, err := r.procs.Find(gctx, cmd.ToBeProcessID)
		if err != nil {
			return fmt.Errorf("%w: to-be %s: %w", workflow.ErrMissingProcess, cmd.ToBeProcessID, err)
		}
		toBe = p
		return nil
	})

	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	return asIs, toBe, nil
}

func (r *repo) insertAnalysis(
	ctx context.Context,
	cmd CompareCommand,
	result *workflow.AnalysisResult,
) (*Analysis, error) {
	insertQ := `
		INSERT INTO gap_analyses(as_is_process_id, to_be_process_id, summary, model_name, provider_name)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id, as_is_process_id, to_be_process_id, summary, model_name, provider_name, created_at`

	insertArgs := []any{
		cmd.AsIsProcessID,
		cmd.ToBeProcessID,
		result.Summary,
		optional(r.rt.ModelName()),
		optional(r.rt.ProviderName()),
	}

	findingQ := `
		INSERT INTO gap_findings(analysis_id, position, finding_type, description, recommendation, impact, effort)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id, analysis_id, position, finding_type, description, recommendation, impact, effort`

	a, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Analysis, error) {
		analysis, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanAnalysis)
		if err != nil {
			return Analysis{}, fmt.Errorf("insert analysis: %w", err)
		}

		analysis.Findings = make([]Finding, 0, len(result.Findings))
		for i, f := range result.Findings {
			args := []any{analysis.ID, i + 1, f.FindingType, f.Description, f.Recommendation, f.Impact, f.Effort}
			finding, err := repository.QueryOne(ctx, tx, findingQ, args, scanFinding)
			if err != nil {
				return Analysis{}, fmt.Errorf("insert finding %d: %w", i+1, err)
			}
			analysis.Findings = append(analysis.Findings, finding)
		}

		return analysis, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &a, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM gap_analyses WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("analysis deleted", "id", id)
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
