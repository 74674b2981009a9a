package processes

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/google/uuid"

	"github.com/gapline/gapline/internal/workflow"
	"github.com/gapline/gapline/pkg/extract"
	"github.com/gapline/gapline/pkg/pagination"
	"github.com/gapline/gapline/pkg/query"
	"github.com/gapline/gapline/pkg/repository"
)

type repo struct {
	db         *sql.DB
	rt         *workflow.Runtime
	logger     *slog.Logger
	pagination pagination.Config
}

// New creates a process repository implementing the System interface.
// The workflow runtime drives document extraction.
func New(
	db *sql.DB,
	rt *workflow.Runtime,
	logger *slog.Logger,
	pagination pagination.Config,
) System {
	return &repo{
		db:         db,
		rt:         rt,
		logger:     logger.With("system", "processes"),
		pagination: pagination,
	}
}

func (r *repo) Handler(maxUploadSize int64) *Handler {
	return NewHandler(r, r.logger, r.pagination, maxUploadSize)
}

func (r *repo) List(
	ctx context.Context,
	page pagination.PageRequest,
	filters Filters,
) (*pagination.PageResult[Process], error) {
	page.Normalize(r.pagination)

	qb := query.
		NewBuilder(projection, defaultSort).
		WhereSearch(page.Search, "Name", "System")

	filters.Apply(qb)

	if len(page.Sort) > 0 {
		qb.OrderByFields(page.Sort)
	}

	countSQL, countArgs := qb.BuildCount()
	var total int
	if err := r.db.QueryRowContext(ctx, countSQL, countArgs...).Scan(&total); err != nil {
		return nil, fmt.Errorf("count processes: %w", err)
	}

	pageSQL, pageArgs := qb.BuildPage(page.Page, page.PageSize)
	procs, err := repository.QueryMany(ctx, r.db, pageSQL, pageArgs, scanProcess)
	if err != nil {
		return nil, fmt.Errorf("query processes: %w", err)
	}

	result := pagination.NewPageResult(procs, total, page.Page, page.PageSize)
	return &result, nil
}

func (r *repo) Find(ctx context.Context, id uuid.UUID) (*Process, error) {
	q, args := query.NewBuilder(projection).BuildSingle("ID", id)

	p, err := repository.QueryOne(ctx, r.db, q, args, scanProcess)
	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	steps, err := r.loadSteps(ctx, id)
	if err != nil {
		return nil, err
	}

	p.Steps = steps
	return &p, nil
}

func (r *repo) loadSteps(ctx context.Context, processID uuid.UUID) ([]Step, error) {
	q := `
		SELECT id, process_id, number, description, approver_role, approver_name, is_automated
		FROM process_steps
		WHERE process_id = $1
		ORDER BY number`

	steps, err := repository.QueryMany(ctx, r.db, q, []any{processID}, scanStep)
	if err != nil {
		return nil, fmt.Errorf("query steps for %s: %w", processID, err)
	}
	return steps, nil
}

// Extract runs the full document pipeline: text extraction, model-driven
// structuring, validation, and persistence. The uploaded document is not
// retained; only the structured snapshot is stored.
func (r *repo) Extract(ctx context.Context, cmd ExtractCommand) (*Process, error) {
	format, err := extract.ParseFormat(cmd.Filename)
	if err != nil {
		return nil, err
	}

	text, err := extract.Extract(cmd.Data, format)
	if err != nil {
		return nil, fmt.Errorf("extract %s: %w", cmd.Filename, err)
	}

	input, err := workflow.ExtractProcess(ctx, r.rt, text)
	if err != nil {
		return nil, fmt.Errorf("structure %s: %w", cmd.Filename, err)
	}

	meta := processMeta{
		variant:          cmd.Variant,
		standardType:     cmd.StandardType,
		relatedProcessID: cmd.RelatedProcessID,
		sourceFilename:   &cmd.Filename,
		modelName:        optional(r.rt.ModelName()),
		providerName:     optional(r.rt.ProviderName()),
	}

	p, err := r.insertProcess(ctx, input, meta)
	if err != nil {
		return nil, err
	}

	r.logger.Info("process extracted",
		"id", p.ID,
		"name", p.Name,
		"variant", p.Variant,
		"steps", len(p.Steps),
		"source", cmd.Filename,
	)
	return p, nil
}

// Create persists a manually authored draft after running it through the
// same validation as extracted drafts.
func (r *repo) Create(ctx context.Context, cmd CreateCommand) (*Process, error) {
	if _, err := ParseVariant(string(cmd.Variant)); err != nil {
		return nil, err
	}

	input, err := workflow.ValidateDraft(cmd.ProcessDraft)
	if err != nil {
		return nil, err
	}

	meta := processMeta{
		variant:          cmd.Variant,
		standardType:     cmd.StandardType,
		relatedProcessID: cmd.RelatedProcessID,
	}

	p, err := r.insertProcess(ctx, input, meta)
	if err != nil {
		return nil, err
	}

	r.logger.Info("process created",
		"id", p.ID,
		"name", p.Name,
		"variant", p.Variant,
		"steps", len(p.Steps),
	)
	return p, nil
}

// Versions lists every stored snapshot sharing the process's name, oldest
// first, so callers can track how a workflow evolved.
func (r *repo) Versions(ctx context.Context, id uuid.UUID) ([]Process, error) {
	anchor, err := r.Find(ctx, id)
	if err != nil {
		return nil, err
	}

	qb := query.
		NewBuilder(projection, query.SortField{Field: "CreatedAt"}).
		WhereEquals("Name", &anchor.Name)

	q, args := qb.Build()
	versions, err := repository.QueryMany(ctx, r.db, q, args, scanProcess)
	if err != nil {
		return nil, fmt.Errorf("query versions of %q: %w", anchor.Name, err)
	}

	return versions, nil
}

func (r *repo) Delete(ctx context.Context, id uuid.UUID) error {
	_, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (struct{}, error) {
		if err := repository.ExecExpectOne(
			ctx, tx,
			"DELETE FROM processes WHERE id = $1",
			id,
		); err != nil {
			return struct{}{}, err
		}
		return struct{}{}, nil
	})

	if err != nil {
		return repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	r.logger.Info("process deleted", "id", id)
	return nil
}

type processMeta struct {
	variant          Variant
	standardType     *StandardType
	relatedProcessID *uuid.UUID
	sourceFilename   *string
	modelName        *string
	providerName     *string
}

func (r *repo) insertProcess(
	ctx context.Context,
	input *workflow.ProcessInput,
	meta processMeta,
) (*Process, error) {
	if meta.standardType != nil {
		if _, err := ParseStandardType(string(*meta.standardType)); err != nil {
			return nil, err
		}
		if meta.variant != VariantToBe {
			return nil, fmt.Errorf("%w: standard_type applies to to_be processes", ErrInvalidVariant)
		}
	}

	insertQ := `
		INSERT INTO processes(
			name, system, variant, standard_type, related_process_id,
			source_filename, model_name, provider_name
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, name, system, variant, standard_type, related_process_id,
		          source_filename, model_name, provider_name, created_at, updated_at`

	insertArgs := []any{
		input.Name,
		input.System,
		meta.variant,
		meta.standardType,
		meta.relatedProcessID,
		meta.sourceFilename,
		meta.modelName,
		meta.providerName,
	}

	stepQ := `
		INSERT INTO process_steps(process_id, number, description, approver_role, approver_name, is_automated)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, process_id, number, description, approver_role, approver_name, is_automated`

	p, err := repository.WithTx(ctx, r.db, func(tx *sql.Tx) (Process, error) {
		if meta.relatedProcessID != nil {
			if err := r.checkRelation(ctx, tx, meta); err != nil {
				return Process{}, err
			}
		}

		proc, err := repository.QueryOne(ctx, tx, insertQ, insertArgs, scanProcess)
		if err != nil {
			return Process{}, fmt.Errorf("insert process: %w", err)
		}

		proc.Steps = make([]Step, 0, len(input.Steps))
		for _, s := range input.Steps {
			args := []any{proc.ID, s.Number, s.Description, s.ApproverRole, s.ApproverName, s.IsAutomated}
			step, err := repository.QueryOne(ctx, tx, stepQ, args, scanStep)
			if err != nil {
				return Process{}, fmt.Errorf("insert step %d: %w", s.Number, err)
			}
			proc.Steps = append(proc.Steps, step)
		}

		return proc, nil
	})

	if err != nil {
		return nil, repository.MapError(err, ErrNotFound, ErrDuplicate)
	}

	return &p, nil
}

// checkRelation verifies that a related process exists and is an as-is
// snapshot; to-be redesigns may only reference current-state processes.
func (r *repo) checkRelation(ctx context.Context, tx *sql.Tx, meta processMeta) error {
	if meta.variant != VariantToBe {
		return ErrInvalidRelation
	}

	var variant Variant
	err := tx.QueryRowContext(
		ctx,
		"SELECT variant FROM processes WHERE id = $1",
		meta.relatedProcessID,
	).Scan(&variant)

	if err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidRelation, err)
	}
	if variant != VariantAsIs {
		return ErrInvalidRelation
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
