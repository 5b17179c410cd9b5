package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	_ "github.com/lib/pq"
	"github.com/spf13/cobra"

	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/goalimport"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/infrastructure/persistence"
	"github.com/chris-mcnulty/synozur-vega-sub000/modules/strategy/services"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/composables"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/configuration"
	"github.com/chris-mcnulty/synozur-vega-sub000/pkg/eventbus"
)

type importOptions struct {
	tenantID     uuid.UUID
	file         string
	strategy     string
	userEmail    string
	fiscalStart  int
	skipCheckIns bool
	skipTeams    bool
	apply        bool
}

func newImportCmd() *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import a goal-tracking export archive (dry-run unless --apply)",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runImport(cmd.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.file, "file", "", "Path to the export ZIP archive (required)")
	cmd.Flags().StringVar(&opts.strategy, "strategy", "skip", "Duplicate strategy: skip|merge|create")
	cmd.Flags().StringVar(&opts.userEmail, "user-email", "", "Owner email for entities without one")
	cmd.Flags().IntVar(&opts.fiscalStart, "fiscal-year-start", 0, "Fiscal year start month (1-12, default from env)")
	cmd.Flags().BoolVar(&opts.skipCheckIns, "skip-checkins", false, "Do not import check-ins")
	cmd.Flags().BoolVar(&opts.skipTeams, "skip-teams", false, "Do not import teams")
	cmd.Flags().BoolVar(&opts.apply, "apply", false, "Commit changes (default is dry-run with rollback)")

	var tenant string
	cmd.Flags().StringVar(&tenant, "tenant", "", "Tenant UUID (required)")

	_ = cmd.MarkFlagRequired("tenant")
	_ = cmd.MarkFlagRequired("file")

	cmd.PreRunE = func(cmd *cobra.Command, args []string) error {
		id, err := uuid.Parse(strings.TrimSpace(tenant))
		if err != nil {
			return withCode(exitUsage, fmt.Errorf("invalid --tenant: %w", err))
		}
		opts.tenantID = id
		switch opts.strategy {
		case "skip", "merge", "create":
		default:
			return withCode(exitUsage, fmt.Errorf("invalid --strategy: %s", opts.strategy))
		}
		return nil
	}

	return cmd
}

func runImport(ctx context.Context, opts importOptions) error {
	conf := configuration.Use()

	archive, err := os.ReadFile(opts.file)
	if err != nil {
		return withCode(exitUsage, fmt.Errorf("failed to read archive: %w", err))
	}

	poolCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	pool, err := pgxpool.New(poolCtx, conf.Database.ConnectionString())
	if err != nil {
		return withCode(exitDB, fmt.Errorf("failed to connect: %w", err))
	}
	defer pool.Close()

	tx, err := pool.Begin(ctx)
	if err != nil {
		return withCode(exitDB, fmt.Errorf("failed to begin transaction: %w", err))
	}
	// Rollback is a no-op after an explicit commit.
	defer func() { _ = tx.Rollback(ctx) }()

	runCtx := composables.WithTenantID(
		composables.WithTx(composables.WithPool(ctx, pool), tx),
		opts.tenantID,
	)

	fiscalStart := opts.fiscalStart
	if fiscalStart == 0 {
		fiscalStart = conf.GoalImport.FiscalYearStartMonth
	}

	importService := services.NewImportService(
		persistence.NewObjectiveRepository(),
		persistence.NewKeyResultRepository(),
		persistence.NewBigRockRepository(),
		persistence.NewTeamRepository(),
		persistence.NewCheckInRepository(),
		eventbus.NewEventPublisher(conf.Logger()),
	)

	result, err := importService.Import(runCtx, archive, goalimport.Options{
		TenantID:             opts.tenantID,
		UserEmail:            opts.userEmail,
		FiscalYearStartMonth: fiscalStart,
		DuplicateStrategy:    goalimport.Strategy(opts.strategy),
		ImportCheckIns:       !opts.skipCheckIns,
		ImportTeams:          !opts.skipTeams,
	})
	if result != nil {
		report, _ := json.MarshalIndent(result, "", "  ")
		fmt.Println(string(report))
	}
	if err != nil {
		return withCode(exitDB, err)
	}

	if !opts.apply {
		fmt.Fprintln(os.Stderr, "dry-run: rolled back (use --apply to commit)")
		return nil
	}
	if err := tx.Commit(ctx); err != nil {
		return withCode(exitDB, fmt.Errorf("failed to commit: %w", err))
	}
	fmt.Fprintln(os.Stderr, "applied")
	if result != nil && result.Status == goalimport.StatusPartial {
		return withCode(exitPartial, fmt.Errorf("import finished with %d warnings and %d errors", len(result.Warnings), len(result.Errors)))
	}
	return nil
}
