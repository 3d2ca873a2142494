package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"ablefy-sync/internal/config"
	"ablefy-sync/internal/infra"
	"ablefy-sync/internal/infra/postgres"
	"ablefy-sync/internal/logging"
	pgrepo "ablefy-sync/internal/repository/postgres"
	"ablefy-sync/internal/services"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const usage = `usage: ablefy-sync <mode>

modes:
  preview            fetch and transform legacy transactions, write nothing
  import             fetch, transform and upsert into the target store
  link               run the order/course/user linking passes
  validate [from to] compare source vs store (dates as YYYY-MM-DD)
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
	mode := os.Args[1]

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	zlog, err := logging.NewLogger()
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer zlog.Sync()
	logger := zlog.Sugar()

	var client infra.AblefyClientInterface
	if mode != "link" {
		if err := cfg.RequireSource(); err != nil {
			log.Fatalf("config: %v", err)
		}
		client = infra.NewAblefyClient(cfg.AblefyBaseURL, cfg.AblefyAPIKey, 30*time.Second)
	}

	var db *gorm.DB
	if mode != "preview" {
		if err := cfg.RequireDatabase(); err != nil {
			log.Fatalf("config: %v", err)
		}
		db, err = postgres.NewPostgres(cfg.DatabaseURL)
		if err != nil {
			log.Fatalf("db: connect: %v", err)
		}
	}

	ctx := context.Background()

	switch mode {
	case "preview":
		runPreview(ctx, client, logger)
	case "import":
		runImport(ctx, db, client, logger)
	case "link":
		runLink(ctx, db, logger)
	case "validate":
		runValidate(ctx, db, client, logger)
	default:
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}
}

func runPreview(ctx context.Context, client infra.AblefyClientInterface, logger *zap.SugaredLogger) {
	svc := services.NewImportService(nil, client, logger)
	report, err := svc.Preview(ctx)
	if err != nil {
		log.Fatalf("preview: %v", err)
	}

	logger.Infow("preview complete",
		"fetched", report.Fetched,
		"importable", report.Importable,
		"rejected", len(report.Rejected),
		"failed_pages", report.FailedPages,
	)
	for _, rej := range report.Rejected {
		logger.Warnw("would reject", "trx_id", rej.Raw.TrxID, "email", rej.Raw.Email, "reason", rej.Reason)
	}
}

func runImport(ctx context.Context, db *gorm.DB, client infra.AblefyClientInterface, logger *zap.SugaredLogger) {
	txRepo := pgrepo.NewTransactionRepository(db)
	svc := services.NewImportService(txRepo, client, logger)

	report, err := svc.Import(ctx)
	if err != nil {
		log.Fatalf("import: %v", err)
	}

	logger.Infow("import complete",
		"fetched", report.Fetched,
		"upserted", report.Upserted,
		"rejected", len(report.Rejected),
		"failed_chunks", len(report.Failures),
		"failed_pages", report.FailedPages,
	)
	if len(report.Failures) > 0 {
		logger.Warn("some chunks failed; re-run import to complete (upserts are idempotent)")
	}
}

func runLink(ctx context.Context, db *gorm.DB, logger *zap.SugaredLogger) {
	svc := services.NewLinkService(
		pgrepo.NewTransactionRepository(db),
		pgrepo.NewOrderRepository(db),
		pgrepo.NewCourseMappingRepository(db),
		pgrepo.NewProfileRepository(db),
		logger,
	)

	report, err := svc.Run(ctx)
	if err != nil {
		log.Fatalf("link: %v", err)
	}

	logger.Infow("linking complete",
		"orders_linked", report.OrdersLinked,
		"orders_created", report.OrdersCreated,
		"tx_courses", report.TxCourses,
		"order_courses", report.OrderCourses,
		"tx_users", report.TxUsers,
		"order_users", report.OrderUsers,
	)
}

func runValidate(ctx context.Context, db *gorm.DB, client infra.AblefyClientInterface, logger *zap.SugaredLogger) {
	from := time.Date(2000, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Now().UTC()
	var err error
	if len(os.Args) > 3 {
		if from, err = time.Parse("2006-01-02", os.Args[2]); err != nil {
			log.Fatalf("validate: bad from date %q: %v", os.Args[2], err)
		}
		if to, err = time.Parse("2006-01-02", os.Args[3]); err != nil {
			log.Fatalf("validate: bad to date %q: %v", os.Args[3], err)
		}
	}

	svc := services.NewReportService(pgrepo.NewTransactionRepository(db), client, logger)
	report, err := svc.Validate(ctx, from, to)
	if err != nil {
		log.Fatalf("validate: %v", err)
	}

	printReport(report, logger)
}

func printReport(report *services.ValidationReport, logger *zap.SugaredLogger) {
	logger.Infow("validation report",
		"window_from", report.From.Format("2006-01-02"),
		"window_to", report.To.Format("2006-01-02"),
		"source_count", report.SourceCount,
		"store_count", report.StoreCount,
		"missing", len(report.MissingTrxIDs),
		"source_total", fmt.Sprintf("%.2f", report.SourceTotal),
		"store_total", fmt.Sprintf("%.2f", report.StoreTotal),
		"total_diff", fmt.Sprintf("%.2f", report.TotalDiff),
	)

	for _, raw := range report.Sample {
		logger.Infow("missing in store",
			"trx_id", raw.TrxID,
			"datum", raw.Datum,
			"email", raw.Email,
			"bezahlt", raw.Bezahlt,
		)
	}
	if len(report.MissingTrxIDs) > len(report.Sample) {
		logger.Infof("...and %d more missing records", len(report.MissingTrxIDs)-len(report.Sample))
	}
}
