package services

import (
	"context"

	"ablefy-sync/internal/domain"
	"ablefy-sync/internal/repository"
	"ablefy-sync/internal/transform"

	"go.uber.org/zap"
)

type LinkReport struct {
	OrdersLinked  int
	OrdersCreated int
	TxCourses     int
	OrderCourses  int
	TxUsers       int
	OrderUsers    int
}

// LinkService runs the post-load passes that attach foreign keys
// between already persisted rows. Every pass is idempotent; a row that
// finds no match simply stays unlinked until a future run.
type LinkService struct {
	txRepo      repository.TransactionRepository
	orderRepo   repository.OrderRepository
	mappingRepo repository.CourseMappingRepository
	profileRepo repository.ProfileRepository
	logger      *zap.SugaredLogger
}

func NewLinkService(
	txRepo repository.TransactionRepository,
	orderRepo repository.OrderRepository,
	mappingRepo repository.CourseMappingRepository,
	profileRepo repository.ProfileRepository,
	logger *zap.SugaredLogger,
) *LinkService {
	return &LinkService{
		txRepo:      txRepo,
		orderRepo:   orderRepo,
		mappingRepo: mappingRepo,
		profileRepo: profileRepo,
		logger:      logger,
	}
}

// Run executes all three passes. Per-row errors are logged and the pass
// continues with the remaining rows.
func (s *LinkService) Run(ctx context.Context) (*LinkReport, error) {
	report := &LinkReport{}

	if err := s.linkOrders(ctx, report); err != nil {
		return report, err
	}
	if err := s.linkCourses(ctx, report); err != nil {
		return report, err
	}
	if err := s.linkUsers(ctx, report); err != nil {
		return report, err
	}
	return report, nil
}

func (s *LinkService) linkOrders(ctx context.Context, report *LinkReport) error {
	txs, err := s.txRepo.FindWithUnlinkedOrder(ctx)
	if err != nil {
		return err
	}

	for i := range txs {
		tx := &txs[i]
		created, err := s.linkTransactionOrder(ctx, tx)
		if err != nil {
			s.logger.Warnw("order link failed", "trx_id", tx.TrxID, "error", err)
			continue
		}
		if created {
			report.OrdersCreated++
		}
		// linkTransactionOrder sets OrderID only after SetOrderID
		// succeeded; a create whose re-read came back empty is not a
		// link.
		if tx.OrderID != nil {
			report.OrdersLinked++
		}
	}
	return nil
}

// linkTransactionOrder resolves the order for one transaction, creating
// a minimal order row when none exists yet. The duplicate-key conflict
// on creation is a benign race with a concurrent delivery.
func (s *LinkService) linkTransactionOrder(ctx context.Context, tx *domain.Transaction) (created bool, err error) {
	order, err := s.orderRepo.FindByOrderNumber(ctx, *tx.OrderNumber)
	if err != nil {
		return false, err
	}

	if order == nil {
		if err := s.orderRepo.CreateIgnoreDuplicate(ctx, transform.MinimalOrder(tx)); err != nil {
			return false, err
		}
		created = true
		// Re-read: on a lost race the winner's row carries the id.
		order, err = s.orderRepo.FindByOrderNumber(ctx, *tx.OrderNumber)
		if err != nil {
			return created, err
		}
		if order == nil {
			return created, nil
		}
	}

	if err := s.txRepo.SetOrderID(ctx, tx.ID, order.ID); err != nil {
		return created, err
	}
	tx.OrderID = &order.ID
	return created, nil
}

func (s *LinkService) linkCourses(ctx context.Context, report *LinkReport) error {
	mappings, err := s.mappingRepo.ActiveMappings(ctx)
	if err != nil {
		return err
	}

	txs, err := s.txRepo.FindWithUnlinkedCourse(ctx)
	if err != nil {
		return err
	}
	for i := range txs {
		tx := &txs[i]
		courseID, ok := mappings[*tx.ProductID]
		if !ok {
			continue
		}
		if err := s.txRepo.SetCourseID(ctx, tx.ID, courseID); err != nil {
			s.logger.Warnw("course link failed", "trx_id", tx.TrxID, "error", err)
			continue
		}
		report.TxCourses++
	}

	orders, err := s.orderRepo.FindWithUnlinkedCourse(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		order := &orders[i]
		courseID, ok := mappings[*order.ProductID]
		if !ok {
			continue
		}
		if err := s.orderRepo.SetCourseID(ctx, order.ID, courseID); err != nil {
			s.logger.Warnw("course link failed", "order_number", order.OrderNumber, "error", err)
			continue
		}
		report.OrderCourses++
	}
	return nil
}

func (s *LinkService) linkUsers(ctx context.Context, report *LinkReport) error {
	txs, err := s.txRepo.FindWithUnlinkedUser(ctx)
	if err != nil {
		return err
	}
	for i := range txs {
		tx := &txs[i]
		profile, err := s.profileRepo.FindByEmail(ctx, tx.BuyerEmail)
		if err != nil {
			s.logger.Warnw("user lookup failed", "trx_id", tx.TrxID, "error", err)
			continue
		}
		if profile == nil {
			continue
		}
		if err := s.txRepo.SetUserID(ctx, tx.ID, profile.ID); err != nil {
			s.logger.Warnw("user link failed", "trx_id", tx.TrxID, "error", err)
			continue
		}
		report.TxUsers++
	}

	orders, err := s.orderRepo.FindWithUnlinkedUser(ctx)
	if err != nil {
		return err
	}
	for i := range orders {
		order := &orders[i]
		profile, err := s.profileRepo.FindByEmail(ctx, order.BuyerEmail)
		if err != nil {
			s.logger.Warnw("user lookup failed", "order_number", order.OrderNumber, "error", err)
			continue
		}
		if profile == nil {
			continue
		}
		if err := s.orderRepo.SetUserID(ctx, order.ID, profile.ID); err != nil {
			s.logger.Warnw("user link failed", "order_number", order.OrderNumber, "error", err)
			continue
		}
		report.OrderUsers++
	}
	return nil
}

// LinkOne runs all three passes for a single freshly upserted
// transaction; used by the webhook path.
func (s *LinkService) LinkOne(ctx context.Context, tx *domain.Transaction) error {
	if tx.OrderNumber != nil && tx.OrderID == nil {
		if _, err := s.linkTransactionOrder(ctx, tx); err != nil {
			return err
		}
	}

	if tx.ProductID != nil {
		mappings, err := s.mappingRepo.ActiveMappings(ctx)
		if err != nil {
			return err
		}
		if courseID, ok := mappings[*tx.ProductID]; ok {
			if tx.CourseID == nil {
				if err := s.txRepo.SetCourseID(ctx, tx.ID, courseID); err != nil {
					return err
				}
				tx.CourseID = &courseID
			}
			if tx.OrderID != nil {
				order, err := s.orderRepo.FindByOrderNumber(ctx, *tx.OrderNumber)
				if err != nil {
					return err
				}
				if order != nil && order.CourseID == nil {
					if err := s.orderRepo.SetCourseID(ctx, order.ID, courseID); err != nil {
						return err
					}
				}
			}
		}
	}

	profile, err := s.profileRepo.FindByEmail(ctx, tx.BuyerEmail)
	if err != nil {
		return err
	}
	if profile != nil && tx.UserID == nil {
		if err := s.txRepo.SetUserID(ctx, tx.ID, profile.ID); err != nil {
			return err
		}
		tx.UserID = &profile.ID
	}
	return nil
}
