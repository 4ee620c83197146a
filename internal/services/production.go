package services

import (
	"context"
	"log"

	"github.com/diewo77/go-dairy/internal/ledger"
	"github.com/diewo77/go-dairy/internal/metrics"
	"github.com/diewo77/go-dairy/internal/models"
	"github.com/diewo77/go-dairy/internal/repository"
	"github.com/diewo77/go-dairy/validation"
)

type ProductionService struct {
	repo    *repository.Repository
	metrics *metrics.Metrics
	logger  *log.Logger
}

func NewProductionService(repo *repository.Repository, m *metrics.Metrics) *ProductionService {
	return &ProductionService{repo: repo, metrics: m, logger: log.Default()}
}

// LogConversion records a conversion and moves stock between the named products.
// The log is kept even when a product name does not resolve; stock is then left as is.
func (s *ProductionService) LogConversion(ctx context.Context, in models.NewConversion) (models.ConversionLog, error) {
	v := make(validation.Violations)
	validation.Valid("fromProduct", in.FromProduct.IsMilk(), v)
	validation.PositiveInt("fromQuantity", in.FromQuantity, v)
	validation.Required("toProduct", in.ToProduct, v)
	validation.PositiveInt("toQuantity", in.ToQuantity, v)
	validation.Required("staffId", in.StaffID, v)
	if !v.Empty() {
		return models.ConversionLog{}, models.Invalid(v)
	}

	var entry models.ConversionLog
	err := s.repo.Mutate(ctx, func(tx *repository.Tx) error {
		if _, ok := tx.FindStaff(in.StaffID); !ok {
			return models.NotFound("staff", in.StaffID)
		}
		entry = models.ConversionLog{
			ID:           tx.NextID(models.PrefixConversion),
			Date:         tx.Today(),
			FromProduct:  in.FromProduct,
			FromQuantity: in.FromQuantity,
			ToProduct:    in.ToProduct,
			ToQuantity:   in.ToQuantity,
			StaffID:      in.StaffID,
		}
		moves, applied := ledger.ApplyConversion(tx.Products, entry)
		if !applied {
			s.logger.Printf("[ledger] %s: %q or %q is not a product name, stock unchanged", entry.ID, entry.FromProduct, entry.ToProduct)
		}
		for _, m := range moves {
			s.logger.Printf("[ledger] %s %s %+d (%d -> %d)", m.Reference, m.ProductID, m.Delta, m.Before, m.After)
		}
		tx.PrependConversionLog(entry)
		s.metrics.StockMoved("conversion", len(moves))
		s.metrics.SetStock(tx.Products)
		return nil
	})
	if err != nil {
		return models.ConversionLog{}, err
	}
	return entry, nil
}
