package poller

import (
	"context"
	"encoding/json"
	"errors"
	"log"

	"github.com/Jeffrey-hendell/shaypos/internal/catalog"
	"github.com/segmentio/kafka-go"
)

// StockAdjuster is the part of the catalog the poller needs: stock
// decrements with cache invalidation behind them.
type StockAdjuster interface {
	AdjustStock(ctx context.Context, id string, delta int) error
}

type saleItem struct {
	ProductID string `json:"product_id"`
	Quantity  int    `json:"quantity"`
}

type saleCompletedEvent struct {
	SaleID string     `json:"sale_id"`
	Items  []saleItem `json:"items"`
}

// StockPoller consumes completed-sale events and walks catalog stock down by
// the sold quantities.
type StockPoller struct {
	catalog StockAdjuster
	reader  *kafka.Reader
}

func NewStockPoller(catalog StockAdjuster, brokers ...string) *StockPoller {
	reader := kafka.NewReader(kafka.ReaderConfig{
		Brokers:  brokers,
		Topic:    "sales-outbox",
		GroupID:  "catalog-stock",
		MaxBytes: 10e6, // 10MB
	})
	return &StockPoller{catalog, reader}
}

func (p *StockPoller) Run(ctx context.Context) {
	for {
		if ctx.Err() != nil {
			return
		}
		p.processMessage(ctx)
	}
}

func (p *StockPoller) Close() {
	if err := p.reader.Close(); err != nil {
		log.Printf("error closing kafka reader: %v", err)
	}
}

func (p *StockPoller) processMessage(ctx context.Context) {
	m, err := p.reader.ReadMessage(ctx)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return
		}
		log.Printf("error reading message: %v", err)
		return
	}

	var event saleCompletedEvent
	if err := json.Unmarshal(m.Value, &event); err != nil {
		log.Printf("error parsing message: %v", err)
		return
	}

	p.handleEvent(ctx, &event)
}

func (p *StockPoller) handleEvent(ctx context.Context, event *saleCompletedEvent) {
	for _, item := range event.Items {
		err := p.catalog.AdjustStock(ctx, item.ProductID, -item.Quantity)
		if err != nil {
			if errors.Is(err, catalog.ErrInsufficientStock) {
				// a sale went through on a stale stock read
				log.Printf("sale %s oversold product %s", event.SaleID, item.ProductID)
				continue
			}
			log.Printf("failed to adjust stock for %s: %v", item.ProductID, err)
		}
	}
}
