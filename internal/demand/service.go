package demand

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
)

// ErrNoData marks the Excel export's empty-scope condition. The JSON
// endpoints return a valid empty aggregate instead; an empty workbook has no
// value to anyone, so the export reports not-found.
var ErrNoData = errors.New("no demand data for the requested scope")

// Archiver stores a finished workbook; nil disables archiving.
type Archiver interface {
	UploadBytes(ctx context.Context, key string, contentType string, data []byte) (string, error)
}

// Request carries the generate/export parameters. Menu filtering is only
// honored by the multi-menu endpoint.
type Request struct {
	Month       int   `json:"month"`
	Year        int   `json:"year"`
	SchoolIDs   []int `json:"school_ids"`
	ModalityIDs []int `json:"modality_ids"`
	MenuIDs     []int `json:"menu_ids"`
}

// Validate rejects malformed requests before any data access happens.
func (r *Request) Validate() error {
	if r.Month < 1 || r.Month > 12 {
		return fmt.Errorf("month must be between 1 and 12, got %d", r.Month)
	}
	if r.Year < 2000 || r.Year > 2100 {
		return fmt.Errorf("year must be between 2000 and 2100, got %d", r.Year)
	}
	for _, id := range r.SchoolIDs {
		if id <= 0 {
			return fmt.Errorf("invalid school id %d", id)
		}
	}
	for _, id := range r.ModalityIDs {
		if id <= 0 {
			return fmt.Errorf("invalid modality id %d", id)
		}
	}
	for _, id := range r.MenuIDs {
		if id <= 0 {
			return fmt.Errorf("invalid menu id %d", id)
		}
	}
	return nil
}

// evaluationDate is the first day of the requested month; menus and
// contracts are matched against it.
func (r *Request) evaluationDate() time.Time {
	return time.Date(r.Year, time.Month(r.Month), 1, 0, 0, 0, 0, time.UTC)
}

type Service struct {
	gateway Gateway
	archive Archiver
	log     *slog.Logger
}

func NewService(gateway Gateway, archive Archiver, log *slog.Logger) *Service {
	return &Service{gateway: gateway, archive: archive, log: log}
}

// run does the bulk read and the aggregation pass shared by all endpoints.
// The price resolver is constructed fresh here so its cache never outlives
// the run.
func (s *Service) run(ctx context.Context, req *Request, withMenus bool) (*Aggregation, error) {
	filter := Filter{
		SchoolIDs:   req.SchoolIDs,
		ModalityIDs: req.ModalityIDs,
	}
	if withMenus {
		filter.MenuIDs = req.MenuIDs
	}

	date := req.evaluationDate()

	rows, err := s.gateway.CandidateRows(ctx, filter, date)
	if err != nil {
		return nil, err
	}
	s.log.Info("candidate rowset fetched", "rows", len(rows), "month", req.Month, "year", req.Year)

	resolver := NewPriceResolver(s.gateway, date)
	return NewAggregator(s.log).Aggregate(ctx, rows, resolver)
}

// Generate computes the per-product demand for one month.
func (s *Service) Generate(ctx context.Context, req *Request) (*Result, error) {
	agg, err := s.run(ctx, req, false)
	if err != nil {
		return nil, err
	}
	return buildResult(agg, false), nil
}

// GenerateMulti is Generate with an additional menu filter; its summary also
// reports how many distinct menus contributed rows.
func (s *Service) GenerateMulti(ctx context.Context, req *Request) (*Result, error) {
	agg, err := s.run(ctx, req, true)
	if err != nil {
		return nil, err
	}
	return buildResult(agg, true), nil
}

// ExportExcel renders the two-sheet workbook and returns its bytes and a
// download filename. When an archiver is configured the workbook is also
// stored under exports/; an archive failure is logged, never surfaced.
func (s *Service) ExportExcel(ctx context.Context, req *Request) ([]byte, string, error) {
	agg, err := s.run(ctx, req, false)
	if err != nil {
		return nil, "", err
	}
	if len(agg.Products) == 0 {
		return nil, "", ErrNoData
	}

	pivot := ToPivot(agg.SchoolProduct, agg.ProductRefs(), agg.Schools)

	wb, err := BuildWorkbook(agg, pivot)
	if err != nil {
		return nil, "", err
	}
	buf, err := wb.WriteToBuffer()
	if err != nil {
		return nil, "", err
	}

	data := buf.Bytes()
	filename := fmt.Sprintf("demanda-%04d-%02d.xlsx", req.Year, req.Month)

	if s.archive != nil {
		key := fmt.Sprintf("exports/%04d-%02d/%s.xlsx", req.Year, req.Month, uuid.New().String())
		url, err := s.archive.UploadBytes(ctx, key, xlsxContentType, data)
		if err != nil {
			s.log.Warn("export archive failed", "key", key, "error", err)
		} else {
			s.log.Info("export archived", "url", url)
		}
	}

	return data, filename, nil
}

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// buildResult applies the presentation rounding: 3 decimals for quantities,
// 2 for monetary values. The summary totals come from the unrounded
// aggregates, then get the same treatment.
func buildResult(agg *Aggregation, withMenus bool) *Result {
	demanda := make([]DemandAggregate, len(agg.Products))
	var totalValor float64

	for i, p := range agg.Products {
		totalValor += p.ValueTotal

		p.QuantityTotal = Round3(p.QuantityTotal)
		p.ValueTotal = Round2(p.ValueTotal)
		p.UnitPrice = Round2(p.UnitPrice)

		detail := make([]DemandLine, len(p.Detail))
		for j, d := range p.Detail {
			d.ComputedQuantity = Round3(d.ComputedQuantity)
			d.ResolvedUnitPrice = Round2(d.ResolvedUnitPrice)
			detail[j] = d
		}
		p.Detail = detail

		demanda[i] = p
	}

	resumo := Summary{
		TotalProdutos: len(demanda),
		TotalValor:    Round2(totalValor),
	}
	if withMenus {
		resumo.TotalCardapios = agg.MenusUsed
	}

	return &Result{Demanda: demanda, Resumo: resumo}
}
