package httpserver

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cryptomarkets-service/internal/application"
	"cryptomarkets-service/internal/domain"
	"cryptomarkets-service/internal/export"
	"cryptomarkets-service/internal/format"
	"cryptomarkets-service/internal/infrastructure/logx"

	"github.com/oapi-codegen/runtime"
	"go.uber.org/zap"
)

const msgNoData = "No data available to display."

type Server struct {
	svc   application.MarketSource
	query domain.MarketQuery
	ping  func(ctx context.Context) error
}

func NewServer(svc application.MarketSource, q domain.MarketQuery) *Server {
	return &Server{svc: svc, query: q}
}

// SetReadyCheck installs the probe used by /readyz.
func (s *Server) SetReadyCheck(fn func(ctx context.Context) error) { s.ping = fn }

type columnInfo struct {
	Name    string `json:"name"`
	Kind    string `json:"kind"`
	Default bool   `json:"default"`
}

type columnsResponse struct {
	Columns []columnInfo `json:"columns"`
}

type marketsResponse struct {
	UpdatedAt time.Time  `json:"updated_at"`
	Count     int        `json:"count"`
	Columns   []string   `json:"columns"`
	Rows      [][]string `json:"rows"`
}

type errorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

func (s *Server) ListColumns(w http.ResponseWriter, _ *http.Request) {
	defaults := map[string]bool{}
	for _, n := range domain.DefaultColumnNames {
		defaults[n] = true
	}
	resp := columnsResponse{Columns: make([]columnInfo, 0, len(domain.Columns))}
	for _, c := range domain.Columns {
		resp.Columns = append(resp.Columns, columnInfo{Name: c.Name, Kind: kindName(c.Kind), Default: defaults[c.Name]})
	}
	writeJSON(w, http.StatusOK, resp)
}

// GetMarkets returns display formatted rows for the selected columns.
func (s *Server) GetMarkets(w http.ResponseWriter, r *http.Request) {
	cols, err := selectedColumns(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid columns parameter")
		return
	}
	ds, err := s.svc.GetOrFetch(r.Context(), s.query)
	if err != nil {
		s.datasetError(w, r, err)
		return
	}
	resp := marketsResponse{
		UpdatedAt: ds.FetchedAt,
		Count:     ds.Len(),
		Columns:   domain.ColumnNames(cols),
		Rows:      make([][]string, 0, ds.Len()),
	}
	for _, rec := range ds.Records {
		resp.Rows = append(resp.Rows, format.Row(cols, rec))
	}
	writeJSON(w, http.StatusOK, resp)
}

// ExportCSV streams the raw values of the selected columns as a CSV attachment.
func (s *Server) ExportCSV(w http.ResponseWriter, r *http.Request) {
	cols, err := selectedColumns(r)
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid columns parameter")
		return
	}
	ds, err := s.svc.GetOrFetch(r.Context(), s.query)
	if err != nil {
		s.datasetError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", export.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="`+export.FileName+`"`)
	w.WriteHeader(http.StatusOK)
	if err := export.WriteCSV(w, cols, ds.Records); err != nil {
		logx.FromContext(r.Context()).Warn("csv.write_failed", zap.Error(err))
	}
}

// selectedColumns reads ?columns=a&columns=b (or a comma separated list).
// Without the parameter the default columns are used.
func selectedColumns(r *http.Request) ([]domain.Column, error) {
	var names []string
	if err := runtime.BindQueryParameter("form", true, false, "columns", r.URL.Query(), &names); err != nil {
		return nil, err
	}
	if len(names) == 0 {
		return domain.DefaultColumns(), nil
	}
	return domain.SelectColumns(names), nil
}

func (s *Server) datasetError(w http.ResponseWriter, r *http.Request, err error) {
	log := logx.FromContext(r.Context())
	switch {
	case errors.Is(err, application.ErrEmptyDataset):
		writeError(w, http.StatusServiceUnavailable, msgNoData)
	case errors.Is(err, context.Canceled):
		log.Info("request.canceled")
	default:
		log.Error("dataset.unavailable", zap.Error(err))
		writeError(w, http.StatusBadGateway, "market data unavailable")
	}
}

func kindName(k domain.ColumnKind) string {
	switch k {
	case domain.KindText:
		return "text"
	case domain.KindRank:
		return "rank"
	case domain.KindPrice:
		return "price"
	case domain.KindPercent:
		return "percent"
	case domain.KindDate:
		return "date"
	default:
		return "amount"
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Code: status, Message: msg})
}
