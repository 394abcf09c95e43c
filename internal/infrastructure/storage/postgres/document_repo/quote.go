package document_repo

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/core/id"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/domain/documents/quote"
	"github.com/InglesinaItaliana/preventivatoreb2b-ii/internal/infrastructure/storage/postgres"
)

const (
	quotesTable     = "doc_quotes"
	quoteLinesTable = "doc_quote_lines"
)

// QuoteRepo implements quote.Repository.
type QuoteRepo struct {
	*BaseDocumentRepo[*quote.Quote]
}

// NewQuoteRepo creates a new quote repository.
func NewQuoteRepo(txManager *postgres.TxManager) *QuoteRepo {
	return &QuoteRepo{
		BaseDocumentRepo: NewBaseDocumentRepo[*quote.Quote](
			txManager,
			quotesTable,
			postgres.ExtractDBColumns[quote.Quote](),
			func() *quote.Quote { return &quote.Quote{} },
		),
	}
}

var quoteLineCols = []string{
	"line_id", "line_no",
	"category", "model", "size", "finish",
	"width_mm", "height_mm", "horizontal_bars", "vertical_bars",
	"quantity", "spacer_type", "spacer_code", "solo_spacer",
	"curved", "notch", "non_equidistant",
	"description", "validation_note",
	"base_grid_unit_price", "base_spacer_unit_price",
	"unit_price", "total_price",
}

// GetLines loads the table part of a quote ordered by line number.
func (r *QuoteRepo) GetLines(ctx context.Context, docID id.ID) ([]quote.Line, error) {
	q := r.Builder().
		Select(quoteLineCols...).
		From(quoteLinesTable).
		Where(squirrel.Eq{"document_id": docID}).
		OrderBy("line_no")

	sql, args, err := q.ToSql()
	if err != nil {
		return nil, fmt.Errorf("build query: %w", err)
	}

	var lines []quote.Line
	if err := pgxscan.Select(ctx, r.Querier(ctx), &lines, sql, args...); err != nil {
		return nil, fmt.Errorf("get lines: %w", err)
	}

	return lines, nil
}

// SaveLines replaces the table part of a quote.
func (r *QuoteRepo) SaveLines(ctx context.Context, docID id.ID, lines []quote.Line) error {
	querier := r.Querier(ctx)

	deleteSQL := "DELETE FROM " + quoteLinesTable + " WHERE document_id = $1"
	if _, err := querier.Exec(ctx, deleteSQL, docID); err != nil {
		return fmt.Errorf("delete existing lines: %w", err)
	}

	if len(lines) == 0 {
		return nil
	}

	cols := append([]string{"document_id"}, quoteLineCols...)
	q := r.Builder().
		Insert(quoteLinesTable).
		Columns(cols...)

	for _, line := range lines {
		q = q.Values(
			docID, line.LineID, line.LineNo,
			line.Category, line.Model, line.Size, line.Finish,
			line.WidthMM, line.HeightMM, line.HorizontalBars, line.VerticalBars,
			line.Quantity, line.SpacerType, line.SpacerCode, line.SoloSpacer,
			line.Curved, line.Notch, line.NonEquidistant,
			line.Description, line.ValidationNote,
			line.BaseGridUnitPrice, line.BaseSpacerUnitPrice,
			line.UnitPrice, line.TotalPrice,
		)
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return fmt.Errorf("build insert lines: %w", err)
	}

	if _, err := querier.Exec(ctx, sql, args...); err != nil {
		return fmt.Errorf("insert lines: %w", err)
	}

	return nil
}

// List retrieves quotes with quote-specific filtering.
func (r *QuoteRepo) List(ctx context.Context, f quote.ListFilter) (domain.ListResult[*quote.Quote], error) {
	result := domain.ListResult[*quote.Quote]{
		Limit:  f.Limit,
		Offset: f.Offset,
	}

	q := r.baseSelect()

	if !f.IncludeDeleted {
		q = q.Where(squirrel.Eq{"deletion_mark": false})
	}

	if f.CustomerID != nil {
		q = q.Where(squirrel.Eq{"customer_id": *f.CustomerID})
	}

	if f.Status != nil {
		q = q.Where(squirrel.Eq{"status": *f.Status})
	}

	if f.DateFrom != nil {
		q = q.Where(squirrel.GtOrEq{"date": *f.DateFrom})
	}

	if f.DateTo != nil {
		q = q.Where(squirrel.LtOrEq{"date": *f.DateTo})
	}

	if f.Search != "" {
		searchPattern := "%" + f.Search + "%"
		q = q.Where(squirrel.Or{
			squirrel.ILike{"number": searchPattern},
			squirrel.ILike{"job_reference": searchPattern},
		})
	}

	countQ := r.Builder().Select("COUNT(*)").FromSelect(q, "sub")
	countSQL, countArgs, err := countQ.ToSql()
	if err != nil {
		return result, fmt.Errorf("build count: %w", err)
	}

	querier := r.Querier(ctx)
	if err := querier.QueryRow(ctx, countSQL, countArgs...).Scan(&result.TotalCount); err != nil {
		return result, fmt.Errorf("count: %w", err)
	}

	orderBy, err := r.parseOrderBy(f.OrderBy)
	if err != nil {
		return result, err
	}
	q = q.OrderBy(orderBy)

	if f.Limit > 0 {
		q = q.Limit(uint64(f.Limit))
	}
	if f.Offset > 0 {
		q = q.Offset(uint64(f.Offset))
	}

	sql, args, err := q.ToSql()
	if err != nil {
		return result, fmt.Errorf("build query: %w", err)
	}

	if err := pgxscan.Select(ctx, querier, &result.Items, sql, args...); err != nil {
		return result, fmt.Errorf("select: %w", err)
	}

	return result, nil
}
