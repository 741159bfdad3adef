package schema

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/nordicwms/allokera/pkg/domain/entities"
)

// Orders is a column-resolved order table. Header and QtyCol are kept so
// report writers can echo the caller's columns with the quantity cell
// replaced by the allocated quantity.
type Orders struct {
	Header []string
	QtyCol int
	Lines  []entities.OrderLine
}

// NormalizeOrders resolves the order table. Article and quantity are
// required; status, order id and line id are optional. Lines without an
// id column fall back to the row index as line id.
func NormalizeOrders(t Table) (*Orders, error) {
	artCol, err := RequireColumn(t.Header, OrderArticle)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	qtyCol, err := RequireColumn(t.Header, OrderQty)
	if err != nil {
		return nil, fmt.Errorf("orders: %w", err)
	}
	idCol, hasID := FindColumn(t.Header, OrderID)
	lineCol, hasLine := FindColumn(t.Header, OrderLineID)
	statusCol, hasStatus := FindColumn(t.Header, OrderStatus)

	out := &Orders{Header: t.Header, QtyCol: qtyCol}
	for i, row := range t.Rows {
		line := entities.OrderLine{
			Article:  strings.TrimSpace(t.Cell(i, artCol)),
			Quantity: ParseQuantity(t.Cell(i, qtyCol)),
			LineID:   strconv.Itoa(i),
			Raw:      row,
		}
		if hasID {
			line.OrderID = strings.TrimSpace(t.Cell(i, idCol))
		}
		if hasLine {
			line.LineID = strings.TrimSpace(t.Cell(i, lineCol))
		}
		if hasStatus {
			line.StatusCode = ParseStatusCode(t.Cell(i, statusCol))
		}
		out.Lines = append(out.Lines, line)
	}
	return out, nil
}

// BufferTable is the column-resolved buffer. HasStatus records whether a
// status column resolved at all: when it did not, status filtering is
// skipped downstream instead of rejecting every unit.
type BufferTable struct {
	Units     []entities.BufferUnit
	HasStatus bool
}

// NormalizeBuffer resolves the buffer table into stock units. Article,
// quantity and location are required; received timestamp, unit id and
// status are optional. Units without an id column get a synthetic
// SRC-<row> id.
func NormalizeBuffer(t Table) (*BufferTable, error) {
	artCol, err := RequireColumn(t.Header, BufferArticle)
	if err != nil {
		return nil, fmt.Errorf("buffer: %w", err)
	}
	qtyCol, err := RequireColumn(t.Header, BufferQty)
	if err != nil {
		return nil, fmt.Errorf("buffer: %w", err)
	}
	locCol, err := RequireColumn(t.Header, BufferLocation)
	if err != nil {
		return nil, fmt.Errorf("buffer: %w", err)
	}
	dtCol, hasDT := FindColumn(t.Header, BufferReceived)
	idCol, hasID := FindColumn(t.Header, BufferID)
	statusCol, hasStatus := FindColumn(t.Header, BufferStatus)

	units := make([]entities.BufferUnit, 0, len(t.Rows))
	for i := range t.Rows {
		u := entities.BufferUnit{
			Article:  strings.TrimSpace(t.Cell(i, artCol)),
			Quantity: ParseQuantity(t.Cell(i, qtyCol)),
			Location: strings.TrimSpace(t.Cell(i, locCol)),
			SourceID: "SRC-" + strconv.Itoa(i),
		}
		if hasDT {
			u.ReceivedAt = ParseTime(t.Cell(i, dtCol))
		}
		if hasID {
			if id := strings.TrimSpace(t.Cell(i, idCol)); id != "" {
				u.SourceID = id
			}
		}
		if hasStatus {
			u.StatusCode = ParseStatusCode(t.Cell(i, statusCol))
		}
		units = append(units, u)
	}
	return &BufferTable{Units: units, HasStatus: hasStatus}, nil
}

// NormalizePickFaceStock resolves and aggregates the pick-face stock
// table per article: stock quantities sum, the first non-empty location
// wins. A table without a resolvable stock column yields no rows rather
// than an error, so the enrichment steps degrade to a no-op.
func NormalizePickFaceStock(t Table) ([]entities.PickFaceStock, error) {
	if t.Empty() {
		return nil, nil
	}
	artCol, err := RequireColumn(t.Header, StockArticle)
	if err != nil {
		return nil, fmt.Errorf("pick-face stock: %w", err)
	}
	qtyCol, hasQty := FindColumn(t.Header, StockQty)
	if !hasQty {
		return nil, nil
	}
	locCol, hasLoc := FindColumn(t.Header, StockLocation)

	index := make(map[string]int)
	var out []entities.PickFaceStock
	for i := range t.Rows {
		article := strings.TrimSpace(t.Cell(i, artCol))
		if article == "" {
			continue
		}
		qty := ParseQuantity(t.Cell(i, qtyCol))
		loc := ""
		if hasLoc {
			loc = strings.TrimSpace(t.Cell(i, locCol))
		}
		if j, ok := index[article]; ok {
			out[j].Quantity = out[j].Quantity.Add(qty)
			if out[j].Location == "" && loc != "" {
				out[j].Location = loc
			}
			continue
		}
		index[article] = len(out)
		out = append(out, entities.PickFaceStock{Article: article, Quantity: qty, Location: loc})
	}
	return out, nil
}

// NormalizeBacklog resolves the not-yet-putaway table into per-article
// quantity sums.
func NormalizeBacklog(t Table) (map[string]decimal.Decimal, error) {
	if t.Empty() {
		return map[string]decimal.Decimal{}, nil
	}
	artCol, err := RequireColumn(t.Header, BacklogArticle)
	if err != nil {
		return nil, fmt.Errorf("backlog: %w", err)
	}
	qtyCol, err := RequireColumn(t.Header, BacklogQty)
	if err != nil {
		return nil, fmt.Errorf("backlog: %w", err)
	}
	sums := make(map[string]decimal.Decimal)
	for i := range t.Rows {
		article := strings.TrimSpace(t.Cell(i, artCol))
		if article == "" {
			continue
		}
		sums[article] = sums[article].Add(ParseQuantity(t.Cell(i, qtyCol)))
	}
	return sums, nil
}

// NormalizePickLog resolves the pick log into pick events. Rows without
// a parsable date are dropped.
func NormalizePickLog(t Table) ([]entities.PickEvent, error) {
	if t.Empty() {
		return nil, nil
	}
	artCol, err := RequireColumn(t.Header, PickLogArticle)
	if err != nil {
		return nil, fmt.Errorf("pick log: %w", err)
	}
	qtyCol, err := RequireColumn(t.Header, PickLogQty)
	if err != nil {
		return nil, fmt.Errorf("pick log: %w", err)
	}
	dtCol, err := RequireColumn(t.Header, PickLogDate)
	if err != nil {
		return nil, fmt.Errorf("pick log: %w", err)
	}
	var events []entities.PickEvent
	for i := range t.Rows {
		at := ParseTime(t.Cell(i, dtCol))
		if at == nil {
			continue
		}
		events = append(events, entities.PickEvent{
			Article:  strings.TrimSpace(t.Cell(i, artCol)),
			Quantity: ParseQuantity(t.Cell(i, qtyCol)),
			PickedAt: *at,
		})
	}
	return events, nil
}
