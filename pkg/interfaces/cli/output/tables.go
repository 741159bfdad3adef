package output

import (
	"strconv"

	"github.com/shopspring/decimal"

	"github.com/nordicwms/allokera/pkg/domain/entities"
	"github.com/nordicwms/allokera/pkg/schema"
)

// ReportTable is a rendered report: a header row plus string cells,
// ready for any sink (CSV file, workbook sheet, terminal).
type ReportTable struct {
	Name   string
	Header []string
	Rows   [][]string
}

// allocationColumns are appended to the caller's own order columns.
// The Swedish names are the external wire format consumed downstream.
var allocationColumns = []string{"Zon (beräknad)", "Källtyp", "Källa", "Källplats"}

var nearMissHeader = []string{
	"Artikel", "OrderID", "OrderRad", "PallID", "Källplats", "Mottagen",
	"Behov_vid_tillfället", "Pall_kvantitet", "Skillnad",
	"Procentuell skillnad (%)", "Anledning", "Gäller (INSTEAD R/A)",
}

var refillHeader = []string{
	"Artikel", "Zon", "Behov (kolli)", "FIFO-baserad beräkning",
	"Tillräckligt tillgängligt saldo i buffert", "Plockplats",
	"Ej inlagrade (antal)",
}

var metricsColumns = []string{
	"Antal dagar i plock", "Snitt beställt per plockdag",
	"Dagar sedan senaste plock", "Antal per pall",
}

// AllocationTable echoes the caller's order columns per allocated line,
// with the quantity cell replaced by the allocated quantity and the
// zone/source columns appended.
func AllocationTable(orders *schema.Orders, lines []entities.AllocatedLine) ReportTable {
	header := append(append([]string{}, orders.Header...), allocationColumns...)
	rows := make([][]string, 0, len(lines))
	for _, l := range lines {
		row := make([]string, len(orders.Header))
		copy(row, l.Raw)
		if orders.QtyCol >= 0 && orders.QtyCol < len(row) {
			row[orders.QtyCol] = l.Allocated.String()
		}
		row = append(row, string(l.Zone), string(l.Source), l.SourceID, l.SourceLocation)
		rows = append(rows, row)
	}
	return ReportTable{Name: "Allokerade ordrar", Header: header, Rows: rows}
}

// NearMissTable renders the whole-pallet near misses
func NearMissTable(records []entities.NearMissRecord) ReportTable {
	rows := make([][]string, 0, len(records))
	for _, r := range records {
		received := ""
		if r.ReceivedAt != nil {
			received = r.ReceivedAt.Format("2006-01-02 15:04:05")
		}
		rows = append(rows, []string{
			r.Article, r.OrderID, r.LineID, r.SourceID, r.SourceLocation,
			received,
			r.NeedAtTime.String(),
			r.PalletQty.String(),
			r.Difference.String(),
			r.PercentDiff.Round(2).String(),
			r.Reason,
			yesNo(r.Mattered),
		})
	}
	return ReportTable{Name: "Near miss", Header: nearMissHeader, Rows: rows}
}

// MainPickRefillTable renders the main-pick and bulky refill report.
// Metrics columns appear only when at least one row carries metrics.
func MainPickRefillTable(reqs []entities.RefillRequirement) ReportTable {
	t := refillTable("Refill HP", reqs, true)
	return t
}

// AutoStoreRefillTable renders the automated-storage refill report
func AutoStoreRefillTable(reqs []entities.RefillRequirement) ReportTable {
	return refillTable("Refill AUTOSTORE", reqs, false)
}

func refillTable(name string, reqs []entities.RefillRequirement, withZone bool) ReportTable {
	annotated := false
	for _, r := range reqs {
		if r.Metrics != nil {
			annotated = true
			break
		}
	}
	header := append([]string{}, refillHeader...)
	if !withZone {
		header = append(header[:1], header[2:]...)
	}
	if annotated {
		header = append(header, metricsColumns...)
	}

	rows := make([][]string, 0, len(reqs))
	for _, r := range reqs {
		row := []string{r.Article}
		if withZone {
			row = append(row, string(r.Zone))
		}
		row = append(row,
			strconv.FormatInt(r.Shortfall, 10),
			strconv.Itoa(r.EstimatedUnits),
			yesNo(r.Sufficient),
			r.PickFace,
			strconv.FormatInt(r.Backlog, 10),
		)
		if annotated {
			row = append(row, metricsCells(r.Metrics)...)
		}
		rows = append(rows, row)
	}
	return ReportTable{Name: name, Header: header, Rows: rows}
}

func metricsCells(m *entities.ArticleMetrics) []string {
	if m == nil {
		return []string{"", "", "", ""}
	}
	return []string{
		strconv.Itoa(m.PickDays),
		m.AvgPerPickDay.String(),
		strconv.Itoa(m.DaysSinceLast),
		formatDecimal(m.AvgUnitsPerSource),
	}
}

func formatDecimal(d decimal.Decimal) string {
	if d.IsZero() {
		return ""
	}
	return d.String()
}

func yesNo(b bool) string {
	if b {
		return "Ja"
	}
	return "Nej"
}
