package schema

// Field is a logical input field together with its ranked column-name
// candidates. Candidates are tried in order, exact match before
// substring match, case-insensitively.
type Field struct {
	Name       string
	Candidates []string
}

// Order table fields
var (
	OrderArticle = Field{"order article", []string{"artikel", "artikelnummer", "sku", "article", "artnr", "art.nr"}}
	OrderQty     = Field{"order quantity", []string{"beställt", "antal", "qty", "quantity", "bestalld", "order qty"}}
	OrderStatus  = Field{"order status", []string{"status", "radstatus", "orderstatus", "state"}}
	OrderID      = Field{"order id", []string{"ordernr", "order nr", "order number", "kund", "kundnr"}}
	OrderLineID  = Field{"order line id", []string{"radnr", "rad nr", "line id", "rad", "struktur", "radsnr"}}
)

// Buffer table fields
var (
	BufferArticle  = Field{"buffer article", []string{"artikel", "article", "artnr", "art.nr", "artikelnummer"}}
	BufferQty      = Field{"buffer quantity", []string{"antal", "qty", "quantity", "pallantal", "colli", "units"}}
	BufferLocation = Field{"buffer location", []string{"lagerplats", "plats", "location", "bin", "hyllplats"}}
	BufferReceived = Field{"buffer received", []string{"datum/tid", "datum", "mottagen", "received", "inleverans", "inleveransdatum", "timestamp", "arrival"}}
	BufferID       = Field{"buffer id", []string{"pallid", "pall id", "id", "sscc", "etikett", "batch", "lpn"}}
	BufferStatus   = Field{"buffer status", []string{"status", "pallstatus", "state"}}
)

// Pick-face stock table fields
var (
	StockArticle  = Field{"stock article", []string{"artikel", "artnr", "art.nr", "artikelnummer", "sku", "article"}}
	StockQty      = Field{"stock quantity", []string{"plocksaldo", "plock saldo", "plock-saldo", "saldo", "pick saldo", "pick qty", "tillgängligt plock", "tillgangligt plock", "available pick", "plock"}}
	StockLocation = Field{"stock location", []string{"plockplats", "huvudplock", "mainpick", "hyllplats", "bin", "location", "lagerplats"}}
)

// Backlog (not-yet-putaway) table fields
var (
	BacklogArticle = Field{"backlog article", []string{"artikel", "artnr", "art.nr", "artikelnummer"}}
	BacklogQty     = Field{"backlog quantity", []string{"antal", "qty", "quantity", "kolli"}}
)

// Pick log fields
var (
	PickLogArticle = Field{"pick log article", []string{"artikel", "artikelnr", "artnr", "art.nr", "artikelnummer", "sku", "article"}}
	PickLogQty     = Field{"pick log quantity", []string{"plockat", "antal", "quantity", "qty", "picked", "units"}}
	PickLogDate    = Field{"pick log date", []string{"datum", "datumtid", "timestamp", "date", "tid", "time"}}
)
