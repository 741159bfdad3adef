package refill

import (
	"github.com/nordicwms/allokera/pkg/domain/entities"
)

// Annotate left-joins sales-velocity metrics onto both reports by
// article. Rows without a matching article keep a nil Metrics. A nil
// report or empty metrics slice is a silent no-op.
func Annotate(report *entities.RefillReport, metrics []entities.ArticleMetrics) {
	if report == nil || len(metrics) == 0 {
		return
	}
	byArticle := make(map[string]*entities.ArticleMetrics, len(metrics))
	for i := range metrics {
		m := metrics[i]
		byArticle[m.Article] = &m
	}
	join := func(rows []entities.RefillRequirement) {
		for i := range rows {
			if m, ok := byArticle[rows[i].Article]; ok {
				rows[i].Metrics = m
			}
		}
	}
	join(report.MainPick)
	join(report.AutoStore)
}
