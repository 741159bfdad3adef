package allocation

import (
	"go.uber.org/zap"

	"github.com/nordicwms/allokera/pkg/domain/entities"
)

// Reclassify promotes fallback allocations to the bulky-goods zone.
// Lines of type HUVUDPLOCK or AUTOSTORE with no source unit are rewritten
// to SKRYMMANDE / zone S when the article's pick-face location starts
// with the bulky prefix or contains the overflow marker. The input slice
// is not mutated; a no-op returns it unchanged.
func (e *Engine) Reclassify(lines []entities.AllocatedLine, stock []entities.PickFaceStock) []entities.AllocatedLine {
	if len(lines) == 0 || len(stock) == 0 {
		return lines
	}
	pickFace := make(map[string]string, len(stock))
	for _, s := range stock {
		if s.Article == "" || s.Location == "" {
			continue
		}
		if _, ok := pickFace[s.Article]; !ok {
			pickFace[s.Article] = s.Location
		}
	}
	if len(pickFace) == 0 {
		return lines
	}

	out := make([]entities.AllocatedLine, len(lines))
	copy(out, lines)
	reclassified := 0
	for i := range out {
		l := &out[i]
		if l.SourceID != "" {
			continue
		}
		if l.Source != entities.SourceMainPick && l.Source != entities.SourceAutostore {
			continue
		}
		if e.cfg.isBulkyPickFace(pickFace[l.Article]) {
			l.Source = entities.SourceBulky
			l.Zone = entities.ZoneBulky
			reclassified++
		}
	}
	if reclassified > 0 {
		e.log.Debug("reclassified fallback lines to bulky goods", zap.Int("lines", reclassified))
	}
	return out
}
