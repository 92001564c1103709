package browser

import (
	"gopkg.in/fatih/set.v0"

	"github.com/yumyai/synbrowser/internal/util"
	"github.com/yumyai/synbrowser/pkg/genome"
	"github.com/yumyai/synbrowser/pkg/viewport"
)

// LoadKey identifies what a load fetched. Two loads with equal keys differ
// only in their interval.
type LoadKey struct {
	Chr       string
	RefTaxon  int
	CompTaxon int
	Genes     []string
	QTLs      []string
}

func stringSet(ids []string) set.Interface {
	s := set.New(set.NonThreadSafe)
	for _, id := range ids {
		s.Add(id)
	}
	return s
}

// ReloadRequired reports whether moving from prev to next needs fresh data.
// The highlighted sets are compared without regard to order.
func ReloadRequired(prev, next LoadKey) bool {
	return util.NormalizeChr(prev.Chr) != util.NormalizeChr(next.Chr) ||
		prev.RefTaxon != next.RefTaxon ||
		prev.CompTaxon != next.CompTaxon ||
		!stringSet(prev.Genes).IsEqual(stringSet(next.Genes)) ||
		!stringSet(prev.QTLs).IsEqual(stringSet(next.QTLs))
}

func (b *Browser) currentKey() LoadKey {
	k := LoadKey{Chr: b.view.Interval().Chr}
	if b.ctx.Reference != nil {
		k.RefTaxon = b.ctx.Reference.TaxonID()
	}
	if b.ctx.Comparison != nil {
		k.CompTaxon = b.ctx.Comparison.TaxonID()
	}
	for _, g := range b.highlightedGenes {
		k.Genes = append(k.Genes, g.GeneID)
	}
	for _, q := range b.highlightedQTLs {
		k.QTLs = append(k.QTLs, q.ID)
	}
	return k
}

// LoadedKey is the key of the data currently rendered.
func (b *Browser) LoadedKey() LoadKey { return b.loaded }

// RequestReload decides between a full reload and a plain interval change
// for a request to show iv under key. It returns true when the caller must
// fetch new data and Render. While a brush or scroll holds the view the
// request is dropped with viewport.ErrInputBusy.
func (b *Browser) RequestReload(key LoadKey, iv genome.Interval) (bool, error) {
	if b.Busy() {
		return false, viewport.ErrInputBusy
	}
	if b.view == nil || ReloadRequired(b.loaded, key) {
		if b.ctx.Reference != nil {
			v := b.ctx.Reference.Validator()
			if !v.ValidInterval(iv) {
				return false, v.Err()
			}
		}
		return true, nil
	}
	return false, b.ChangeInterval(iv)
}
