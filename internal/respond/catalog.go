package respond

import (
	"github.com/jangwonpark74/spp/internal/state"
	"github.com/jangwonpark74/spp/internal/wkspec"
)

// CatalogEntry pairs a response tag with the emitter callback that
// populates it. InfoCatalog is the table the "info" block visits,
// iterated in order (order is cosmetic only, per §4.4).
type CatalogEntry struct {
	Tag  string
	Emit func(b *Builder, m *state.Manager)
}

var InfoCatalog = []CatalogEntry{
	{"client-id", func(b *Builder, m *state.Manager) { b.Int("client-id", m.ClientID) }},
	{"phy", func(b *Builder, m *state.Manager) { emitFlushedPortsByKind(wkspec.PHY)(b, m) }},
	{"vhost", func(b *Builder, m *state.Manager) { emitFlushedPortsByKind(wkspec.VHOST)(b, m) }},
	{"ring", func(b *Builder, m *state.Manager) { emitFlushedPortsByKind(wkspec.RING)(b, m) }},
	{"master-lcore", func(b *Builder, m *state.Manager) { b.Int("master-lcore", m.MasterLcore) }},
	{"core", emitCoreArray},
	{"classifier_table", emitClassifierTable},
}

// BuildInfo composes the "info" block by running every catalog entry.
func BuildInfo(m *state.Manager) map[string]interface{} {
	b := NewBuilder()
	for _, e := range InfoCatalog {
		e.Emit(b, m)
	}
	return b.Fields()
}
