package ospf

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/lstate/ospfd/wire"
)

// GetLSDB returns every Router-LSA currently installed in areaID's
// database.
func (r *Router) GetLSDB(areaID uint32) []wire.LSA {
	r.mu.Lock()
	a, ok := r.areas[areaID]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return a.db.All(wire.LSATypeRouter, r.sched.Now())
}

// GetL1SummaryLsdb returns every L1-Summary-LSA installed in areaID's
// database.
func (r *Router) GetL1SummaryLsdb(areaID uint32) []wire.LSA {
	r.mu.Lock()
	a, ok := r.areas[areaID]
	r.mu.Unlock()
	if !ok {
		return nil
	}
	return a.db.All(wire.LSATypeL1Summary, r.sched.Now())
}

// GetAreaLsdb returns every Area-LSA known to this router.
func (r *Router) GetAreaLsdb() []wire.LSA {
	return r.backboneDB.All(wire.LSATypeArea, r.sched.Now())
}

// GetL2SummaryLsdb returns every L2-Summary-LSA known to this router.
func (r *Router) GetL2SummaryLsdb() []wire.LSA {
	return r.backboneDB.All(wire.LSATypeL2Summary, r.sched.Now())
}

// GetLsdbHash returns a stable hash over areaID's Router-LSDB, letting two
// routers cheaply confirm they've converged without diffing full LSAs.
func (r *Router) GetLsdbHash(areaID uint32) (uint32, bool) {
	r.mu.Lock()
	a, ok := r.areas[areaID]
	r.mu.Unlock()
	if !ok {
		return 0, false
	}
	return a.db.Hash(wire.LSATypeRouter), true
}

// PrintRouting writes the current combined computed route set (every
// area's L1 routes plus the L2 route set) to directory/fileName as plain
// text, one route per line.
func (r *Router) PrintRouting(directory, fileName string) error {
	r.mu.Lock()
	var lines []string
	for id, a := range r.areas {
		for _, rt := range a.routes {
			lines = append(lines, fmt.Sprintf("area=%d prefix=%s nextHop=%d metric=%d\n", id, rt.Prefix, rt.NextHopRouter, rt.Metric))
		}
	}
	for _, rt := range r.l2Routes {
		lines = append(lines, fmt.Sprintf("area=L2 prefix=%s nextHop=%d metric=%d\n", rt.Prefix, rt.NextHopRouter, rt.Metric))
	}
	r.mu.Unlock()

	var out []byte
	for _, line := range lines {
		out = append(out, line...)
	}
	return os.WriteFile(filepath.Join(directory, fileName), out, 0o644)
}
