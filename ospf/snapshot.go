package ospf

import (
	"fmt"

	"github.com/lstate/ospfd/iface"
	"github.com/lstate/ospfd/snapshot"
	"github.com/lstate/ospfd/spf"
)

// ExportSnapshot writes this router's durable state to dir: one metadata
// file, one neighbors file, one combined routes file, and one LSDB file
// per area plus the backbone.
func (r *Router) ExportSnapshot(dir string) error {
	now := r.sched.Now()

	r.mu.Lock()
	isLeader := false
	if r.primaryArea != nil {
		if a, ok := r.areas[*r.primaryArea]; ok {
			isLeader = a.lead.IsLeader()
		}
	}
	ifacesByIdx := make(map[uint32]*iface.Interface)
	areas := make(map[uint32]*areaState, len(r.areas))
	var allRoutes []spf.Route
	for id, a := range r.areas {
		areas[id] = a
		allRoutes = append(allRoutes, a.routes...)
		for idx, i := range a.ifaces {
			ifacesByIdx[idx] = i
		}
	}
	allRoutes = append(allRoutes, r.l2Routes...)
	r.mu.Unlock()

	if err := snapshot.ExportMetadata(dir, "metadata.bin", snapshot.Metadata{IsLeader: isLeader}); err != nil {
		return err
	}
	if err := snapshot.ExportNeighbors(dir, "neighbors.bin", ifacesByIdx); err != nil {
		return err
	}
	if err := snapshot.ExportPrefixes(dir, "routes.bin", allRoutes); err != nil {
		return err
	}
	for id, a := range areas {
		if err := snapshot.ExportLsdb(dir, fmt.Sprintf("lsdb-area-%d.bin", id), a.db, now); err != nil {
			return err
		}
	}
	return snapshot.ExportLsdb(dir, "lsdb-backbone.bin", r.backboneDB, now)
}

// ImportSnapshot restores durable state from dir into this router's
// already-configured areas and interfaces. Only areas and interfaces that
// already exist (added via AddInterface/SetArea before calling this) are
// restored; a snapshot file referencing one that doesn't is skipped with a
// warning, the same interface-renumbering tolerance the snapshot package's
// ImportNeighbors documents.
func (r *Router) ImportSnapshot(dir string) error {
	now := r.sched.Now()

	r.mu.Lock()
	ifacesByIdx := make(map[uint32]*iface.Interface)
	areas := make(map[uint32]*areaState, len(r.areas))
	for id, a := range r.areas {
		areas[id] = a
		for idx, i := range a.ifaces {
			ifacesByIdx[idx] = i
		}
	}
	r.mu.Unlock()

	var meta snapshot.Metadata
	if err := snapshot.ImportMetadata(dir, "metadata.bin", &meta); err != nil {
		return err
	}
	if err := snapshot.ImportNeighbors(dir, "neighbors.bin", ifacesByIdx); err != nil {
		return err
	}

	var routes []spf.Route
	if err := snapshot.ImportPrefixes(dir, "routes.bin", &routes); err != nil {
		return err
	}

	for id, a := range areas {
		if err := snapshot.ImportLsdb(dir, fmt.Sprintf("lsdb-area-%d.bin", id), a.db, now); err != nil {
			return err
		}
	}
	if err := snapshot.ImportLsdb(dir, "lsdb-backbone.bin", r.backboneDB, now); err != nil {
		return err
	}

	if meta.IsLeader {
		r.SetAreaLeader(true)
	}
	return nil
}
