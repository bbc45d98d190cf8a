package catalog

// Snapshot is an immutable in-memory view of the catalog, indexed by id.
// The pricing engine reads from it so that a quote never touches storage.
type Snapshot struct {
	services  map[string]Service
	materials map[string]Material
}

// NewSnapshot indexes the given items. Later items replace earlier ones with the same id.
func NewSnapshot(services []Service, materials []Material) Snapshot {
	s := Snapshot{
		services:  make(map[string]Service, len(services)),
		materials: make(map[string]Material, len(materials)),
	}
	for _, svc := range services {
		s.services[svc.ID()] = svc
	}
	for _, m := range materials {
		s.materials[m.ID()] = m
	}
	return s
}

func (s Snapshot) Service(id string) (Service, bool) {
	svc, ok := s.services[id]
	return svc, ok
}

func (s Snapshot) Material(id string) (Material, bool) {
	m, ok := s.materials[id]
	return m, ok
}
