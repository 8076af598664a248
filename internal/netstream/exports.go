package netstream

import (
	"sort"

	"github.com/ureplay/ureplay/internal/archive"
	"github.com/ureplay/ureplay/internal/versions"
)

// NetFieldExport maps a small handle to a replicated property name.
type NetFieldExport struct {
	Handle             uint32
	CompatibleChecksum uint32
	Name               string
	OrigType           string
}

// NetFieldExportGroup is the set of field exports of one replicated class path.
type NetFieldExportGroup struct {
	PathName      string
	PathNameIndex uint32
	ExportCount   uint32
	Exports       map[uint32]NetFieldExport
}

// ExportRegistry interns export groups by path index and their field exports by handle.
// It does not interpret the properties the exports describe.
type ExportRegistry struct {
	groupsByPath  map[string]*NetFieldExportGroup
	groupsByIndex map[uint32]*NetFieldExportGroup
}

func NewExportRegistry() *ExportRegistry {
	return &ExportRegistry{
		groupsByPath:  make(map[string]*NetFieldExportGroup),
		groupsByIndex: make(map[uint32]*NetFieldExportGroup),
	}
}

// RegisterGroup returns the group for pathName, creating it on first sight.
// A known group without an export count adopts the new index and count.
func (registry *ExportRegistry) RegisterGroup(pathNameIndex uint32, pathName string, exportCount uint32) *NetFieldExportGroup {
	group, ok := registry.groupsByPath[pathName]
	if !ok {
		group = &NetFieldExportGroup{
			PathName:      pathName,
			PathNameIndex: pathNameIndex,
			ExportCount:   exportCount,
			Exports:       make(map[uint32]NetFieldExport),
		}
		registry.groupsByPath[pathName] = group
		registry.groupsByIndex[pathNameIndex] = group
		return group
	}
	if group.ExportCount == 0 {
		group.ExportCount = exportCount
		group.PathNameIndex = pathNameIndex
		registry.groupsByIndex[pathNameIndex] = group
	}
	return group
}

func (registry *ExportRegistry) GroupByIndex(pathNameIndex uint32) (*NetFieldExportGroup, bool) {
	group, ok := registry.groupsByIndex[pathNameIndex]
	return group, ok
}

func (registry *ExportRegistry) GroupByPath(pathName string) (*NetFieldExportGroup, bool) {
	group, ok := registry.groupsByPath[pathName]
	return group, ok
}

func (registry *ExportRegistry) AddFieldExport(group *NetFieldExportGroup, export NetFieldExport) {
	group.Exports[export.Handle] = export
}

func (registry *ExportRegistry) Len() int {
	return len(registry.groupsByPath)
}

// Groups returns a snapshot ordered by path index, then path.
func (registry *ExportRegistry) Groups() []GroupSummary {
	groups := make([]GroupSummary, 0, len(registry.groupsByPath))
	for _, group := range registry.groupsByPath {
		groups = append(groups, GroupSummary{
			PathName:      group.PathName,
			PathNameIndex: group.PathNameIndex,
			ExportCount:   group.ExportCount,
			FieldExports:  len(group.Exports),
		})
	}
	sort.Slice(groups, func(i, j int) bool {
		if groups[i].PathNameIndex != groups[j].PathNameIndex {
			return groups[i].PathNameIndex < groups[j].PathNameIndex
		}
		return groups[i].PathName < groups[j].PathName
	})
	return groups
}

func (walker *Walker) readNetFieldExports(ar *archive.Archive) error {
	count, err := ar.ReadPackedUint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		pathNameIndex, err := ar.ReadPackedUint32()
		if err != nil {
			return err
		}
		isExported, err := ar.ReadPackedUint32()
		if err != nil {
			return err
		}

		var group *NetFieldExportGroup
		if isExported == 1 {
			pathName, err := ar.ReadFString()
			if err != nil {
				return err
			}
			exportCount, err := ar.ReadPackedUint32()
			if err != nil {
				return err
			}
			group = walker.registry.RegisterGroup(pathNameIndex, pathName, exportCount)
		} else {
			group, _ = walker.registry.GroupByIndex(pathNameIndex)
		}

		export, ok, err := readNetFieldExport(ar)
		if err != nil {
			return err
		}
		if !ok {
			continue
		}
		walker.summary.NetFieldExports++
		if group == nil {
			walker.summary.UnresolvedFieldExports++
			continue
		}
		walker.registry.AddFieldExport(group, export)
	}
	return nil
}

func readNetFieldExport(ar *archive.Archive) (export NetFieldExport, ok bool, err error) {
	isExported, err := ar.ReadUint8()
	if err != nil || isExported == 0 {
		return NetFieldExport{}, false, err
	}
	if export.Handle, err = ar.ReadPackedUint32(); err != nil {
		return NetFieldExport{}, false, err
	}
	if export.CompatibleChecksum, err = ar.ReadUint32(); err != nil {
		return NetFieldExport{}, false, err
	}
	switch versions.FieldExportLayoutAt(ar.EngineNetworkVersion) {
	case versions.FieldExportNameAndType:
		if export.Name, err = ar.ReadFString(); err != nil {
			return NetFieldExport{}, false, err
		}
		export.OrigType, err = ar.ReadFString()
	case versions.FieldExportNameString:
		export.Name, err = ar.ReadFString()
	default:
		export.Name, err = ar.ReadFName()
	}
	if err != nil {
		return NetFieldExport{}, false, err
	}
	return export, true, nil
}

// readNetGUIDExports skips every net guid export, each inside its own bound.
func (walker *Walker) readNetGUIDExports(ar *archive.Archive) error {
	count, err := ar.ReadPackedUint32()
	if err != nil {
		return err
	}
	for i := uint32(0); i < count; i++ {
		size, err := ar.ReadInt32()
		if err != nil {
			return err
		}
		if size < 0 {
			return NewInvalidExportSizeError(size)
		}
		err = ar.WithinBound(int(size), func() error { return nil })
		if err != nil {
			return err
		}
		walker.summary.NetGUIDExports++
	}
	return nil
}
