package rootsfile

import (
	"fmt"

	"github.com/hoardapp/hoard/internal/domain"
)

// Mapper converts storages.yaml entries to domain storage roots.
type Mapper struct{}

// NewMapper creates a new storages mapper.
func NewMapper() *Mapper {
	return &Mapper{}
}

// MapRoots validates the parsed file and converts it to domain roots.
// Names must be unique and at most one root may be flagged current;
// when none is, the storage manager falls back to the first configured.
func (m *Mapper) MapRoots(f File) ([]domain.StorageRoot, error) {
	if len(f.Storages) == 0 {
		return nil, fmt.Errorf("no storages defined in storages file")
	}

	seen := make(map[string]bool, len(f.Storages))
	currentCount := 0

	roots := make([]domain.StorageRoot, 0, len(f.Storages))
	for _, entry := range f.Storages {
		root := domain.StorageRoot{
			Name:      entry.Name,
			Path:      entry.Path,
			IsCurrent: entry.Current,
			IsDefault: entry.Default,
		}
		if err := root.Validate(); err != nil {
			return nil, fmt.Errorf("storage %q: %w", entry.Name, err)
		}
		if seen[root.Name] {
			return nil, fmt.Errorf("duplicate storage name: %s", root.Name)
		}
		seen[root.Name] = true

		if root.IsCurrent {
			currentCount++
		}
		roots = append(roots, root)
	}

	if currentCount > 1 {
		return nil, fmt.Errorf("only one storage may be flagged current, got %d", currentCount)
	}

	return roots, nil
}
