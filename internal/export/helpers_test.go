package export

import (
	"os"
	"path/filepath"

	"github.com/mesh-intelligence/ynab-export/pkg/types"
)

func openTable(dir, table string) (*os.File, error) {
	return os.Open(filepath.Join(dir, types.TableFile(table)))
}
