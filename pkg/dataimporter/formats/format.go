package formats

import (
	"io"

	"github.com/travigo/dutyboard/pkg/ctdf"
)

type Format interface {
	ParseFile(io.Reader) error
	Import(*ctdf.DatabaseBuilder, *ctdf.DataSource) error
}
