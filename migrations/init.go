package migrations

import (
	"io/fs"

	polls "github.com/goliatone/go-polls"
)

func init() {
	coreFS, err := fs.Sub(polls.GetMigrationsFS(), "data/sql/migrations")
	if err != nil {
		return
	}
	Register(coreFS)
}
