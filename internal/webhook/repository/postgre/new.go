package postgres

import (
	"database/sql"

	"restock-srv/internal/webhook/repository"
	"restock-srv/pkg/encrypter"
	pkgLog "restock-srv/pkg/log"
)

type implRepository struct {
	l   pkgLog.Logger
	db  *sql.DB
	enc encrypter.Encrypter
}

var _ repository.Repository = &implRepository{}

// New returns a repository that decrypts subscription secrets with enc.
func New(l pkgLog.Logger, db *sql.DB, enc encrypter.Encrypter) repository.Repository {
	return &implRepository{
		l:   l,
		db:  db,
		enc: enc,
	}
}
