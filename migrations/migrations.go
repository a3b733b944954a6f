// Package migrations содержит SQL миграции схемы, встроенные в бинарник
package migrations

import "embed"

// FS встроенные файлы миграций для golang-migrate (iofs)
//
//go:embed *.sql
var FS embed.FS
