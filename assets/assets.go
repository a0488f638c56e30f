// Package assets embeds the static files shipped with the backend binary:
// database migrations, email templates and the common passwords list.
package assets

import "embed"

//go:embed migrations/*.sql
var Migrations embed.FS

// MigrationsDir is the root of Migrations.
const MigrationsDir = "migrations"

//go:embed all:templates/email
var Templates embed.FS

//go:embed common-passwords.txt
var CommonPasswords string
