// Package schemas provides embedded SQL migrations and document schemas.
package schemas

import "embed"

// Migrations contains all SQL migration files.
//
//go:embed migrations/*.sql
var Migrations embed.FS

// CardFace is the JSON schema for a stored card face document.
//
//go:embed card_face.schema.json
var CardFace []byte
