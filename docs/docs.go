// Package docs carries the OpenAPI description served by the swagger UI.
package docs

import _ "embed"

//go:embed openapi.json
var OpenAPI []byte
