package schema

import _ "embed"

//go:embed pvm-config.schema.json
var ConfigSchema []byte
