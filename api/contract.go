// Package api holds the default API contract served and enforced by librarium.
package api

import _ "embed"

// Contract is the default OpenAPI contract, used when no contract location
// is configured.
//
//go:embed openapi.yml
var Contract []byte

// ContractSource names the embedded contract in logs and errors.
const ContractSource = "embedded:api/openapi.yml"
