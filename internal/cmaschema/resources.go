// Package cmaschema roots the Go-native stand-in for the DatoCMS CMA
// client's shipped declaration files: internal/cmaschema/client mirrors
// the client's top-level class, internal/cmaschema/apitypes and
// internal/cmaschema/rawapitypes mirror its flattened and raw response
// namespaces, and resources.json (embedded below) mirrors the manifest the
// real client ships describing every resource's endpoints.
package cmaschema

import _ "embed"

//go:embed resources.json
var ResourcesJSON []byte
