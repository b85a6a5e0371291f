// Copyright 2026 The Stringer Authors
// SPDX-License-Identifier: MIT

package mcpserver

import (
	"fmt"
	"strings"

	"github.com/davetashner/datocms-mcp/internal/signature"
)

// handlers closes over Deps so every tool method has access to the loaders,
// stores, and client without relying on package-level globals.
type handlers struct {
	deps *Deps
}

// formatOverload renders one call signature as "Method(name Type, ...) Ret".
// Overload.Parameters and Overload.ReturnType already have context.Context
// and the trailing error stripped by internal/signature.
func formatOverload(method string, o signature.Overload) string {
	parts := make([]string, len(o.Parameters))
	for i, p := range o.Parameters {
		parts[i] = p.Name + " " + p.Type
	}
	sig := fmt.Sprintf("%s(%s)", method, strings.Join(parts, ", "))
	if o.ReturnType == "" {
		return sig
	}
	return sig + " " + o.ReturnType
}

// formatSignature renders every overload of sig, one per line, followed by
// its doc comment when present.
func formatSignature(sig *signature.MethodSignature) string {
	var b strings.Builder
	for _, o := range sig.Overloads {
		b.WriteString(formatOverload(sig.MethodName, o))
		b.WriteString("\n")
	}
	if sig.Doc != "" {
		b.WriteString("\n")
		b.WriteString(sig.Doc)
	}
	return strings.TrimRight(b.String(), "\n")
}
