package mcpserver

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/davetashner/datocms-mcp/internal/signature"
)

func TestFormatOverload_NoReturnType(t *testing.T) {
	got := formatOverload("Destroy", signature.Overload{
		Parameters: []signature.Parameter{{Name: "itemID", Type: "string"}},
	})
	assert.Equal(t, "Destroy(itemID string)", got)
}

func TestFormatOverload_WithReturnType(t *testing.T) {
	got := formatOverload("List", signature.Overload{
		Parameters: []signature.Parameter{{Name: "itemType", Type: "string"}},
		ReturnType: "apitypes.ItemInstancesTargetSchema",
	})
	assert.Equal(t, "List(itemType string) apitypes.ItemInstancesTargetSchema", got)
}

func TestFormatOverload_MultipleParameters(t *testing.T) {
	got := formatOverload("Update", signature.Overload{
		Parameters: []signature.Parameter{
			{Name: "itemID", Type: "string"},
			{Name: "body", Type: "apitypes.ItemUpdateSchema"},
		},
		ReturnType: "apitypes.ItemInstance",
	})
	assert.Equal(t, "Update(itemID string, body apitypes.ItemUpdateSchema) apitypes.ItemInstance", got)
}

func TestFormatSignature_AppendsDoc(t *testing.T) {
	sig := &signature.MethodSignature{
		MethodName: "Find",
		Overloads: []signature.Overload{
			{Parameters: []signature.Parameter{{Name: "itemID", Type: "string"}}, ReturnType: "apitypes.ItemInstance"},
		},
		Doc: "Find retrieves a single item by id.",
	}
	got := formatSignature(sig)
	assert.Contains(t, got, "Find(itemID string) apitypes.ItemInstance")
	assert.Contains(t, got, "Find retrieves a single item by id.")
}

func TestFormatSignature_NoDocOmitsTrailingBlank(t *testing.T) {
	sig := &signature.MethodSignature{
		MethodName: "Fork",
		Overloads: []signature.Overload{
			{Parameters: []signature.Parameter{{Name: "sourceID", Type: "string"}}, ReturnType: "apitypes.Environment"},
		},
	}
	got := formatSignature(sig)
	assert.Equal(t, "Fork(sourceID string) apitypes.Environment", got)
}
