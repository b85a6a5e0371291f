package signature

import (
	"go/types"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/davetashner/datocms-mcp/internal/typeprogram"
)

func mustProgram(t *testing.T) *typeprogram.Program {
	t.Helper()
	typeprogram.ResetForTest()
	prog, err := typeprogram.Get()
	require.NoError(t, err)
	return prog
}

func TestExtract_UnknownResourceReturnsNil(t *testing.T) {
	prog := mustProgram(t)
	sig, err := Extract(prog, "DoesNotExist", "List")
	require.NoError(t, err)
	require.Nil(t, sig)
}

func TestExtract_UnknownMethodReturnsNil(t *testing.T) {
	prog := mustProgram(t)
	sig, err := Extract(prog, "Items", "DoesNotExist")
	require.NoError(t, err)
	require.Nil(t, sig)
}

func TestExtract_ItemsList(t *testing.T) {
	prog := mustProgram(t)
	sig, err := Extract(prog, "Items", "List")
	require.NoError(t, err)
	require.NotNil(t, sig)
	require.Equal(t, "List", sig.MethodName)
	require.Len(t, sig.Overloads, 1)

	overload := sig.Overloads[0]
	require.Len(t, overload.Parameters, 1)
	require.Equal(t, "itemType", overload.Parameters[0].Name)
	require.Contains(t, overload.ReturnType, "ItemInstancesTargetSchema")
	require.Equal(t, "https://www.datocms.com/docs/content-management-api/resources/item/instances", sig.ActionURL)
}

func TestExtract_ContextParameterOmitted(t *testing.T) {
	prog := mustProgram(t)
	sig, err := Extract(prog, "Items", "List")
	require.NoError(t, err)
	for _, p := range sig.Overloads[0].Parameters {
		require.NotEqual(t, "ctx", p.Name)
	}
}

func TestExtract_ListAndRawListReferenceDistinctTypes(t *testing.T) {
	prog := mustProgram(t)

	simple, err := Extract(prog, "ItemTypes", "List")
	require.NoError(t, err)
	raw, err := Extract(prog, "ItemTypes", "RawList")
	require.NoError(t, err)

	// apitypes.ItemTypeInstancesTargetSchema and rawapitypes's type of the
	// same name are both defined types, so the checker keeps them as two
	// distinct *types.Named symbols despite the identical name. A naive
	// name-only lookup for "ItemTypeInstancesTargetSchema" could not tell
	// them apart; ReferencedTypeSymbols must.
	require.Contains(t, simple.Overloads[0].ReturnType, "apitypes.ItemTypeInstancesTargetSchema")
	require.Contains(t, raw.Overloads[0].ReturnType, "rawapitypes.ItemTypeInstancesTargetSchema")
	require.NotEqual(t, simple.Overloads[0].ReturnType, raw.Overloads[0].ReturnType)

	var simpleSchema, rawSchema *types.TypeName
	for _, obj := range simple.ReferencedTypeSymbols {
		if obj.Name() == "ItemTypeInstancesTargetSchema" {
			simpleSchema = obj
		}
	}
	for _, obj := range raw.ReferencedTypeSymbols {
		if obj.Name() == "ItemTypeInstancesTargetSchema" {
			rawSchema = obj
		}
	}
	require.NotNil(t, simpleSchema, "List must reference the apitypes type by identity")
	require.NotNil(t, rawSchema, "RawList must reference the rawapitypes struct by identity")
	require.NotSame(t, simpleSchema, rawSchema)
	require.NotEqual(t, simpleSchema.Pkg().Path(), rawSchema.Pkg().Path())
}
