package docrender

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRender_SummaryModeCollapsesDetails(t *testing.T) {
	prose := `Some intro. <details><summary>Advanced usage</summary>Full body here.</details> More text.`
	out := Render(prose, nil, nil)
	require.Contains(t, out, "<details><summary>Advanced usage</summary></details>")
	require.NotContains(t, out, "Full body here")
}

func TestRender_SummaryModeCollapsesExampleTokens(t *testing.T) {
	examples := map[string]Example{
		"ex1": {ID: "ex1", Title: "Create an item", RequestCode: "const x = 1"},
	}
	out := Render("See ::example[ex1] for details.", examples, nil)
	require.Contains(t, out, "Example: Create an item (ex1)")
	require.NotContains(t, out, "const x = 1")
}

func TestRender_SummaryModeAppendsUnreferencedExamples(t *testing.T) {
	examples := map[string]Example{
		"ex1": {ID: "ex1", Title: "Referenced"},
		"ex2": {ID: "ex2", Title: "Not referenced"},
	}
	out := Render("See ::example[ex1].", examples, nil)
	require.Contains(t, out, "Example: Referenced (ex1)")
	require.Contains(t, out, "Example: Not referenced (ex2)")
}

func TestRender_FilterModeOpensMatchingDetails(t *testing.T) {
	prose := `<details><summary>Wanted</summary>body A</details><details><summary>Unwanted</summary>body B</details>`
	out := Render(prose, nil, []string{"Wanted"})
	require.Contains(t, out, "body A")
	require.Contains(t, out, "<details open>")
	require.NotContains(t, out, "body B")
	require.NotContains(t, out, "Unwanted")
}

func TestRender_FilterModeOpensMatchingExamples(t *testing.T) {
	examples := map[string]Example{
		"ex1": {ID: "ex1", Title: "Wanted example", RequestCode: "const x = 1", ResponseCode: `{"ok":true}`},
		"ex2": {ID: "ex2", Title: "Unwanted example", RequestCode: "const y = 2"},
	}
	out := Render("::example[ex1] ::example[ex2]", examples, []string{"Wanted example"})
	require.Contains(t, out, "const x = 1")
	require.Contains(t, out, `"ok":true`)
	require.NotContains(t, out, "const y = 2")
}

func TestRender_FilterModeElidesNonMatchingMaterialEntirely(t *testing.T) {
	prose := `intro <details><summary>Skip me</summary>hidden</details> outro`
	out := Render(prose, nil, []string{"Nothing matches"})
	require.NotContains(t, out, "hidden")
	require.NotContains(t, out, "Skip me")
}
