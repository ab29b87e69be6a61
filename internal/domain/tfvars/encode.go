// Where: internal/domain/tfvars/encode.go
// What: Render a list of objects as a tfvars assignment.
// Why: Produce job definitions that both Terraform and Parse can read back.
package tfvars

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/hashicorp/hcl/v2/hclwrite"
	"github.com/zclconf/go-cty/cty"
)

// EncodeList renders `<name> = [ {...}, ... ]` preceded by the given comment lines.
func EncodeList(name string, items []map[string]cty.Value, header []string) ([]byte, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("list name is required")
	}
	elems := make([]cty.Value, 0, len(items))
	for _, item := range items {
		elems = append(elems, cty.ObjectVal(item))
	}

	file := hclwrite.NewEmptyFile()
	file.Body().SetAttributeValue(name, cty.TupleVal(elems))

	var buf bytes.Buffer
	for _, line := range header {
		if line == "" {
			buf.WriteString("\n")
			continue
		}
		buf.WriteString("# " + line + "\n")
	}
	if len(header) > 0 {
		buf.WriteString("\n")
	}
	buf.Write(hclwrite.Format(file.Bytes()))
	return buf.Bytes(), nil
}

// StringList converts items into a cty list, keeping empty lists typed.
func StringList(items []string) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.String)
	}
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.StringVal(item)
	}
	return cty.ListVal(vals)
}

// IntList converts items into a cty list of numbers.
func IntList(items []int) cty.Value {
	if len(items) == 0 {
		return cty.ListValEmpty(cty.Number)
	}
	vals := make([]cty.Value, len(items))
	for i, item := range items {
		vals[i] = cty.NumberIntVal(int64(item))
	}
	return cty.ListVal(vals)
}
