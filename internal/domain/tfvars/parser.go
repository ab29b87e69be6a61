// Where: internal/domain/tfvars/parser.go
// What: Scanner for a single `name = [ {...}, {...} ]` list assignment in a tfvars file.
// Why: Read job definitions from the same variable files Terraform consumes.
package tfvars

import (
	"regexp"
	"strconv"
	"strings"
)

var (
	fieldPattern       = regexp.MustCompile(`^(\w+)\s*=\s*(.+)$`)
	quotedItemsPattern = regexp.MustCompile(`"([^"]*)"`)
)

// Parse extracts the records of the list assigned to listName.
//
// The outer list is delimited by bracket depth so list-valued fields inside records do not
// end it early. Records are the top-level `{ ... }` blocks inside that list. Lines that do
// not look like `key = value` are ignored; structural problems are returned as
// *MissingListError, *UnbalancedBracketsError or *MalformedListError.
func Parse(text, listName string) (Document, error) {
	start, err := findListStart(text, listName)
	if err != nil {
		return nil, err
	}
	end, err := findListEnd(text, start, listName)
	if err != nil {
		return nil, err
	}
	blocks, err := splitRecords(text[start:end], start, listName)
	if err != nil {
		return nil, err
	}

	doc := Document{}
	for _, block := range blocks {
		record, err := parseRecord(block)
		if err != nil {
			return nil, err
		}
		if len(record) == 0 {
			continue
		}
		doc = append(doc, record)
	}
	return doc, nil
}

// findListStart returns the offset just past the opening `[` of `<name> = [`.
// Matches on commented-out lines are skipped.
func findListStart(text, name string) (int, error) {
	pattern := regexp.MustCompile(`\b` + regexp.QuoteMeta(name) + `\s*=\s*\[`)
	for _, loc := range pattern.FindAllStringIndex(text, -1) {
		lineStart := strings.LastIndexByte(text[:loc[0]], '\n') + 1
		if strings.HasPrefix(strings.TrimSpace(text[lineStart:loc[0]]), "#") {
			continue
		}
		return loc[1], nil
	}
	return 0, &MissingListError{Name: name}
}

func findListEnd(text string, start int, name string) (int, error) {
	depth := 0
	for i := start; i < len(text); i++ {
		switch text[i] {
		case '[':
			depth++
		case ']':
			if depth == 0 {
				return i, nil
			}
			depth--
		}
	}
	return 0, &UnbalancedBracketsError{Name: name, Offset: start - 1, Closer: ']'}
}

func splitRecords(span string, base int, name string) ([]string, error) {
	var blocks []string
	var current strings.Builder
	depth := 0
	open := 0

	for i := 0; i < len(span); i++ {
		ch := span[i]
		switch ch {
		case '{':
			if depth == 0 {
				current.Reset()
				open = i
			} else {
				current.WriteByte(ch)
			}
			depth++
		case '}':
			if depth == 0 {
				return nil, &UnbalancedBracketsError{Name: name + " record", Offset: base + i, Closer: '{'}
			}
			depth--
			if depth == 0 {
				blocks = append(blocks, current.String())
				continue
			}
			current.WriteByte(ch)
		default:
			if depth > 0 {
				current.WriteByte(ch)
			}
		}
	}
	if depth > 0 {
		return nil, &UnbalancedBracketsError{Name: name + " record", Offset: base + open, Closer: '}'}
	}
	return blocks, nil
}

func parseRecord(block string) (Record, error) {
	record := Record{}
	for _, raw := range strings.Split(block, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		for _, segment := range splitFields(stripInlineComment(line)) {
			match := fieldPattern.FindStringSubmatch(strings.TrimSpace(segment))
			if match == nil {
				continue
			}
			field := match[1]
			value, err := parseValue(field, match[2])
			if err != nil {
				return nil, err
			}
			record[field] = value
		}
	}
	return record, nil
}

// splitFields splits a line on commas that sit outside quotes and brackets, so
// `a = 1, b = [2, 3]` yields two fields and a trailing comma yields an empty tail.
func splitFields(line string) []string {
	var fields []string
	inQuotes := false
	depth := 0
	last := 0
	for i := 0; i < len(line); i++ {
		switch line[i] {
		case '"':
			inQuotes = !inQuotes
		case '[':
			if !inQuotes {
				depth++
			}
		case ']':
			if !inQuotes && depth > 0 {
				depth--
			}
		case ',':
			if !inQuotes && depth == 0 {
				fields = append(fields, line[last:i])
				last = i + 1
			}
		}
	}
	return append(fields, line[last:])
}

func parseValue(field, raw string) (Value, error) {
	value := strings.TrimSpace(strings.TrimRight(strings.TrimSpace(raw), ","))

	if len(value) >= 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		return StringValue(value[1 : len(value)-1]), nil
	}
	if len(value) >= 2 && strings.HasPrefix(value, "[") && strings.HasSuffix(value, "]") {
		return parseList(field, value[1:len(value)-1])
	}
	if n, err := strconv.ParseInt(value, 10, 64); err == nil {
		return IntValue(n), nil
	}
	return StringValue(strings.Trim(value, `"`)), nil
}

func parseList(field, interior string) (Value, error) {
	if strings.TrimSpace(interior) == "" {
		return StringListValue(nil), nil
	}
	if strings.Contains(interior, `"`) {
		matches := quotedItemsPattern.FindAllStringSubmatch(interior, -1)
		items := make([]string, 0, len(matches))
		for _, m := range matches {
			items = append(items, m[1])
		}
		return StringListValue(items), nil
	}

	var items []int64
	for _, part := range strings.Split(interior, ",") {
		item := strings.TrimSpace(part)
		if item == "" {
			continue
		}
		n, err := strconv.ParseInt(item, 10, 64)
		if err != nil {
			return Value{}, &MalformedListError{Field: field, Item: item}
		}
		items = append(items, n)
	}
	return IntListValue(items), nil
}

// stripInlineComment drops a trailing `# ...` that is not inside a quoted string.
func stripInlineComment(s string) string {
	inQuotes := false
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '"':
			inQuotes = !inQuotes
		case '#':
			if !inQuotes {
				return s[:i]
			}
		}
	}
	return s
}
