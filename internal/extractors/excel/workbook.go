package excel

import (
	"archive/zip"
	"encoding/xml"
	"fmt"
	"strings"
)

// sheetRef names one worksheet and the archive path of its XML part.
type sheetRef struct {
	name   string
	target string
}

// workbook holds the parsed container metadata needed to read rows.
type workbook struct {
	sheets []sheetRef
	shared []string
}

// cellValue is one resolved cell: its 1-based column and string form.
type cellValue struct {
	column int
	value  string
}

// workbookXML mirrors the sheet list in xl/workbook.xml.
type workbookXML struct {
	Sheets struct {
		Sheet []struct {
			Name string `xml:"name,attr"`
			RID  string `xml:"id,attr"`
		} `xml:"sheet"`
	} `xml:"sheets"`
}

// relationshipsXML mirrors xl/_rels/workbook.xml.rels.
type relationshipsXML struct {
	Relationship []struct {
		ID     string `xml:"Id,attr"`
		Target string `xml:"Target,attr"`
	} `xml:"Relationship"`
}

// sstXML mirrors xl/sharedStrings.xml. Each string item may be a
// plain <t> or a sequence of rich-text runs whose <t> parts are
// concatenated.
type sstXML struct {
	Items []struct {
		Text string `xml:"t"`
		Runs []struct {
			Text string `xml:"t"`
		} `xml:"r"`
	} `xml:"si"`
}

// parseWorkbook reads the sheet list (in workbook order), resolves
// each sheet's part path through the relationships file, and loads
// the shared string table.
func parseWorkbook(zr *zip.Reader) (*workbook, error) {
	var wbx workbookXML
	if err := unmarshalPart(zr, "xl/workbook.xml", &wbx); err != nil {
		return nil, err
	}

	var rels relationshipsXML
	if err := unmarshalPart(zr, "xl/_rels/workbook.xml.rels", &rels); err != nil {
		return nil, err
	}
	targets := make(map[string]string, len(rels.Relationship))
	for _, rel := range rels.Relationship {
		targets[rel.ID] = rel.Target
	}

	wb := &workbook{}
	for _, sheet := range wbx.Sheets.Sheet {
		target, ok := targets[sheet.RID]
		if !ok {
			continue
		}
		if !strings.HasPrefix(target, "/") {
			target = "xl/" + target
		} else {
			target = strings.TrimPrefix(target, "/")
		}
		wb.sheets = append(wb.sheets, sheetRef{name: sheet.Name, target: target})
	}

	// Shared strings are optional: numeric-only workbooks omit them.
	var sst sstXML
	if err := unmarshalPart(zr, "xl/sharedStrings.xml", &sst); err == nil {
		wb.shared = make([]string, 0, len(sst.Items))
		for _, item := range sst.Items {
			text := item.Text
			for _, run := range item.Runs {
				text += run.Text
			}
			wb.shared = append(wb.shared, text)
		}
	}

	return wb, nil
}

// unmarshalPart decodes one archive part into v.
func unmarshalPart(zr *zip.Reader, name string, v any) error {
	for _, f := range zr.File {
		if f.Name != name {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return fmt.Errorf("opening %s: %w", name, err)
		}
		defer rc.Close()
		return xml.NewDecoder(rc).Decode(v)
	}
	return fmt.Errorf("missing part %s", name)
}

// sheetXML mirrors a worksheet part. Only cell positions, types and
// values are consulted.
type sheetXML struct {
	SheetData struct {
		Rows []struct {
			Cells []struct {
				Ref    string `xml:"r,attr"`
				Type   string `xml:"t,attr"`
				Value  string `xml:"v"`
				Inline struct {
					Text string `xml:"t"`
				} `xml:"is"`
			} `xml:"c"`
		} `xml:"row"`
	} `xml:"sheetData"`
}

// parseSheetRows reads one worksheet part and resolves every cell to
// its string form: shared-string lookups for t="s", inline strings
// for t="inlineStr", the raw value otherwise.
func parseSheetRows(zr *zip.Reader, target string, shared []string) ([][]cellValue, error) {
	var sx sheetXML
	if err := unmarshalPart(zr, target, &sx); err != nil {
		return nil, err
	}

	rows := make([][]cellValue, 0, len(sx.SheetData.Rows))
	for _, row := range sx.SheetData.Rows {
		cells := make([]cellValue, 0, len(row.Cells))
		for _, c := range row.Cells {
			var value string
			switch c.Type {
			case "s":
				var idx int
				if _, err := fmt.Sscanf(c.Value, "%d", &idx); err == nil && idx >= 0 && idx < len(shared) {
					value = shared[idx]
				}
			case "inlineStr":
				value = c.Inline.Text
			default:
				value = c.Value
			}
			cells = append(cells, cellValue{column: columnIndex(c.Ref), value: value})
		}
		rows = append(rows, cells)
	}
	return rows, nil
}

// columnIndex converts a cell reference like "C7" to its 1-based
// column number (3). Returns 0 for a malformed reference.
func columnIndex(ref string) int {
	col := 0
	for _, r := range ref {
		if r >= 'A' && r <= 'Z' {
			col = col*26 + int(r-'A') + 1
			continue
		}
		if r >= 'a' && r <= 'z' {
			col = col*26 + int(r-'a') + 1
			continue
		}
		break
	}
	return col
}
