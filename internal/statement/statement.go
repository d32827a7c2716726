// Package statement extracts transaction rows from PDF bank statements and
// writes them out as headerless td-dialect CSV, ready for import. Text
// extraction from PDFs is lossy, so this is best effort: rows it cannot
// make sense of are skipped.
package statement

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"regexp"
	"strings"
	"time"

	"github.com/ledongthuc/pdf"
	"github.com/shopspring/decimal"
)

// Row is one extracted statement line in td column order.
type Row struct {
	Date        time.Time
	Description string
	Withdrawal  decimal.Decimal
	Deposit     decimal.Decimal
	Balance     decimal.Decimal
}

// Statement dates come as DDMMM with no year; TD prints French month
// abbreviations on bilingual statements.
var months = map[string]time.Month{
	"JAN": time.January, "FEB": time.February, "MAR": time.March,
	"APR": time.April, "MAY": time.May, "JUN": time.June,
	"JUL": time.July, "AUG": time.August, "SEP": time.September,
	"OCT": time.October, "NOV": time.November, "DEC": time.December,
	"FEV": time.February, "FÉV": time.February, "AVR": time.April,
	"MAI": time.May, "AOU": time.August, "AOÛ": time.August,
	"DÉC": time.December,
}

var (
	// \b does not work here: it is an ASCII word boundary, and the accented
	// French abbreviations end in a non-word rune.
	datePattern   = regexp.MustCompile(`^(\d{2})([A-ZÉÛ]{3})(?:\s+|$)`)
	amountPattern = regexp.MustCompile(`\d{1,3}(?:[ ,]\d{3})*[.,]\d{2}`)
)

// depositHints mark inflow rows when no prior balance is available to
// derive the direction from.
var depositHints = []string{"DEPOSIT", "PAYROLL", "PAY", "INTEREST", "CREDIT", "REFUND"}

// ConvertFile extracts rows from the PDF at path and writes them as CSV
// next to it (same name, .csv extension). Returns the CSV path and the
// number of rows written.
func ConvertFile(path string, year int) (string, int, error) {
	f, r, err := pdf.Open(path)
	if err != nil {
		return "", 0, fmt.Errorf("opening PDF: %w", err)
	}
	defer f.Close()

	var lines []string
	for pageIndex := 1; pageIndex <= r.NumPage(); pageIndex++ {
		p := r.Page(pageIndex)
		if p.V.IsNull() {
			continue
		}
		text, err := p.GetPlainText(nil)
		if err != nil {
			return "", 0, fmt.Errorf("extracting text from page %d: %w", pageIndex, err)
		}
		lines = append(lines, strings.Split(text, "\n")...)
	}

	rows := ExtractRows(lines, year)
	if len(rows) == 0 {
		return "", 0, fmt.Errorf("no transaction rows recognized in %s", path)
	}

	csvPath := strings.TrimSuffix(path, ".pdf") + ".csv"
	out, err := os.Create(csvPath)
	if err != nil {
		return "", 0, fmt.Errorf("creating %s: %w", csvPath, err)
	}
	defer out.Close()

	if err := WriteCSV(out, rows); err != nil {
		return "", 0, fmt.Errorf("writing %s: %w", csvPath, err)
	}
	return csvPath, len(rows), nil
}

// ExtractRows scans statement text lines for transaction rows. A row
// starts with a DDMMM date and carries one or two amounts; when two are
// present the last is the running balance. Direction is derived from the
// balance movement where possible, otherwise from description keywords.
func ExtractRows(lines []string, year int) []Row {
	var rows []Row
	var prevBalance decimal.Decimal
	havePrev := false

	for _, line := range lines {
		line = strings.TrimSpace(line)
		m := datePattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		month, ok := months[m[2]]
		if !ok {
			continue
		}
		day := int(m[1][0]-'0')*10 + int(m[1][1]-'0')
		date := time.Date(year, month, day, 0, 0, 0, 0, time.UTC)

		rest := strings.TrimSpace(line[len(m[0]):])
		amountMatches := amountPattern.FindAllStringIndex(rest, -1)
		if len(amountMatches) == 0 {
			continue
		}

		desc := strings.TrimSpace(rest[:amountMatches[0][0]])
		if desc == "" {
			continue
		}

		amount, err := parseAmount(rest[amountMatches[0][0]:amountMatches[0][1]])
		if err != nil {
			continue
		}

		row := Row{Date: date, Description: collapse(desc)}
		if len(amountMatches) >= 2 {
			last := amountMatches[len(amountMatches)-1]
			balance, err := parseAmount(rest[last[0]:last[1]])
			if err != nil {
				continue
			}
			row.Balance = balance
		}

		switch {
		case havePrev && !row.Balance.IsZero() && row.Balance.Equal(prevBalance.Sub(amount)):
			row.Withdrawal = amount
		case havePrev && !row.Balance.IsZero() && row.Balance.Equal(prevBalance.Add(amount)):
			row.Deposit = amount
		case isDepositLike(row.Description):
			row.Deposit = amount
		default:
			row.Withdrawal = amount
		}

		if !row.Balance.IsZero() {
			prevBalance = row.Balance
			havePrev = true
		}
		rows = append(rows, row)
	}
	return rows
}

// WriteCSV writes rows in headerless td column order:
// date, description, withdrawal, deposit, balance.
func WriteCSV(w io.Writer, rows []Row) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	for i, row := range rows {
		rec := make([]string, 5)
		rec[0] = row.Date.Format("2006-01-02")
		rec[1] = row.Description
		if !row.Withdrawal.IsZero() {
			rec[2] = row.Withdrawal.StringFixed(2)
		}
		if !row.Deposit.IsZero() {
			rec[3] = row.Deposit.StringFixed(2)
		}
		if !row.Balance.IsZero() {
			rec[4] = row.Balance.StringFixed(2)
		}
		if err := cw.Write(rec); err != nil {
			return fmt.Errorf("writing row %d: %w", i+1, err)
		}
	}
	return cw.Error()
}

// parseAmount handles both separator conventions: "1,234.56" and the
// bilingual "1 234,56".
func parseAmount(s string) (decimal.Decimal, error) {
	if strings.Contains(s, ".") {
		s = strings.ReplaceAll(s, ",", "")
	} else {
		s = strings.ReplaceAll(s, ",", ".")
	}
	s = strings.ReplaceAll(s, " ", "")
	return decimal.NewFromString(s)
}

func isDepositLike(desc string) bool {
	upper := strings.ToUpper(desc)
	for _, hint := range depositHints {
		if strings.Contains(upper, hint) {
			return true
		}
	}
	return false
}

func collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
