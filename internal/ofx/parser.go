// Package ofx turns bank and credit card statements (OFX/QFX) into trip
// expenses.
package ofx

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"regexp"
	"strings"
	"time"
	"unicode"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/aclindsa/ofxgo"
)

// ErrInvalidTripDates is returned when a trip's dates cannot bound an import.
var ErrInvalidTripDates = errors.New("trip dates are not valid calendar dates")

var (
	severityRegex = regexp.MustCompile(`(?i)<SEVERITY>(Info|Warn|Error)</SEVERITY>`)
	tagFixRegex   = regexp.MustCompile(`(?m)^(\s*<[A-Z][A-Z0-9._]*[A-Z0-9])$`)
)

// Importer reads statements and keeps the debits that fall inside a trip.
type Importer struct {
	currency model.Currency
}

// NewImporter creates an importer that falls back to currency when a
// statement's CURDEF is not supported.
func NewImporter(currency model.Currency) *Importer {
	if currency == "" {
		currency = model.DefaultCurrency
	}
	return &Importer{currency: currency}
}

// statementLine is one transaction together with its statement currency.
type statementLine struct {
	tx       ofxgo.Transaction
	currency string
}

// preprocessOFX fixes common formatting issues in OFX files.
func preprocessOFX(content string) string {
	content = strings.TrimLeft(content, " \t\r\n")

	// SEVERITY must be upper case.
	content = severityRegex.ReplaceAllStringFunc(content, strings.ToUpper)

	// Some SGML exports drop the closing bracket of aggregate tags.
	return tagFixRegex.ReplaceAllString(content, "$1>")
}

// Expenses parses the statement in reader and returns one unsaved expense per
// debit posted between the trip's start and end dates, inclusive. The
// expenses carry no ID or trip ID.
func (im *Importer) Expenses(ctx context.Context, reader io.Reader, trip model.Trip) ([]model.Expense, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	from, to, err := tripWindow(trip)
	if err != nil {
		return nil, err
	}

	lines, err := readStatements(reader)
	if err != nil {
		return nil, err
	}

	var expenses []model.Expense
	for _, line := range lines {
		amount, _ := line.tx.TrnAmt.Float64()
		if amount >= 0 {
			continue
		}
		day := line.tx.DtPosted.Format(model.DateLayout)
		if day < from || day > to {
			continue
		}
		payee := extractMerchantName(line.tx)
		expenses = append(expenses, model.Expense{
			Date:     day,
			Category: GuessCategory(payee),
			Amount:   model.Amount(-amount),
			Currency: im.currencyFor(line.currency),
			Note:     payee,
		})
	}

	slog.Info("Parsed OFX file",
		"trip", trip.ID,
		"transactions", len(lines),
		"kept", len(expenses))

	return expenses, nil
}

func (im *Importer) currencyFor(code string) model.Currency {
	if c, err := model.ParseCurrency(code); err == nil {
		return c
	}
	return im.currency
}

// tripWindow returns the trip's first and last day in DateLayout.
func tripWindow(trip model.Trip) (string, string, error) {
	start, err := time.Parse(model.DateLayout, trip.StartDate)
	if err != nil {
		return "", "", fmt.Errorf("%w: start %q", ErrInvalidTripDates, trip.StartDate)
	}
	end, err := time.Parse(model.DateLayout, trip.EndDate)
	if err != nil {
		return "", "", fmt.Errorf("%w: end %q", ErrInvalidTripDates, trip.EndDate)
	}
	if end.Before(start) {
		return "", "", fmt.Errorf("%w: end %s is before start %s", ErrInvalidTripDates, trip.EndDate, trip.StartDate)
	}
	return trip.StartDate, trip.EndDate, nil
}

// readStatements collects the transactions of every bank and credit card
// statement in the file.
func readStatements(reader io.Reader) ([]statementLine, error) {
	content, err := io.ReadAll(reader)
	if err != nil {
		return nil, fmt.Errorf("failed to read OFX file: %w", err)
	}

	resp, err := ofxgo.ParseResponse(strings.NewReader(preprocessOFX(string(content))))
	if err != nil {
		return nil, fmt.Errorf("failed to parse OFX file: %w", err)
	}

	var lines []statementLine
	for _, msg := range resp.Bank {
		stmt, ok := msg.(*ofxgo.StatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, tx := range stmt.BankTranList.Transactions {
			lines = append(lines, statementLine{tx: tx, currency: stmt.CurDef.String()})
		}
	}
	for _, msg := range resp.CreditCard {
		stmt, ok := msg.(*ofxgo.CCStatementResponse)
		if !ok || stmt.BankTranList == nil {
			continue
		}
		for _, tx := range stmt.BankTranList.Transactions {
			lines = append(lines, statementLine{tx: tx, currency: stmt.CurDef.String()})
		}
	}
	return lines, nil
}

var categoryKeywords = []struct {
	category model.Category
	words    []string
}{
	{model.CategoryHotel, []string{"hotel", "inn", "airbnb", "hostel"}},
	{model.CategoryTransport, []string{"rail", "db", "bahn", "taxi", "uber", "air", "fuel", "shell", "parking"}},
	{model.CategoryMeal, []string{"restaurant", "cafe", "bistro", "bakery", "starbucks"}},
}

// GuessCategory maps a payee to a category by keyword. A keyword matches the
// start of any word in the payee, so "Deutsche Bahn" and "AIRLINES" both
// count as transport.
func GuessCategory(payee string) model.Category {
	words := strings.FieldsFunc(strings.ToLower(payee), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, group := range categoryKeywords {
		for _, word := range words {
			for _, kw := range group.words {
				if strings.HasPrefix(word, kw) {
					return group.category
				}
			}
		}
	}
	return model.CategoryOther
}

var purchasePrefixes = []string{
	"POS PURCHASE ",
	"PURCHASE AUTHORIZED ON ",
	"DEBIT CARD PURCHASE ",
	"ACH DEBIT ",
	"CHECK CARD ",
	"VISA PURCHASE ",
	"MC PURCHASE ",
	"DEBIT PURCHASE ",
	"KARTENZAHLUNG ",
	"LASTSCHRIFT ",
}

// extractMerchantName tries to get a clean merchant name from OFX data.
func extractMerchantName(tx ofxgo.Transaction) string {
	if tx.Payee != nil && tx.Payee.Name != "" {
		return strings.TrimSpace(string(tx.Payee.Name))
	}

	name := strings.TrimSpace(string(tx.Name))
	if tx.Memo != "" && isGenericDescription(name) {
		name = strings.TrimSpace(string(tx.Memo))
	}

	upper := strings.ToUpper(name)
	for _, prefix := range purchasePrefixes {
		if strings.HasPrefix(upper, prefix) {
			name = name[len(prefix):]
			break
		}
	}

	// Leading "MM/DD " posting dates.
	if len(name) > 5 && name[2] == '/' && name[5] == ' ' {
		name = strings.TrimSpace(name[6:])
	}

	return name
}

func isGenericDescription(name string) bool {
	switch strings.ToUpper(name) {
	case "", "DEBIT", "CREDIT", "PURCHASE", "PAYMENT", "POS TRANSACTION", "CARD PURCHASE":
		return true
	}
	return false
}
