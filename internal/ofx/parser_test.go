package ofx

import (
	"context"
	"strings"
	"testing"

	"github.com/Veraticus/travel-mate/internal/model"
	"github.com/aclindsa/ofxgo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const ofxHeader = `OFXHEADER:100
DATA:OFXSGML
VERSION:102
SECURITY:NONE
ENCODING:USASCII
CHARSET:1252
COMPRESSION:NONE
OLDFILEUID:NONE
NEWFILEUID:NONE

<OFX>
<SIGNONMSGSRSV1>
<SONRS>
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<DTSERVER>20250615120000[0:GMT]
<LANGUAGE>ENG
</SONRS>
</SIGNONMSGSRSV1>
`

// A checking account in EUR covering a trip from 2025-06-02 to 2025-06-04.
const sampleBankOFX = ofxHeader + `<BANKMSGSRSV1>
<STMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<STMTRS>
<CURDEF>EUR
<BANKACCTFROM>
<BANKID>10010010
<ACCTID>DE0012345678
<ACCTTYPE>CHECKING
</BANKACCTFROM>
<BANKTRANLIST>
<DTSTART>20250601000000[0:GMT]
<DTEND>20250610000000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250601120000[0:GMT]
<TRNAMT>-12.00
<FITID>B001
<NAME>Bakery before the trip
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250602080000[0:GMT]
<TRNAMT>-49.90
<FITID>B002
<NAME>KARTENZAHLUNG DB Fernverkehr
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250603200000[0:GMT]
<TRNAMT>-189.00
<FITID>B003
<NAME>Hotel Bayerischer Hof
</STMTTRN>
<STMTTRN>
<TRNTYPE>CREDIT
<DTPOSTED>20250603120000[0:GMT]
<TRNAMT>250.00
<FITID>B004
<NAME>Salary
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250604190000[0:GMT]
<TRNAMT>-23.40
<FITID>B005
<NAME>Bistro am Markt
</STMTTRN>
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250605090000[0:GMT]
<TRNAMT>-5.00
<FITID>B006
<NAME>Parking after the trip
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>1000.00
<DTASOF>20250610000000[0:GMT]
</LEDGERBAL>
</STMTRS>
</STMTTRNRS>
</BANKMSGSRSV1>
</OFX>`

// A credit card statement in a currency the workspace does not support.
const sampleCreditCardOFX = ofxHeader + `<CREDITCARDMSGSRSV1>
<CCSTMTTRNRS>
<TRNUID>1
<STATUS>
<CODE>0
<SEVERITY>INFO
</STATUS>
<CCSTMTRS>
<CURDEF>JPY
<CCACCTFROM>
<ACCTID>4111111111111111
</CCACCTFROM>
<BANKTRANLIST>
<DTSTART>20250601000000[0:GMT]
<DTEND>20250610000000[0:GMT]
<STMTTRN>
<TRNTYPE>DEBIT
<DTPOSTED>20250602120000[0:GMT]
<TRNAMT>-45.99
<FITID>CC001
<NAME>UBER *TRIP HELP.UBER.COM
</STMTTRN>
</BANKTRANLIST>
<LEDGERBAL>
<BALAMT>-45.99
<DTASOF>20250610000000[0:GMT]
</LEDGERBAL>
</CCSTMTRS>
</CCSTMTTRNRS>
</CREDITCARDMSGSRSV1>
</OFX>`

func sampleTrip() model.Trip {
	return model.Trip{ID: "t1", StartDate: "2025-06-02", EndDate: "2025-06-04"}
}

func TestExpenses_BankStatement(t *testing.T) {
	im := NewImporter(model.USD)

	expenses, err := im.Expenses(context.Background(), strings.NewReader(sampleBankOFX), sampleTrip())
	require.NoError(t, err)
	require.Len(t, expenses, 3, "only debits inside the trip are kept")

	assert.Equal(t, model.Expense{
		Date:     "2025-06-02",
		Category: model.CategoryTransport,
		Amount:   49.9,
		Currency: model.EUR,
		Note:     "DB Fernverkehr",
	}, expenses[0])

	assert.Equal(t, "2025-06-03", expenses[1].Date)
	assert.Equal(t, model.CategoryHotel, expenses[1].Category)
	assert.InDelta(t, 189.0, float64(expenses[1].Amount), 1e-9)

	assert.Equal(t, "2025-06-04", expenses[2].Date)
	assert.Equal(t, model.CategoryMeal, expenses[2].Category)
	assert.Equal(t, "Bistro am Markt", expenses[2].Note)

	for _, e := range expenses {
		assert.Empty(t, e.ID)
		assert.Empty(t, e.TripID)
	}
}

func TestExpenses_UnsupportedCurrencyFallsBack(t *testing.T) {
	im := NewImporter(model.CHF)

	expenses, err := im.Expenses(context.Background(), strings.NewReader(sampleCreditCardOFX), sampleTrip())
	require.NoError(t, err)
	require.Len(t, expenses, 1)
	assert.Equal(t, model.CHF, expenses[0].Currency)
	assert.Equal(t, model.CategoryTransport, expenses[0].Category)
	assert.InDelta(t, 45.99, float64(expenses[0].Amount), 1e-9)
}

func TestExpenses_Errors(t *testing.T) {
	im := NewImporter("")

	t.Run("invalid OFX data", func(t *testing.T) {
		_, err := im.Expenses(context.Background(), strings.NewReader("not valid OFX"), sampleTrip())
		assert.Error(t, err)
	})

	t.Run("empty file", func(t *testing.T) {
		_, err := im.Expenses(context.Background(), strings.NewReader(""), sampleTrip())
		assert.Error(t, err)
	})

	t.Run("bad trip dates", func(t *testing.T) {
		for _, trip := range []model.Trip{
			{StartDate: "", EndDate: "2025-06-04"},
			{StartDate: "2025-06-02", EndDate: "soon"},
			{StartDate: "2025-06-04", EndDate: "2025-06-02"},
		} {
			_, err := im.Expenses(context.Background(), strings.NewReader(sampleBankOFX), trip)
			assert.ErrorIs(t, err, ErrInvalidTripDates)
		}
	})

	t.Run("canceled context", func(t *testing.T) {
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		_, err := im.Expenses(ctx, strings.NewReader(sampleBankOFX), sampleTrip())
		assert.ErrorIs(t, err, context.Canceled)
	})
}

func TestPreprocessOFX(t *testing.T) {
	in := "\n\n  <SEVERITY>Info</SEVERITY>\n<STMTTRN\n<NAME>x"
	out := preprocessOFX(in)

	assert.True(t, strings.HasPrefix(out, "<SEVERITY>INFO</SEVERITY>"))
	assert.Contains(t, out, "\n<STMTTRN>\n")
	assert.Contains(t, out, "<NAME>x")
}

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		payee string
		want  model.Category
	}{
		{payee: "Hotel Adlon", want: model.CategoryHotel},
		{payee: "AIRBNB * HMABC", want: model.CategoryHotel},
		{payee: "Holiday Inn Express", want: model.CategoryHotel},
		{payee: "Deutsche Bahn", want: model.CategoryTransport},
		{payee: "DB Vertrieb GmbH", want: model.CategoryTransport},
		{payee: "Lufthansa Airlines", want: model.CategoryTransport},
		{payee: "Shell 1234", want: model.CategoryTransport},
		{payee: "Taxi Berlin", want: model.CategoryTransport},
		{payee: "APCOA Parking", want: model.CategoryTransport},
		{payee: "STARBUCKS STORE #1234", want: model.CategoryMeal},
		{payee: "Cafe Einstein", want: model.CategoryMeal},
		{payee: "Restaurant Zur Post", want: model.CategoryMeal},
		{payee: "NETFLIX.COM", want: model.CategoryOther},
		{payee: "Fairmont Shop", want: model.CategoryOther},
		{payee: "", want: model.CategoryOther},
	}

	for _, tt := range tests {
		t.Run(tt.payee, func(t *testing.T) {
			assert.Equal(t, tt.want, GuessCategory(tt.payee))
		})
	}
}

func TestExtractMerchantName(t *testing.T) {
	tests := []struct {
		name     string
		tx       ofxgo.Transaction
		expected string
	}{
		{
			name:     "remove POS prefix",
			tx:       ofxgo.Transaction{Name: "POS PURCHASE STARBUCKS"},
			expected: "STARBUCKS",
		},
		{
			name:     "remove card payment prefix",
			tx:       ofxgo.Transaction{Name: "KARTENZAHLUNG Bistro am Markt"},
			expected: "Bistro am Markt",
		},
		{
			name:     "strip posting date",
			tx:       ofxgo.Transaction{Name: "06/02 TAXI BERLIN"},
			expected: "TAXI BERLIN",
		},
		{
			name:     "trim whitespace",
			tx:       ofxgo.Transaction{Name: "  Shell  "},
			expected: "Shell",
		},
		{
			name:     "memo replaces generic name",
			tx:       ofxgo.Transaction{Name: "DEBIT", Memo: "Hotel Adlon"},
			expected: "Hotel Adlon",
		},
		{
			name:     "payee wins",
			tx:       ofxgo.Transaction{Name: "CARD 1234", Payee: &ofxgo.Payee{Name: "Deutsche Bahn"}},
			expected: "Deutsche Bahn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractMerchantName(tt.tx))
		})
	}
}
