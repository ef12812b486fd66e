package rollcsv_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/MWhitfield89/strata/internal/entitlement"
	"github.com/MWhitfield89/strata/internal/importer/rollcsv"
)

func TestParse_RegistryLayout(t *testing.T) {
	input := `Lot Number,Unit Entitlement,Owner Name,Owner Email
1,10,Alice Nguyen,alice@example.com
2,15,Bob Carter,BOB@Example.COM
3,5,Carol Danvers,
`

	lots, err := rollcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lots, 3)

	assert.Equal(t, entitlement.LotParams{
		LotNumber:   "1",
		Entitlement: 10,
		OwnerName:   "Alice Nguyen",
		OwnerEmail:  "alice@example.com",
	}, lots[0])

	// Addresses are lowercased; missing ones stay empty.
	assert.Equal(t, "bob@example.com", lots[1].OwnerEmail)
	assert.Empty(t, lots[2].OwnerEmail)
}

func TestParse_AgencyLayoutWithPreamble(t *testing.T) {
	input := `Entitlement roll export
Generated 2026-02-01

Lot,Entitlement,Owner,Email
12A,20,Dana Whitmore,dana@example.com
12B,"1,000",Ed Okafor,not-an-email
`

	lots, err := rollcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lots, 2)

	assert.Equal(t, "12A", lots[0].LotNumber)
	assert.Equal(t, int64(20), lots[0].Entitlement)

	// Thousands separators are stripped; junk emails are dropped.
	assert.Equal(t, int64(1000), lots[1].Entitlement)
	assert.Empty(t, lots[1].OwnerEmail)
}

func TestParse_SkipsBlankRows(t *testing.T) {
	input := `Lot Number,Unit Entitlement,Owner Name,Owner Email
1,10,Alice Nguyen,alice@example.com

,,,
`

	lots, err := rollcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	assert.Len(t, lots, 1)
}

func TestParse_Errors(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr string
	}{
		{
			name:    "UnknownLayout",
			input:   "Apartment,Share\n1,10\n",
			wantErr: "no matching roll layout",
		},
		{
			name: "BadEntitlement",
			input: `Lot,Entitlement,Owner,Email
1,ten,Alice,a@example.com
`,
			wantErr: "unreadable entitlement",
		},
		{
			name: "ZeroEntitlement",
			input: `Lot,Entitlement,Owner,Email
1,0,Alice,a@example.com
`,
			wantErr: "entitlement must be positive",
		},
		{
			name: "MissingOwner",
			input: `Lot,Entitlement,Owner,Email
1,10,,a@example.com
`,
			wantErr: "missing owner name",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := rollcsv.New().Parse(strings.NewReader(tt.input))
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestParse_RegistryLayoutUTF8BOM(t *testing.T) {
	input := "\xEF\xBB\xBFLot Number,Unit Entitlement,Owner Name,Owner Email\n1,10,Renée O'Connor,renee@example.com\n"

	lots, err := rollcsv.New().Parse(strings.NewReader(input))
	require.NoError(t, err)
	require.Len(t, lots, 1)
	assert.Equal(t, "Renée O'Connor", lots[0].OwnerName)
}
