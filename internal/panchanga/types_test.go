package panchanga

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestRequestRecordValidate(t *testing.T) {
	valid := RequestRecord{Title: "My Event", Date: "2024-04-09", Time: "06:30", Location: "Bengaluru", Lang: LangEnglish}
	require.NoError(t, valid.Validate())

	// Title and location are free text the service interprets; only the
	// date and time are checked locally
	bare := RequestRecord{Date: "2024-04-09", Time: "06:30"}
	require.NoError(t, bare.Validate())

	tests := []struct {
		name   string
		record RequestRecord
	}{
		{"empty date", RequestRecord{Date: "", Time: "06:30"}},
		{"non-ISO date", RequestRecord{Date: "09/04/2024", Time: "06:30"}},
		{"impossible date", RequestRecord{Date: "2024-13-40", Time: "06:30"}},
		{"empty time", RequestRecord{Date: "2024-04-09", Time: ""}},
		{"impossible time", RequestRecord{Date: "2024-04-09", Time: "25:61"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			require.Error(t, tt.record.Validate())
		})
	}
}
