package csvGenerator

import (
	"context"
	"testing"

	"github.com/KotFed0t/stock_dashboard/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerate(t *testing.T) {
	table := model.ReportTable{
		Columns: []string{"Ticker", "Price", "Volume"},
		Rows: [][]string{
			{"AAPL", "$150.00", "1,234,567"},
			{"MSFT", "N/A", "N/A"},
		},
	}

	fileBytes, ext, err := New().Generate(context.Background(), table)
	require.NoError(t, err)
	assert.Equal(t, ".csv", ext)

	// volume contains a comma so the csv writer must quote it
	want := "Ticker,Price,Volume\nAAPL,$150.00,\"1,234,567\"\nMSFT,N/A,N/A\n"
	assert.Equal(t, want, string(fileBytes))
}

func TestGenerateEmptyTable(t *testing.T) {
	_, _, err := New().Generate(context.Background(), model.ReportTable{})
	require.Error(t, err)
}
