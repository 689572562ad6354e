package utils

import (
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"

	"tradeScout/internal/domain"
)

const barDateLayout = "2006-01-02"

// WriteBarsToCSV stores a price series as a two-column CSV file
// (date, adj_close). The format is the on-disk interchange between
// fetch_prices and the offline csv provider.
func WriteBarsToCSV(series *domain.PriceSeries, filename string) error {
	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	writer.Write([]string{"date", "adj_close"})

	for _, bar := range series.Bars {
		writer.Write([]string{
			bar.Date.Format(barDateLayout),
			strconv.FormatFloat(bar.AdjClose, 'f', -1, 64),
		})
	}
	return writer.Error()
}

// ReadBarsFromCSV loads a price series previously written by WriteBarsToCSV.
func ReadBarsFromCSV(symbol, filename string) (*domain.PriceSeries, error) {
	file, err := os.Open(filename)
	if err != nil {
		return nil, err
	}
	defer file.Close()

	reader := csv.NewReader(file)
	records, err := reader.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", filename, err)
	}
	if len(records) == 0 {
		return &domain.PriceSeries{Symbol: symbol}, nil
	}

	// Skip the header row
	bars := make([]domain.PriceBar, 0, len(records)-1)
	for i, rec := range records[1:] {
		if len(rec) < 2 {
			return nil, fmt.Errorf("row %d of %s has %d columns, want 2", i+2, filename, len(rec))
		}
		date, err := time.Parse(barDateLayout, rec[0])
		if err != nil {
			return nil, fmt.Errorf("row %d of %s has invalid date %q: %w", i+2, filename, rec[0], err)
		}
		closePrice, err := strconv.ParseFloat(rec[1], 64)
		if err != nil {
			return nil, fmt.Errorf("row %d of %s has invalid close %q: %w", i+2, filename, rec[1], err)
		}
		bars = append(bars, domain.PriceBar{Date: date, AdjClose: closePrice})
	}

	return &domain.PriceSeries{Symbol: symbol, Bars: bars}, nil
}
