package utils

import (
	"encoding/csv"
	"io"
	"strconv"
	"time"

	"cryptoJournal/internal/domain"
)

// WriteTradesCSV streams the journal's trades as CSV, one row per trade.
func WriteTradesCSV(w io.Writer, trades []*domain.Trade) error {
	writer := csv.NewWriter(w)
	defer writer.Flush()

	// Write header
	writer.Write([]string{"id", "coin", "type", "status", "entry_price", "exit_price", "quantity", "position_size", "leverage", "exchange", "close_reason", "trade_date", "close_date", "notes"})

	for _, t := range trades {
		exitPrice := ""
		if t.ExitPrice != nil {
			exitPrice = strconv.FormatFloat(*t.ExitPrice, 'f', -1, 64)
		}
		closeReason := ""
		if t.CloseReason != nil {
			closeReason = string(*t.CloseReason)
		}
		closeDate := ""
		if t.CloseDate != nil {
			closeDate = t.CloseDate.Format(time.RFC3339)
		}
		writer.Write([]string{
			strconv.FormatInt(t.ID, 10),
			t.Coin,
			string(t.TradeType),
			string(t.Status),
			strconv.FormatFloat(t.EntryPrice, 'f', -1, 64),
			exitPrice,
			strconv.FormatFloat(t.Quantity, 'f', -1, 64),
			strconv.FormatFloat(t.PositionSize, 'f', -1, 64),
			strconv.Itoa(t.Leverage),
			t.Exchange,
			closeReason,
			t.TradeDate.Format(time.RFC3339),
			closeDate,
			t.Notes,
		})
	}
	return writer.Error()
}
